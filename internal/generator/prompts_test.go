package generator

import (
	"strings"
	"testing"

	"github.com/css-prep/backend/internal/models"
)

func TestSystemPrompt(t *testing.T) {
	prompt := SystemPrompt()

	required := []string{"CSS", "STATEMENT", "OPTIONS", "JSON", "correctOptionIndex", "0-based"}
	for _, keyword := range required {
		if !strings.Contains(prompt, keyword) {
			t.Errorf("system prompt missing keyword %q", keyword)
		}
	}
}

func TestBuildUserPrompt(t *testing.T) {
	prompt := BuildUserPrompt(models.NewGenerateRequest("Pakistan Affairs"))

	required := []string{"15", `"Pakistan Affairs"`, "Medium", "CONTEXT", "STRICT"}
	for _, keyword := range required {
		if !strings.Contains(prompt, keyword) {
			t.Errorf("user prompt missing keyword %q", keyword)
		}
	}
}

func TestBuildUserPrompt_NoRegionalConstraint(t *testing.T) {
	req := models.GenerateRequest{Subject: "Economics", Count: 5, Difficulty: models.DifficultyHard}
	prompt := BuildUserPrompt(req)

	if strings.Contains(prompt, "CONTEXT") || strings.Contains(prompt, "STRICT") {
		t.Errorf("prompt should not carry regional constraints: %s", prompt)
	}
	if !strings.Contains(prompt, "exactly 5") || !strings.Contains(prompt, "Hard") {
		t.Errorf("prompt missing count or difficulty: %s", prompt)
	}
}
