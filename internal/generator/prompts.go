package generator

import (
	"fmt"
	"strings"

	"github.com/css-prep/backend/internal/models"
)

const systemPrompt = `You are an examiner who writes multiple-choice questions for the Pakistani Central Superior Services (CSS) competitive examination conducted by the FPSC.

QUESTION RULES:
- Each question has a single clear STATEMENT and exactly 4 OPTIONS.
- Exactly one option is correct. Distractors must be plausible but unambiguously wrong.
- Avoid "all of the above" and "none of the above".
- Vary the position of the correct option across the set.
- Facts must be verifiable and current as of your knowledge cutoff.

OUTPUT FORMAT:
Respond with JSON only, no prose and no code fences:
{
  "questions": [
    {
      "id": 1,
      "statement": "...",
      "options": ["...", "...", "...", "..."],
      "correctOptionIndex": 0
    }
  ]
}
correctOptionIndex is the 0-based index of the correct option.`

// SystemPrompt returns the fixed instructions for MCQ generation.
func SystemPrompt() string {
	return systemPrompt
}

// BuildUserPrompt renders the per-request instructions.
func BuildUserPrompt(req models.GenerateRequest) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Generate exactly %d multiple-choice questions for the CSS subject %q.\n", req.Count, req.Subject))
	sb.WriteString(fmt.Sprintf("DIFFICULTY: %s\n", req.Difficulty))

	if req.PakistanOnly {
		sb.WriteString("CONTEXT: Every question must be about Pakistan: its history, geography, constitution, institutions, economy, people or affairs, as they relate to the subject.\n")
	}
	if req.PakistanOnlyStrict {
		sb.WriteString("STRICT: Do not include any question whose answer does not depend on Pakistan-specific knowledge. Reject generic world-knowledge questions.\n")
	}

	sb.WriteString(fmt.Sprintf("Number the questions 1 to %d in the \"id\" field.", req.Count))
	return sb.String()
}
