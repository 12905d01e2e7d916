package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/css-prep/backend/internal/models"
)

// MinOptions is the smallest option list accepted for a question.
const MinOptions = 2

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// ParseResponse decodes a generated question set and validates it. When want
// is positive the set must hold exactly that many questions. Question
// identifiers are renumbered 1..n in set order.
func ParseResponse(responseBody string, want int) (*models.QuestionSet, error) {
	cleaned := stripCodeFences(responseBody)

	var set models.QuestionSet
	if err := json.Unmarshal([]byte(cleaned), &set); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := ValidateSet(&set, want); err != nil {
		return nil, err
	}

	for i := range set.Questions {
		set.Questions[i].ID = i + 1
	}

	return &set, nil
}

// ValidateSet reports every structural problem in set.
func ValidateSet(set *models.QuestionSet, want int) error {
	if len(set.Questions) == 0 {
		return &ValidationError{Errors: []string{"no questions in set"}}
	}

	var errs []string

	if want > 0 && len(set.Questions) != want {
		errs = append(errs, fmt.Sprintf("expected %d questions, got %d", want, len(set.Questions)))
	}

	for i, q := range set.Questions {
		qNum := i + 1

		if strings.TrimSpace(q.Statement) == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty statement", qNum))
		}

		if len(q.Options) < MinOptions {
			errs = append(errs, fmt.Sprintf("question %d: expected at least %d options, got %d", qNum, MinOptions, len(q.Options)))
			continue
		}

		for j, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				errs = append(errs, fmt.Sprintf("question %d: option %d is empty", qNum, j))
			}
		}

		if q.CorrectOptionIndex < 0 || q.CorrectOptionIndex >= len(q.Options) {
			errs = append(errs, fmt.Sprintf("question %d: correctOptionIndex %d out of range [0, %d)", qNum, q.CorrectOptionIndex, len(q.Options)))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}
