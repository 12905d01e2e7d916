package quiz

import (
	"time"

	"github.com/css-prep/backend/internal/models"
)

const (
	// CelebrationThreshold is the right-answer count that earns a celebration.
	CelebrationThreshold = 10
	// CelebrationDuration is how long the celebration signal stays on.
	CelebrationDuration = 3 * time.Second
)

// Grade classifies every question of set against answers, keyed by question
// ID. A question is right when the selection equals the correct index, empty
// when nothing was selected, and wrong otherwise.
func Grade(set *models.QuestionSet, answers map[int]int, subject string, at time.Time) models.QuizResult {
	right := []int{}
	wrong := []int{}
	empty := []int{}

	for _, q := range set.Questions {
		selected, ok := answers[q.ID]
		switch {
		case !ok:
			empty = append(empty, q.ID)
		case selected == q.CorrectOptionIndex:
			right = append(right, q.ID)
		default:
			wrong = append(wrong, q.ID)
		}
	}

	return models.QuizResult{
		Right: right,
		Wrong: wrong,
		Empty: empty,
		Totals: models.Totals{
			Right: len(right),
			Wrong: len(wrong),
			Empty: len(empty),
		},
		Timestamp: at.UTC(),
		Subject:   subject,
	}
}

// ShouldCelebrate reports whether r earns the celebration signal.
func ShouldCelebrate(r models.QuizResult) bool {
	return r.Totals.Right >= CelebrationThreshold
}
