package quiz

import (
	"math/rand"
	"testing"
	"time"

	"github.com/css-prep/backend/internal/models"
)

func makeSet(n int) *models.QuestionSet {
	set := &models.QuestionSet{Subject: "Pakistan Affairs", Questions: make([]models.Question, n)}
	for i := 0; i < n; i++ {
		set.Questions[i] = models.Question{
			ID:                 i + 1,
			Statement:          "Statement",
			Options:            []string{"A", "B", "C", "D"},
			CorrectOptionIndex: i % 4,
		}
	}
	return set
}

func TestGrade_Classification(t *testing.T) {
	set := makeSet(15)
	set.Questions[0].CorrectOptionIndex = 2

	tests := []struct {
		name    string
		answers map[int]int
		want    models.QuestionStatus
	}{
		{"matching selection is right", map[int]int{1: 2}, models.StatusCorrect},
		{"other selection is wrong", map[int]int{1: 0}, models.StatusWrong},
		{"no selection is empty", map[int]int{}, models.StatusEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Grade(set, tt.answers, "Pakistan Affairs", time.Now())

			var got models.QuestionStatus
			switch {
			case contains(r.Right, 1):
				got = models.StatusCorrect
			case contains(r.Wrong, 1):
				got = models.StatusWrong
			case contains(r.Empty, 1):
				got = models.StatusEmpty
			}
			if got != tt.want {
				t.Errorf("question 1 classified %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGrade_PartitionProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	set := makeSet(15)

	for trial := 0; trial < 500; trial++ {
		answers := map[int]int{}
		for _, q := range set.Questions {
			if rng.Intn(3) > 0 {
				answers[q.ID] = rng.Intn(len(q.Options))
			}
		}

		r := Grade(set, answers, "Economics", time.Now())

		if r.Totals.Right+r.Totals.Wrong+r.Totals.Empty != 15 {
			t.Fatalf("trial %d: totals %+v do not sum to 15", trial, r.Totals)
		}
		if r.Totals.Right != len(r.Right) || r.Totals.Wrong != len(r.Wrong) || r.Totals.Empty != len(r.Empty) {
			t.Fatalf("trial %d: totals %+v disagree with sets", trial, r.Totals)
		}

		seen := map[int]int{}
		for _, ids := range [][]int{r.Right, r.Wrong, r.Empty} {
			for _, id := range ids {
				seen[id]++
			}
		}
		for id := 1; id <= 15; id++ {
			if seen[id] != 1 {
				t.Fatalf("trial %d: question %d appears %d times", trial, id, seen[id])
			}
		}

		for _, q := range set.Questions {
			sel, answered := answers[q.ID]
			switch {
			case !answered && !contains(r.Empty, q.ID):
				t.Fatalf("trial %d: unanswered question %d not empty", trial, q.ID)
			case answered && sel == q.CorrectOptionIndex && !contains(r.Right, q.ID):
				t.Fatalf("trial %d: question %d should be right", trial, q.ID)
			case answered && sel != q.CorrectOptionIndex && !contains(r.Wrong, q.ID):
				t.Fatalf("trial %d: question %d should be wrong", trial, q.ID)
			}
		}
	}
}

func TestGrade_EmptySetsEncodeAsArrays(t *testing.T) {
	set := makeSet(2)
	r := Grade(set, map[int]int{}, "Economics", time.Now())

	if r.Right == nil || r.Wrong == nil {
		t.Fatal("right and wrong should be empty slices, not nil")
	}
	if r.Subject != "Economics" {
		t.Errorf("subject = %q", r.Subject)
	}
}

func TestShouldCelebrate(t *testing.T) {
	tests := []struct {
		right int
		want  bool
	}{
		{9, false},
		{10, true},
		{15, true},
		{0, false},
	}

	for _, tt := range tests {
		r := models.QuizResult{Totals: models.Totals{Right: tt.right}}
		if got := ShouldCelebrate(r); got != tt.want {
			t.Errorf("ShouldCelebrate(right=%d) = %v, want %v", tt.right, got, tt.want)
		}
	}
}

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
