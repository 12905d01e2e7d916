package models

// Difficulty is the label passed to the question provider.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// QuestionSetSize is the number of questions in every generated set.
const QuestionSetSize = 15

// ── Provider contract ─────────────────────────────────────

// GenerateRequest is what the presentation asks the provider for.
type GenerateRequest struct {
	Subject            string     `json:"subject"`
	Count              int        `json:"count"`
	Difficulty         Difficulty `json:"difficulty"`
	PakistanOnly       bool       `json:"pakistanOnly"`
	PakistanOnlyStrict bool       `json:"pakistanOnlyStrict"`
}

// NewGenerateRequest returns the fixed request used for every quiz load.
func NewGenerateRequest(subject string) GenerateRequest {
	return GenerateRequest{
		Subject:            subject,
		Count:              QuestionSetSize,
		Difficulty:         DifficultyMedium,
		PakistanOnly:       true,
		PakistanOnlyStrict: true,
	}
}

// Question is one multiple-choice question. ID is its 1-based position in the set.
type Question struct {
	ID                 int      `json:"id"`
	Statement          string   `json:"statement"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correctOptionIndex"`
}

// QuestionSet is the all-or-nothing result of one provider call.
type QuestionSet struct {
	Subject   string     `json:"subject,omitempty"`
	Questions []Question `json:"questions"`
}

// IDs returns the question identifiers in set order.
func (qs *QuestionSet) IDs() []int {
	ids := make([]int, len(qs.Questions))
	for i, q := range qs.Questions {
		ids[i] = q.ID
	}
	return ids
}

// Find returns the question with the given identifier.
func (qs *QuestionSet) Find(id int) (Question, bool) {
	for _, q := range qs.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
