package models

// SessionState is the controller's position in the quiz lifecycle.
type SessionState string

const (
	StateIdle      SessionState = "idle"
	StateLoading   SessionState = "loading"
	StateAnswering SessionState = "answering"
	StateReviewing SessionState = "reviewing"
	StateFailed    SessionState = "failed"
)

// QuestionStatus is a question's review classification.
type QuestionStatus string

const (
	StatusUnanswered QuestionStatus = "unanswered"
	StatusCorrect    QuestionStatus = "correct"
	StatusWrong      QuestionStatus = "wrong"
	StatusEmpty      QuestionStatus = "empty"
)

// QuestionView is a question as shown to the user. CorrectOptionIndex is only
// set while reviewing.
type QuestionView struct {
	ID                 int            `json:"id"`
	Statement          string         `json:"statement"`
	Options            []string       `json:"options"`
	SelectedOption     *int           `json:"selected_option"`
	CorrectOptionIndex *int           `json:"correct_option_index,omitempty"`
	Status             QuestionStatus `json:"status"`
}

type Progress struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
}

// SessionView is the full renderable state of one quiz session.
type SessionView struct {
	State              SessionState   `json:"state"`
	Subject            string         `json:"subject"`
	Questions          []QuestionView `json:"questions"`
	Progress           Progress       `json:"progress"`
	Result             *QuizResult    `json:"result,omitempty"`
	Celebrating        bool           `json:"celebrating"`
	ShowCorrectAnswers bool           `json:"show_correct_answers"`
	Error              string         `json:"error,omitempty"`
}

// ── Request Types ────────────────────────────────────────

type AnswerRequest struct {
	OptionIndex *int `json:"option_index" validate:"required,min=0"`
}

type RevealRequest struct {
	Show bool `json:"show"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
