// Package quiz runs quiz sessions: loading a generated question set,
// recording answers, scoring and recording the result in history.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/css-prep/backend/internal/generator"
	"github.com/css-prep/backend/internal/models"
	"github.com/rs/zerolog"
)

var (
	ErrGenerationFailed = errors.New("question generation failed")
	ErrSuperseded       = errors.New("load superseded by a newer request")
	ErrNoQuestionSet    = errors.New("no question set loaded")
	ErrUnknownQuestion  = errors.New("unknown question")
	ErrInvalidOption    = errors.New("option index out of range")
	ErrNotReviewing     = errors.New("quiz has not been scored")
)

// GenerationFailedMessage is shown to the user when a load fails.
const GenerationFailedMessage = "Failed to generate MCQs. The service might not be working. Please try again."

// Provider produces question sets. generator.Generator and
// generator.RemoteClient implement it.
type Provider interface {
	Generate(ctx context.Context, req models.GenerateRequest) (*models.QuestionSet, error)
}

// Recorder receives every scored result.
type Recorder interface {
	Append(ctx context.Context, result models.QuizResult) error
}

// Controller owns one subject's quiz attempt.
//
// State machine:
//
//	idle -> loading -> answering | failed
//	answering -> answering (SetAnswer) -> reviewing (Score)
//	any -> loading (Load, Retry, Next)
//
// Concurrent loads resolve as last-request-wins: a new load cancels the
// previous provider call and any older response is discarded.
type Controller struct {
	subject  string
	provider Provider
	history  Recorder
	log      zerolog.Logger
	now      func() time.Time

	mu             sync.Mutex
	state          models.SessionState
	set            *models.QuestionSet
	answers        map[int]int
	result         *models.QuizResult
	showCorrect    bool
	celebrateUntil time.Time
	seq            uint64
	cancel         context.CancelFunc
}

func NewController(subject string, provider Provider, history Recorder, log zerolog.Logger) *Controller {
	return &Controller{
		subject:  subject,
		provider: provider,
		history:  history,
		log:      log.With().Str("subject", subject).Logger(),
		now:      time.Now,
		state:    models.StateIdle,
	}
}

func (c *Controller) Subject() string {
	return c.subject
}

func (c *Controller) State() models.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Load discards the current attempt and fetches a fresh question set.
// Failures leave the controller in the failed state and wrap ErrGenerationFailed.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	c.cancel = cancel

	c.state = models.StateLoading
	c.set = nil
	c.answers = nil
	c.result = nil
	c.showCorrect = false
	c.celebrateUntil = time.Time{}
	c.mu.Unlock()

	set, err := c.provider.Generate(ctx, models.NewGenerateRequest(c.subject))
	if err == nil {
		if set == nil {
			err = errors.New("provider returned no question set")
		} else {
			err = generator.ValidateSet(set, models.QuestionSetSize)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		c.log.Debug().Uint64("seq", seq).Msg("discarding superseded question set")
		return ErrSuperseded
	}
	c.cancel = nil

	if err != nil {
		c.state = models.StateFailed
		c.log.Error().Err(err).Msg("failed to fetch MCQs")
		return fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	c.set = numbered(set)
	c.answers = make(map[int]int, len(set.Questions))
	c.state = models.StateAnswering
	return nil
}

// numbered copies set with question IDs 1..n in set order, so each
// question has a unique identifier whatever the provider sent.
func numbered(set *models.QuestionSet) *models.QuestionSet {
	out := &models.QuestionSet{Subject: set.Subject, Questions: make([]models.Question, len(set.Questions))}
	copy(out.Questions, set.Questions)
	for i := range out.Questions {
		out.Questions[i].ID = i + 1
	}
	return out
}

// Retry fetches a fresh set for the same subject.
func (c *Controller) Retry(ctx context.Context) error {
	return c.Load(ctx)
}

// Next fetches a fresh set; there is no fixed bank to advance through.
func (c *Controller) Next(ctx context.Context) error {
	return c.Load(ctx)
}

// SetAnswer records or overwrites the selection for a question. Answers are
// locked once the quiz is scored; calls in that state do nothing.
func (c *Controller) SetAnswer(questionID, optionIndex int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == models.StateReviewing {
		return nil
	}
	if c.state != models.StateAnswering || c.set == nil {
		return ErrNoQuestionSet
	}

	q, ok := c.set.Find(questionID)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownQuestion, questionID)
	}
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return fmt.Errorf("%w: question %d has %d options", ErrInvalidOption, questionID, len(q.Options))
	}

	c.answers[questionID] = optionIndex
	return nil
}

// Score grades the attempt, moves to reviewing and appends the result to
// history. Scoring an already reviewed attempt returns the same result.
// The history write outlives cancellation of ctx.
func (c *Controller) Score(ctx context.Context) (models.QuizResult, error) {
	c.mu.Lock()
	if c.state == models.StateReviewing && c.result != nil {
		r := *c.result
		c.mu.Unlock()
		return r, nil
	}
	if c.state != models.StateAnswering || c.set == nil {
		c.mu.Unlock()
		return models.QuizResult{}, ErrNoQuestionSet
	}

	now := c.now()
	result := Grade(c.set, c.answers, c.subject, now)
	c.result = &result
	c.state = models.StateReviewing
	if ShouldCelebrate(result) {
		c.celebrateUntil = now.Add(CelebrationDuration)
	}
	c.mu.Unlock()

	c.log.Info().
		Int("right", result.Totals.Right).
		Int("wrong", result.Totals.Wrong).
		Int("empty", result.Totals.Empty).
		Msg("quiz scored")

	if c.history != nil {
		if err := c.history.Append(context.WithoutCancel(ctx), result); err != nil {
			c.log.Error().Err(err).Msg("failed to save quiz session")
		}
	}

	return result, nil
}

// ShowCorrectAnswers toggles the correct-answer list of a scored attempt.
func (c *Controller) ShowCorrectAnswers(show bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != models.StateReviewing {
		return ErrNotReviewing
	}
	c.showCorrect = show
	return nil
}

// Celebrating reports whether the celebration window is open.
func (c *Controller) Celebrating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.celebratingLocked()
}

func (c *Controller) celebratingLocked() bool {
	return !c.celebrateUntil.IsZero() && c.now().Before(c.celebrateUntil)
}

// IdleView is the view of a subject that has never been loaded.
func IdleView(subject string) models.SessionView {
	return models.SessionView{
		State:     models.StateIdle,
		Subject:   subject,
		Questions: []models.QuestionView{},
	}
}

// View renders the session for the presentation layer.
func (c *Controller) View() models.SessionView {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := models.SessionView{
		State:              c.state,
		Subject:            c.subject,
		Questions:          []models.QuestionView{},
		Celebrating:        c.celebratingLocked(),
		ShowCorrectAnswers: c.showCorrect,
	}
	if c.state == models.StateFailed {
		view.Error = GenerationFailedMessage
	}
	if c.set == nil {
		return view
	}

	reviewing := c.state == models.StateReviewing
	status := map[int]models.QuestionStatus{}
	if reviewing && c.result != nil {
		view.Result = c.result
		for _, id := range c.result.Right {
			status[id] = models.StatusCorrect
		}
		for _, id := range c.result.Wrong {
			status[id] = models.StatusWrong
		}
		for _, id := range c.result.Empty {
			status[id] = models.StatusEmpty
		}
	}

	for _, q := range c.set.Questions {
		qv := models.QuestionView{
			ID:        q.ID,
			Statement: q.Statement,
			Options:   q.Options,
			Status:    models.StatusUnanswered,
		}
		if sel, ok := c.answers[q.ID]; ok {
			sel := sel
			qv.SelectedOption = &sel
			view.Progress.Answered++
		}
		if reviewing {
			correct := q.CorrectOptionIndex
			qv.CorrectOptionIndex = &correct
			qv.Status = status[q.ID]
		}
		view.Questions = append(view.Questions, qv)
	}
	view.Progress.Total = len(c.set.Questions)

	return view
}
