// Package history keeps the bounded, newest-first log of scored quizzes.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/css-prep/backend/internal/kv"
	"github.com/css-prep/backend/internal/models"
	"github.com/rs/zerolog"
)

const (
	// SessionsKey is the storage key of the persisted result list.
	SessionsKey = "quiz-sessions"
	// MaxEntries caps the stored list; older entries are evicted.
	MaxEntries = 20
	// ResetPhrase must be typed exactly to wipe all application data.
	ResetPhrase = "reset me"
)

var ErrInvalidConfirmation = errors.New("confirmation phrase does not match")

type Store struct {
	kv  kv.Store
	log zerolog.Logger

	// mu serialises read-modify-write cycles of Append.
	mu sync.Mutex
}

func NewStore(store kv.Store, log zerolog.Logger) *Store {
	return &Store{kv: store, log: log}
}

// Append stores result at the front of the list and truncates it to MaxEntries.
func (s *Store) Append(ctx context.Context, result models.QuizResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.Load(ctx)
	if err != nil {
		return err
	}

	sessions = append([]models.QuizResult{result}, sessions...)
	if len(sessions) > MaxEntries {
		sessions = sessions[:MaxEntries]
	}

	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := s.kv.Set(ctx, SessionsKey, data); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// Load returns the stored results, newest first. Absent or malformed data
// yields an empty list; only backend failures are returned as errors.
func (s *Store) Load(ctx context.Context) ([]models.QuizResult, error) {
	data, err := s.kv.Get(ctx, SessionsKey)
	if errors.Is(err, kv.ErrNotFound) {
		return []models.QuizResult{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	var sessions []models.QuizResult
	if err := json.Unmarshal(data, &sessions); err != nil {
		s.log.Warn().Err(err).Str("key", SessionsKey).Msg("malformed history, treating as empty")
		return []models.QuizResult{}, nil
	}
	if sessions == nil {
		sessions = []models.QuizResult{}
	}
	return sessions, nil
}

// Clear removes the stored result list.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, SessionsKey); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// ResetAll wipes every key in the backing store once confirmation equals ResetPhrase.
func (s *Store) ResetAll(ctx context.Context, confirmation string) error {
	if confirmation != ResetPhrase {
		return ErrInvalidConfirmation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Clear(ctx); err != nil {
		return fmt.Errorf("reset application data: %w", err)
	}
	s.log.Info().Msg("application data reset")
	return nil
}
