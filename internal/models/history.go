package models

import (
	"math"
	"time"
)

// Totals holds the cardinalities of a result's identifier sets.
type Totals struct {
	Right int `json:"right"`
	Wrong int `json:"wrong"`
	Empty int `json:"empty"`
}

// QuizResult is the immutable snapshot produced by one scoring action.
// Its JSON shape is the persisted "quiz-sessions" entry layout.
type QuizResult struct {
	Right     []int     `json:"right"`
	Wrong     []int     `json:"wrong"`
	Empty     []int     `json:"empty"`
	Totals    Totals    `json:"totals"`
	Timestamp time.Time `json:"timestamp"`
	Subject   string    `json:"subject"`
	Group     string    `json:"group,omitempty"`
}

// Percentage is the share of right answers over a full set, rounded.
func (r QuizResult) Percentage() int {
	return int(math.Round(float64(r.Totals.Right) / float64(QuestionSetSize) * 100))
}

// ScoreBand grades a result for display.
type ScoreBand string

const (
	BandGood ScoreBand = "good"
	BandFair ScoreBand = "fair"
	BandPoor ScoreBand = "poor"
)

// Band returns good at 80% and above, fair at 60% and above, poor otherwise.
func (r QuizResult) Band() ScoreBand {
	scaled := r.Totals.Right * 100
	switch {
	case scaled >= 80*QuestionSetSize:
		return BandGood
	case scaled >= 60*QuestionSetSize:
		return BandFair
	default:
		return BandPoor
	}
}

// ── Response Types ────────────────────────────────────────

type HistoryEntry struct {
	QuizResult
	Percentage int       `json:"percentage"`
	Band       ScoreBand `json:"band"`
}

type HistoryListResponse struct {
	Sessions []HistoryEntry `json:"sessions"`
	Total    int            `json:"total"`
}

// NewHistoryListResponse decorates stored results for display.
func NewHistoryListResponse(results []QuizResult) HistoryListResponse {
	entries := make([]HistoryEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, HistoryEntry{
			QuizResult: r,
			Percentage: r.Percentage(),
			Band:       r.Band(),
		})
	}
	return HistoryListResponse{Sessions: entries, Total: len(entries)}
}

// ── Request Types ────────────────────────────────────────

type ResetRequest struct {
	Confirmation string `json:"confirmation" validate:"required"`
}
