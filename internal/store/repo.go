package store

import (
	"context"
	"time"
)

// QueryOpts filters and paginates event queries.
type QueryOpts struct {
	SubmissionID string // exact match, empty = any
	LearnerID    string // exact match, empty = any
	After        int64  // sequence > After
	Limit        int    // most recent N (0 = unlimited)
}

// ResponseEventData is what the grader records for one answered question.
type ResponseEventData struct {
	SubmissionID        string
	LearnerID           string
	QuestionIndex       int
	QuestionType        string
	Outcome             string
	IsCorrect           bool
	ResponseTimeSeconds float64
}

// ResponseEvent is a stored ResponseEventData.
type ResponseEvent struct {
	Sequence  int64     `json:"sequence"`
	Timestamp time.Time `json:"timestamp"`

	SubmissionID        string  `json:"submissionId"`
	LearnerID           string  `json:"learnerId,omitempty"`
	QuestionIndex       int     `json:"questionIndex"`
	QuestionType        string  `json:"questionType"`
	Outcome             string  `json:"outcome"`
	IsCorrect           bool    `json:"isCorrect"`
	ResponseTimeSeconds float64 `json:"responseTimeSeconds"`
}

// LLMRequestEventData captures a single LLM request.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	CostUSD      float64
}

// LLMRequestEvent is a stored LLMRequestEventData.
type LLMRequestEvent struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo appends and queries grading and LLM events. Both the SQLite
// and the PostgreSQL stores implement it.
type EventRepo interface {
	AppendResponse(ctx context.Context, data ResponseEventData) error

	// QueryResponses returns matching events in sequence order. With a
	// Limit, the most recent events are kept.
	QueryResponses(ctx context.Context, opts QueryOpts) ([]ResponseEvent, error)

	// OutcomeTally counts matching events per outcome.
	OutcomeTally(ctx context.Context, opts QueryOpts) (map[string]int, error)

	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)
}
