package store

import (
	"slices"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// Queries are built with ent's SQL builder so the same code serves both
// the SQLite and the PostgreSQL dialect.

var responseColumns = []string{
	"sequence", "timestamp", "submission_id", "learner_id", "question_index",
	"question_type", "outcome", "is_correct", "response_time_seconds",
}

var llmColumns = []string{
	"sequence", "timestamp", "provider", "model", "purpose", "input_tokens",
	"output_tokens", "latency_ms", "success", "error_message", "cost_usd",
}

func insertResponse(d string, seq int64, ts time.Time, e ResponseEventData) (string, []any) {
	return entsql.Dialect(d).Insert(responseTable).
		Columns(responseColumns...).
		Values(seq, ts, e.SubmissionID, e.LearnerID, e.QuestionIndex,
			e.QuestionType, e.Outcome, e.IsCorrect, e.ResponseTimeSeconds).
		Query()
}

func insertLLMRequest(d string, seq int64, ts time.Time, e LLMRequestEventData) (string, []any) {
	return entsql.Dialect(d).Insert(llmTable).
		Columns(llmColumns...).
		Values(seq, ts, e.Provider, e.Model, e.Purpose, e.InputTokens,
			e.OutputTokens, e.LatencyMs, e.Success, e.ErrorMessage, e.CostUSD).
		Query()
}

func filtered(s *entsql.Selector, opts QueryOpts, byResponse bool) *entsql.Selector {
	if byResponse && opts.SubmissionID != "" {
		s.Where(entsql.EQ("submission_id", opts.SubmissionID))
	}
	if byResponse && opts.LearnerID != "" {
		s.Where(entsql.EQ("learner_id", opts.LearnerID))
	}
	if opts.After > 0 {
		s.Where(entsql.GT("sequence", opts.After))
	}
	return s
}

func selectResponses(d string, opts QueryOpts) (string, []any) {
	b := entsql.Dialect(d)
	s := filtered(b.Select(responseColumns...).From(b.Table(responseTable)), opts, true).
		OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		s.Limit(opts.Limit)
	}
	return s.Query()
}

func selectOutcomeTally(d string, opts QueryOpts) (string, []any) {
	b := entsql.Dialect(d)
	return filtered(b.Select("outcome", entsql.As(entsql.Count("*"), "n")).From(b.Table(responseTable)), opts, true).
		GroupBy("outcome").
		Query()
}

func selectLLMEvents(d string, opts QueryOpts) (string, []any) {
	b := entsql.Dialect(d)
	s := filtered(b.Select(llmColumns...).From(b.Table(llmTable)), opts, false).
		OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		s.Limit(opts.Limit)
	}
	return s.Query()
}

type scanFunc func(dest ...any) error

func scanResponse(scan scanFunc) (ResponseEvent, error) {
	var e ResponseEvent
	err := scan(&e.Sequence, &e.Timestamp, &e.SubmissionID, &e.LearnerID, &e.QuestionIndex,
		&e.QuestionType, &e.Outcome, &e.IsCorrect, &e.ResponseTimeSeconds)
	return e, err
}

func scanLLMEvent(scan scanFunc) (LLMRequestEvent, error) {
	var e LLMRequestEvent
	err := scan(&e.Sequence, &e.Timestamp, &e.Provider, &e.Model, &e.Purpose, &e.InputTokens,
		&e.OutputTokens, &e.LatencyMs, &e.Success, &e.ErrorMessage, &e.CostUSD)
	return e, err
}

// oldestFirst restores sequence order after a newest-first limited query.
func oldestFirst[T any](events []T) []T {
	slices.Reverse(events)
	return events
}
