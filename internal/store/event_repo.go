package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
)

// eventRepo implements EventRepo on SQLite.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendResponse(ctx context.Context, data ResponseEventData) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	q, args := insertResponse(dialect.SQLite, seq, time.Now().UTC(), data)
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("save response event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryResponses(ctx context.Context, opts QueryOpts) ([]ResponseEvent, error) {
	q, args := selectResponses(dialect.SQLite, opts)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query response events: %w", err)
	}
	defer rows.Close()

	var out []ResponseEvent
	for rows.Next() {
		e, err := scanResponse(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan response event: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query response events: %w", err)
	}
	return oldestFirst(out), nil
}

func (r *eventRepo) OutcomeTally(ctx context.Context, opts QueryOpts) (map[string]int, error) {
	q, args := selectOutcomeTally(dialect.SQLite, opts)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("tally outcomes: %w", err)
	}
	defer rows.Close()

	tally := make(map[string]int)
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("scan tally: %w", err)
		}
		tally[outcome] = n
	}
	return tally, rows.Err()
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	q, args := insertLLMRequest(dialect.SQLite, seq, time.Now().UTC(), data)
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	q, args := selectLLMEvents(dialect.SQLite, opts)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestEvent
	for rows.Next() {
		e, err := scanLLMEvent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan LLM event: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	return oldestFirst(out), nil
}
