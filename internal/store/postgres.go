package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore is the event store for shared deployments. Tables are
// migrated through ent over a database/sql view of the pool; reads and
// writes go straight through pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to databaseURL, verifies the connection and
// migrates the event tables.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	err = migrate(ctx, entsql.OpenDB(dialect.Postgres, db))
	db.Close()
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	if _, err := pool.Exec(ctx, `CREATE SEQUENCE IF NOT EXISTS global_sequence`); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create sequence: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// EventRepo returns the store itself; PostgresStore implements EventRepo.
func (s *PostgresStore) EventRepo() EventRepo {
	return s
}

func (s *PostgresStore) next(ctx context.Context) (int64, error) {
	var seq int64
	if err := s.pool.QueryRow(ctx, `SELECT nextval('global_sequence')`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

func (s *PostgresStore) AppendResponse(ctx context.Context, data ResponseEventData) error {
	seq, err := s.next(ctx)
	if err != nil {
		return err
	}
	q, args := insertResponse(dialect.Postgres, seq, time.Now().UTC(), data)
	if _, err := s.pool.Exec(ctx, q, args...); err != nil {
		return fmt.Errorf("save response event: %w", err)
	}
	return nil
}

func (s *PostgresStore) QueryResponses(ctx context.Context, opts QueryOpts) ([]ResponseEvent, error) {
	q, args := selectResponses(dialect.Postgres, opts)
	rows, err := s.pool.Query(ctx, q, args...)
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

func (s *PostgresStore) OutcomeTally(ctx context.Context, opts QueryOpts) (map[string]int, error) {
	q, args := selectOutcomeTally(dialect.Postgres, opts)
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("tally outcomes: %w", err)
	}
	defer rows.Close()

	tally := make(map[string]int)
	for rows.Next() {
		var outcome string
		var n int64
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("scan tally: %w", err)
		}
		tally[outcome] = int(n)
	}
	return tally, rows.Err()
}

func (s *PostgresStore) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seq, err := s.next(ctx)
	if err != nil {
		return err
	}
	q, args := insertLLMRequest(dialect.Postgres, seq, time.Now().UTC(), data)
	if _, err := s.pool.Exec(ctx, q, args...); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (s *PostgresStore) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	q, args := selectLLMEvents(dialect.Postgres, opts)
	rows, err := s.pool.Query(ctx, q, args...)
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
