package store

import (
	"context"
	"strings"
)

// Backend is an opened event store of either kind.
type Backend interface {
	EventRepo() EventRepo
	Close() error
}

// Connect opens PostgreSQL for postgres:// URLs and SQLite for anything
// else.
func Connect(ctx context.Context, dsn string) (Backend, error) {
	if isPostgresURL(dsn) {
		return OpenPostgres(ctx, dsn)
	}
	return Open(dsn)
}

func isPostgresURL(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
