package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrGenreNotFound signals a requested genre name with no matching row.
var ErrGenreNotFound = errors.New("genre not found")

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// genreIDs resolves genre names to ids. Any name without a matching row
// fails the whole resolution, naming the missing genres. Genres are never
// auto-created on this path.
func genreIDs(ctx context.Context, q querier, names []string) ([]int64, error) {
	ids := make([]int64, 0, len(names))
	var missing []string
	for _, name := range names {
		var id int64
		err := q.QueryRowContext(ctx, `
			SELECT id
			FROM genres
			WHERE name = $1
		`, name).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			missing = append(missing, name)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("lookup genre %q: %w", name, err)
		}
		ids = append(ids, id)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("unknown genres %s: %w", strings.Join(missing, ", "), ErrGenreNotFound)
	}
	return ids, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
