// Package postgres implements a Postgres-backed storage.Repository using pgx
// v5. Bulk writes go through the native COPY protocol via pgx.CopyFrom.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"oecdhw/internal/storage"
)

// Config holds Postgres repository configuration.
type Config struct {
	// DSN is a pgxpool connection string, e.g. "postgres://user@host/db".
	DSN string
}

// Repository is a Postgres-backed implementation of storage.Repository.
type Repository struct {
	pool *pgxpool.Pool
}

// init registers the "postgres" backend with the factory.
func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, closeFn, err := NewRepository(ctx, Config{DSN: cfg.DSN})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})
}

// wrappedRepo adapts *Repository to storage.Repository and provides Close.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

func (w *wrappedRepo) Close() { w.closeFn() }

// NewRepository constructs a Repository and returns a Close function for
// cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("postgres: DSN must not be empty")
	}
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres: pgxpool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("postgres: ping: %w", err)
	}
	closeFn := func() { pool.Close() }
	return &Repository{pool: pool}, closeFn, nil
}

// sqlType maps the backend-neutral column kind onto a Postgres type.
func sqlType(kind string) string {
	switch kind {
	case "integer":
		return "INTEGER"
	case "real":
		return "DOUBLE PRECISION"
	default:
		return "TEXT"
	}
}

// Recreate drops table if it exists and creates it fresh from cols.
func (r *Repository) Recreate(ctx context.Context, table string, cols []storage.Column) error {
	if len(cols) == 0 {
		return fmt.Errorf("postgres: Recreate %s: no columns", table)
	}
	if _, err := r.pool.Exec(ctx, "DROP TABLE IF EXISTS "+pgIdent(table)); err != nil {
		return fmt.Errorf("postgres: drop %s: %w", table, err)
	}
	defs := make([]string, len(cols))
	for i, c := range cols {
		def := pgIdent(c.Name) + " " + sqlType(c.Kind)
		if c.NotNull {
			def += " NOT NULL"
		}
		defs[i] = def
	}
	ddl := fmt.Sprintf("CREATE TABLE %s (%s)", pgIdent(table), strings.Join(defs, ", "))
	if _, err := r.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("postgres: create %s: %w", table, err)
	}
	return nil
}

// CopyFrom bulk-inserts rows into table via the COPY protocol.
func (r *Repository) CopyFrom(
	ctx context.Context,
	table string,
	columns []string,
	rows [][]any,
) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("postgres: CopyFrom: columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil
	}
	for _, row := range rows {
		if len(row) != len(columns) {
			return 0, fmt.Errorf("postgres: CopyFrom: row length %d != columns length %d", len(row), len(columns))
		}
	}
	n, err := r.pool.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return n, fmt.Errorf("postgres: copy into %s: %w", table, err)
	}
	return n, nil
}

// pgIdent double-quotes an identifier.
func pgIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
