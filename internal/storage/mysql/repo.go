// Package mysql implements a MySQL-backed storage.Repository. The original
// analysis system kept its derived tables in MySQL, so this backend keeps the
// output consumable by the existing downstream reporting.
//
// Inserts use a multi-row INSERT inside a transaction, which is MySQL's
// practical bulk path without LOAD DATA.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"oecdhw/internal/storage"
)

// Config holds MySQL repository configuration.
type Config struct {
	// DSN is a go-sql-driver DSN, e.g. "user:pass@tcp(localhost:3306)/oecd".
	DSN string
}

// Repository is a MySQL-backed implementation of storage.Repository.
type Repository struct {
	db *sql.DB
}

// init registers the "mysql" backend with the factory.
func init() {
	storage.Register("mysql", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
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

// NewRepository opens a MySQL connection pool and returns a Repository plus a
// Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("mysql: DSN must not be empty")
	}

	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("mysql: open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("mysql: ping: %w", err)
	}

	closeFn := func() { db.Close() }
	return &Repository{db: db}, closeFn, nil
}

// sqlType maps the backend-neutral column kind onto a MySQL type.
func sqlType(kind string) string {
	switch kind {
	case "integer":
		return "INT"
	case "real":
		return "DOUBLE"
	default:
		return "VARCHAR(255)"
	}
}

// Recreate drops table if it exists and creates it fresh from cols.
func (r *Repository) Recreate(ctx context.Context, table string, cols []storage.Column) error {
	if len(cols) == 0 {
		return fmt.Errorf("mysql: Recreate %s: no columns", table)
	}
	if _, err := r.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(table)); err != nil {
		return fmt.Errorf("mysql: drop %s: %w", table, err)
	}
	defs := make([]string, len(cols))
	for i, c := range cols {
		def := quoteIdent(c.Name) + " " + sqlType(c.Kind)
		if c.NotNull {
			def += " NOT NULL"
		}
		defs[i] = def
	}
	ddl := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(table), strings.Join(defs, ", "))
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("mysql: create %s: %w", table, err)
	}
	return nil
}

// CopyFrom inserts rows into table using a single multi-row INSERT per call,
// wrapped in a transaction. It returns the number of rows inserted.
func (r *Repository) CopyFrom(
	ctx context.Context,
	table string,
	columns []string,
	rows [][]any,
) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("mysql: CopyFrom: columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil
	}

	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quoteIdent(c)
	}
	single := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"

	values := make([]string, 0, len(rows))
	args := make([]any, 0, len(rows)*len(columns))
	for _, row := range rows {
		if len(row) != len(columns) {
			return 0, fmt.Errorf("mysql: CopyFrom: row length %d != columns length %d", len(row), len(columns))
		}
		values = append(values, single)
		args = append(args, row...)
	}

	stmtSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES %s",
		quoteIdent(table),
		strings.Join(quoted, ", "),
		strings.Join(values, ", "),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("mysql: begin tx: %w", err)
	}
	res, err := tx.ExecContext(ctx, stmtSQL, args...)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("mysql: insert: %w", err)
	}
	inserted, _ := res.RowsAffected()
	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("mysql: commit: %w", err)
	}
	return inserted, nil
}

// quoteIdent quotes an identifier with backticks.
func quoteIdent(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}
