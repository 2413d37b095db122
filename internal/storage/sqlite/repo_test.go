package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"oecdhw/internal/storage"
)

func newTestRepo(t *testing.T) (*Repository, string) {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db")
	repo, closeFn, err := NewRepository(context.Background(), Config{DSN: dsn})
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	t.Cleanup(closeFn)
	return repo, dsn
}

func TestNewRepositoryEmptyDSN(t *testing.T) {
	if _, _, err := NewRepository(context.Background(), Config{}); err == nil {
		t.Fatal("empty DSN accepted")
	}
}

func TestRecreateAndCopyFrom(t *testing.T) {
	repo, dsn := newTestRepo(t)
	ctx := context.Background()

	cols := []storage.Column{
		{Name: "country", Kind: "text", NotNull: true},
		{Name: "year", Kind: "integer", NotNull: true},
		{Name: "hours", Kind: "integer"},
		{Name: "hourly_wage", Kind: "real"},
	}
	if err := repo.Recreate(ctx, "hours", cols); err != nil {
		t.Fatalf("Recreate: %v", err)
	}

	rows := [][]any{
		{"Germany", 2024, 1340, 47.4},
		{"Norway", 2024, nil, nil},
	}
	n, err := repo.CopyFrom(ctx, "hours", []string{"country", "year", "hours", "hourly_wage"}, rows)
	if err != nil {
		t.Fatalf("CopyFrom: %v", err)
	}
	if n != 2 {
		t.Fatalf("inserted = %d, want 2", n)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var country string
	var hours sql.NullInt64
	var hw sql.NullFloat64
	err = db.QueryRow("SELECT country, hours, hourly_wage FROM hours WHERE year = 2024 AND country = 'Norway'").
		Scan(&country, &hours, &hw)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if hours.Valid || hw.Valid {
		t.Errorf("nil values stored as (%v, %v), want NULLs", hours, hw)
	}
}

// Recreate must replace an existing table, not append to it.
func TestRecreateDropsExisting(t *testing.T) {
	repo, dsn := newTestRepo(t)
	ctx := context.Background()
	cols := []storage.Column{{Name: "v", Kind: "integer"}}

	for i := 0; i < 2; i++ {
		if err := repo.Recreate(ctx, "t", cols); err != nil {
			t.Fatalf("Recreate #%d: %v", i+1, err)
		}
		if _, err := repo.CopyFrom(ctx, "t", []string{"v"}, [][]any{{i}}); err != nil {
			t.Fatalf("CopyFrom #%d: %v", i+1, err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM t").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("rows after recreate = %d, want 1", n)
	}
}

func TestCopyFromRowWidthMismatch(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	if err := repo.Recreate(ctx, "t", []storage.Column{{Name: "a", Kind: "text"}, {Name: "b", Kind: "text"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.CopyFrom(ctx, "t", []string{"a", "b"}, [][]any{{"only one"}}); err == nil {
		t.Fatal("row width mismatch accepted")
	}
}

func TestCopyFromEmpty(t *testing.T) {
	repo, _ := newTestRepo(t)
	n, err := repo.CopyFrom(context.Background(), "t", []string{"a"}, nil)
	if err != nil || n != 0 {
		t.Fatalf("empty CopyFrom = (%d, %v), want (0, nil)", n, err)
	}
}
