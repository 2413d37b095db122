// Package storage contains the storage-agnostic contracts used to persist the
// derived tables. Concrete backends (SQLite, MySQL, Postgres, MSSQL) live in
// subpackages and register themselves with the factory below; the rest of the
// application depends only on Repository.
package storage

import (
	"context"
	"fmt"
	"sync"
)

// Column describes one column of a derived table in backend-neutral terms.
// Kind is one of "text", "integer", "real"; each backend maps it onto its own
// SQL type.
type Column struct {
	Name    string
	Kind    string
	NotNull bool
}

// Repository is the minimal sink interface the pipeline writes through.
//
// Recreate must implement drop-and-recreate semantics: the derived tables are
// fully rebuilt on every run, never incrementally mutated.
type Repository interface {
	Recreate(ctx context.Context, table string, cols []Column) error
	CopyFrom(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)
	Close()
}

// Config selects and configures a backend.
type Config struct {
	Kind string // registered backend name, e.g. "sqlite"
	DSN  string // backend-specific connection string
}

// Factory constructs a Repository for a Config.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	regMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers (or replaces) the factory for a storage kind. It is
// called from backend packages' init functions.
func Register(kind string, fn Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	factories[kind] = fn
}

// New opens a Repository for cfg.Kind. Backends become available by importing
// their packages (typically via the storage/all wiring package).
func New(ctx context.Context, cfg Config) (Repository, error) {
	regMu.RLock()
	fn, ok := factories[cfg.Kind]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: no backend registered for kind %q", cfg.Kind)
	}
	return fn(ctx, cfg)
}
