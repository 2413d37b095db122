// Package datasource abstracts where the raw OECD extract files come from.
// The pipeline only needs an io.ReadCloser per input; file-backed sources are
// the norm, but the interface leaves room for remote sources.
package datasource

import (
	"context"
	"io"
)

// Source opens a single raw input for reading.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
