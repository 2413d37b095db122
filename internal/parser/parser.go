// Package parser defines the shared contract for raw input parsers: a full
// read of one source into generic records plus a count of soft-skipped rows.
package parser

import (
	"io"

	"oecdhw/pkg/records"
)

// Parser reads one raw input completely. The int return counts rows that were
// skipped as malformed rather than failing the parse.
type Parser interface {
	Parse(r io.Reader) ([]records.Record, int, error)
}
