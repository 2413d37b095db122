// This file implements a generic batched table writer. Backends expose their
// most efficient bulk primitive through Repository.CopyFrom; WriteTable slices
// the row set into batches and emits a concise progress line per flush.
package storage

import (
	"context"
	"fmt"
	"log"
	"time"
)

// DefaultBatchSize is used when the caller passes batchSize <= 0.
const DefaultBatchSize = 500

// WriteTable inserts rows (aligned to columns order) into table in batches.
// It returns the total number of rows reported inserted and the first error
// encountered. An empty row set is a no-op.
func WriteTable(
	ctx context.Context,
	repo Repository,
	table string,
	columns []string,
	rows [][]any,
	batchSize int,
) (int64, error) {
	if repo == nil {
		return 0, fmt.Errorf("storage: WriteTable: repo must not be nil")
	}
	if len(columns) == 0 {
		return 0, fmt.Errorf("storage: WriteTable: columns must not be empty")
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var (
		total   int64
		batches int
		start   = time.Now()
	)
	for lo := 0; lo < len(rows); lo += batchSize {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		hi := lo + batchSize
		if hi > len(rows) {
			hi = len(rows)
		}
		n, err := repo.CopyFrom(ctx, table, columns, rows[lo:hi])
		total += n
		if err != nil {
			return total, fmt.Errorf("storage: write %s: %w", table, err)
		}
		batches++
		log.Printf("%s: batch #%d inserted=%d total=%d elapsed=%s",
			table, batches, n, total, time.Since(start).Truncate(time.Millisecond))
	}
	return total, nil
}
