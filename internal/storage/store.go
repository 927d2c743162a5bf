package storage

import (
	"context"

	"gemmap/pkg/records"
)

// DefaultBatchSize is used when Store is given a non-positive batch size.
const DefaultBatchSize = 500

// Store writes every row of t through repo in batches and returns the number
// of rows inserted. Missing cells are stored as empty strings.
func Store(ctx context.Context, repo Repository, t records.Table, batchSize int) (int64, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	in := make(chan []any, batchSize)
	go func() {
		defer close(in)
		for i := 0; i < t.Len(); i++ {
			vals := t.Values(i)
			row := make([]any, len(vals))
			for j, v := range vals {
				row[j] = v
			}
			select {
			case in <- row:
			case <-ctx.Done():
				return
			}
		}
	}()

	return LoadBatches(ctx, t.Columns, in, batchSize, repo.CopyFrom)
}
