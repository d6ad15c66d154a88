package storage

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"oncoclean/internal/metrics"
	"oncoclean/internal/table"
)

// DefaultBatchSize is used when ExportOptions.BatchSize is not positive.
const DefaultBatchSize = 500

// ExportOptions tunes Export.
type ExportOptions struct {
	BatchSize int
	Job       string      // metrics job label
	Logger    *log.Logger // nil means log.Default()
}

// Export writes every row of t to repo. A producer goroutine streams rows
// into a channel that LoadBatches drains, so the copy of one batch overlaps
// with queueing the next. It returns the number of rows the backend reports.
func Export(ctx context.Context, repo Repository, t *table.Table, opt ExportOptions) (int64, error) {
	size := opt.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}

	g, gctx := errgroup.WithContext(ctx)
	rows := make(chan []any, size)

	g.Go(func() error {
		defer close(rows)
		for _, r := range t.Rows {
			select {
			case rows <- r:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	var total int64
	g.Go(func() error {
		copyFn := func(ctx context.Context, columns []string, batch [][]any) (int64, error) {
			n, err := repo.CopyFrom(ctx, columns, batch)
			if err == nil {
				metrics.RecordBatches(opt.Job, 1)
			}
			return n, err
		}
		n, err := LoadBatches(gctx, t.Columns, rows, size, copyFn, opt.Logger)
		total = n
		return err
	})

	if err := g.Wait(); err != nil {
		return total, fmt.Errorf("export: %w", err)
	}
	return total, nil
}
