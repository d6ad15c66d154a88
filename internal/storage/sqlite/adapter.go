package sqlite

import (
	"context"
	"fmt"

	"oncoclean/internal/ddl"
	"oncoclean/internal/storage"
	"oncoclean/internal/table"
)

// newRepository is a test hook that points to NewRepository by default.
// Tests may replace this variable to avoid real DB connections.
var newRepository = NewRepository

// wrappedRepo adapts *Repository to storage.Repository, adding Close.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}

var _ storage.Repository = (*wrappedRepo)(nil)

func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, closeFn, err := newRepository(ctx, Config{
			DSN:     cfg.DSN,
			Table:   cfg.Table,
			Columns: cfg.Columns,
		})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})

	storage.RegisterDDL("sqlite", func(ctx context.Context, repo storage.Repository, fqn string, columns []string, kinds []table.Kind) error {
		sql, err := Dialect.CreateTable(ddl.FromTable(fqn, columns, kinds, MapKind))
		if err != nil {
			return fmt.Errorf("sqlite ddl: %w", err)
		}
		return repo.Exec(ctx, sql)
	})
}
