package postgres

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

// wrappedRepo adds the storage.Repository Close method to *Repository.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

var _ storage.Repository = (*wrappedRepo)(nil)

func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}

func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
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

	storage.RegisterDDL("postgres", func(ctx context.Context, repo storage.Repository, fqn string, columns []string, kinds []table.Kind) error {
		sql, err := Dialect.CreateTable(ddl.FromTable(fqn, columns, kinds, MapKind))
		if err != nil {
			return err
		}
		if err := repo.Exec(ctx, sql); err != nil {
			return fmt.Errorf("apply DDL: %w", err)
		}
		return nil
	})
}
