package mssql

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

var _ storage.Repository = (*wrappedRepo)(nil)

// wrappedRepo adapts *Repository to storage.Repository and provides Close.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

func (w *wrappedRepo) Close() { w.closeFn() }

func init() {
	storage.Register("mssql", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
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

	storage.RegisterDDL("mssql", func(ctx context.Context, repo storage.Repository, fqn string, columns []string, kinds []table.Kind) error {
		sql, err := BuildCreateTableSQL(ddl.FromTable(fqn, columns, kinds, MapKind))
		if err != nil {
			return err
		}
		if err := repo.Exec(ctx, sql); err != nil {
			return fmt.Errorf("apply DDL: %w", err)
		}
		return nil
	})
}
