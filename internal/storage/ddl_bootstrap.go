package storage

import (
	"context"
	"fmt"
	"sync"

	"oncoclean/internal/table"
)

// DDLBootstrapper creates the export table for one backend: it maps the
// column kinds to backend types and applies the DDL through repo.Exec.
type DDLBootstrapper func(ctx context.Context, repo Repository, fqn string, columns []string, kinds []table.Kind) error

var (
	ddlMu  sync.RWMutex
	ddlFns = map[string]DDLBootstrapper{}
)

// RegisterDDL registers (or replaces) the DDLBootstrapper for kind.
func RegisterDDL(kind string, fn DDLBootstrapper) {
	ddlMu.Lock()
	defer ddlMu.Unlock()
	ddlFns[kind] = fn
}

// EnsureTable creates fqn for t's columns unless it already exists, using
// the bootstrapper registered for kind.
func EnsureTable(ctx context.Context, kind string, repo Repository, fqn string, t *table.Table) error {
	ddlMu.RLock()
	fn, ok := ddlFns[kind]
	ddlMu.RUnlock()
	if !ok {
		return fmt.Errorf("no DDL bootstrapper registered for storage.kind=%q", kind)
	}
	return fn(ctx, repo, fqn, t.Columns, t.Kinds)
}
