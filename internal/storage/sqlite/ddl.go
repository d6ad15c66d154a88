package sqlite

import (
	"strings"

	"oncoclean/internal/ddl"
	"oncoclean/internal/table"
)

// Dialect renders SQLite DDL: double-quoted identifiers and
// CREATE TABLE IF NOT EXISTS.
var Dialect = ddl.Dialect{
	Name:        "sqlite ddl",
	QuoteIdent:  func(id string) string { return `"` + strings.ReplaceAll(id, `"`, `""`) + `"` },
	IfNotExists: true,
}

// MapKind maps a column kind to a SQLite type affinity.
func MapKind(k table.Kind) string {
	switch k {
	case table.Int:
		return "INTEGER"
	case table.Float:
		return "REAL"
	default:
		return "TEXT"
	}
}
