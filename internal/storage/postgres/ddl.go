package postgres

import (
	"strings"

	"oncoclean/internal/ddl"
	"oncoclean/internal/table"
)

// Dialect renders Postgres DDL: double-quoted identifiers and
// CREATE TABLE IF NOT EXISTS.
var Dialect = ddl.Dialect{
	Name:        "postgres ddl",
	QuoteIdent:  quoteIdent,
	IfNotExists: true,
}

// MapKind maps a column kind to a Postgres type.
func MapKind(k table.Kind) string {
	switch k {
	case table.Int:
		return "BIGINT"
	case table.Float:
		return "DOUBLE PRECISION"
	default:
		return "TEXT"
	}
}

// quoteIdent quotes one identifier segment, doubling embedded quotes.
func quoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}
