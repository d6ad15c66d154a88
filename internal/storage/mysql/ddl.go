package mysql

import (
	"strings"

	"oncoclean/internal/ddl"
	"oncoclean/internal/table"
)

// Dialect renders MySQL DDL with backtick-quoted identifiers.
var Dialect = ddl.Dialect{
	Name:        "mysql ddl",
	QuoteIdent:  func(id string) string { return "`" + strings.ReplaceAll(id, "`", "``") + "`" },
	IfNotExists: true,
}

// MapKind maps a column kind to a MySQL column type.
func MapKind(k table.Kind) string {
	switch k {
	case table.Int:
		return "BIGINT"
	case table.Float:
		return "DOUBLE"
	default:
		return "TEXT"
	}
}
