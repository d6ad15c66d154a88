package mssql

import (
	"fmt"
	"strings"

	"oncoclean/internal/ddl"
	"oncoclean/internal/table"
)

// Dialect renders T-SQL identifiers in [brackets]. T-SQL has no
// CREATE TABLE IF NOT EXISTS; BuildCreateTableSQL adds an OBJECT_ID guard.
var Dialect = ddl.Dialect{
	Name:       "mssql ddl",
	QuoteIdent: msIdent,
}

// MapKind maps a column kind to a SQL Server type.
func MapKind(k table.Kind) string {
	switch k {
	case table.Int:
		return "BIGINT"
	case table.Float:
		return "FLOAT"
	default:
		return "NVARCHAR(MAX)"
	}
}

// BuildCreateTableSQL returns a script that creates def unless a user table
// of that name exists:
//
//	IF OBJECT_ID(N'[dbo].[t]', N'U') IS NULL
//	BEGIN
//	CREATE TABLE [dbo].[t] (...);
//	END
func BuildCreateTableSQL(def ddl.TableDef) (string, error) {
	create, err := Dialect.CreateTable(def)
	if err != nil {
		return "", err
	}
	name := strings.ReplaceAll(Dialect.QuoteFQN(strings.TrimSpace(def.FQN)), "'", "''")
	return fmt.Sprintf("IF OBJECT_ID(N'%s', N'U') IS NULL\nBEGIN\n%s\nEND", name, create), nil
}

// msIdent quotes a SQL Server identifier using [brackets], escaping ].
func msIdent(id string) string { return `[` + strings.ReplaceAll(id, `]`, `]]`) + `]` }
