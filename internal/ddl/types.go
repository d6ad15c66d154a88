package ddl

import "oncoclean/internal/table"

// ColumnDef describes a single column in a table definition.
//
// Name is the logical column name; quoting happens at render time. SQLType
// is the backend column type (e.g. BIGINT, TEXT).
type ColumnDef struct {
	Name     string
	SQLType  string
	Nullable bool
}

// TableDef holds the table name (FQN, dotted "schema.table" or a bare
// name) and an ordered list of columns.
type TableDef struct {
	FQN     string
	Columns []ColumnDef
}

// FromTable derives a TableDef from column names and kinds using mapKind for
// the backend type. Int and Float columns are NOT NULL since a cleaned table
// has no missing numeric cells; String columns stay nullable.
func FromTable(fqn string, columns []string, kinds []table.Kind, mapKind func(table.Kind) string) TableDef {
	def := TableDef{FQN: fqn, Columns: make([]ColumnDef, len(columns))}
	for i, c := range columns {
		k := table.String
		if i < len(kinds) {
			k = kinds[i]
		}
		def.Columns[i] = ColumnDef{
			Name:     c,
			SQLType:  mapKind(k),
			Nullable: k == table.String,
		}
	}
	return def
}
