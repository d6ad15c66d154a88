package builtin

import (
	"oncoclean/internal/table"
	"oncoclean/internal/transformer"
)

// Coerce casts the listed columns to Int and Float. Columns absent from the
// table are skipped. Float values truncate toward zero when cast to Int; a
// missing or unparsable value in an Int column is an error.
type Coerce struct {
	Ints   []string
	Floats []string
}

func (Coerce) Name() string { return "coerce" }

func (c Coerce) Apply(t *table.Table) (transformer.Stats, error) {
	for _, set := range []struct {
		cols []string
		kind table.Kind
	}{
		{c.Ints, table.Int},
		{c.Floats, table.Float},
	} {
		for _, name := range set.cols {
			j := t.Index(name)
			if j < 0 {
				continue
			}
			if err := t.SetKind(j, set.kind); err != nil {
				return transformer.Stats{}, err
			}
		}
	}
	return transformer.Stats{}, nil
}
