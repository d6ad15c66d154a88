package builtin

import (
	"oncoclean/internal/bitmap"
	"oncoclean/internal/schema"
	"oncoclean/internal/table"
	"oncoclean/internal/transformer"
)

// Outliers drops rows whose value in any bounded column lies outside its
// inclusive range. A missing or non-numeric value in a bounded column counts
// as out of range. Every bounded column must exist.
type Outliers struct {
	Bounds []schema.Bound
}

func (Outliers) Name() string { return "outliers" }

func (o Outliers) Apply(t *table.Table) (transformer.Stats, error) {
	cols := make([]int, len(o.Bounds))
	for i, b := range o.Bounds {
		j, err := t.Lookup(b.Column)
		if err != nil {
			return transformer.Stats{}, err
		}
		cols[i] = j
	}

	marks := bitmap.New(t.Len())
	for i, r := range t.Rows {
		for k, b := range o.Bounds {
			f, ok := table.Number(r[cols[k]])
			if !ok || !b.Contains(f) {
				marks.Add(i)
				break
			}
		}
	}
	found := marks.Count()
	removed := 0
	if found > 0 {
		removed = t.Drop(marks)
	}
	return transformer.Stats{Found: found, Removed: removed}, nil
}
