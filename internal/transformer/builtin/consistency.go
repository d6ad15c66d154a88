package builtin

import (
	"oncoclean/internal/schema"
	"oncoclean/internal/table"
	"oncoclean/internal/transformer"
)

// Consistency enforces the cancer-absence invariant: every row whose
// cancer_presence is 0 and that disagrees with any schema.NoCancer value has
// all four of them overwritten.
type Consistency struct{}

func (Consistency) Name() string { return "consistency" }

func (Consistency) Apply(t *table.Table) (transformer.Stats, error) {
	presence, err := t.Lookup(schema.CancerPresence)
	if err != nil {
		return transformer.Stats{}, err
	}
	cols := make([]int, len(schema.NoCancer))
	for i, a := range schema.NoCancer {
		if cols[i], err = t.Lookup(a.Column); err != nil {
			return transformer.Stats{}, err
		}
	}

	var st transformer.Stats
	for _, r := range t.Rows {
		if p, ok := table.Number(r[presence]); !ok || p != 0 {
			continue
		}
		bad := false
		for i, a := range schema.NoCancer {
			if s, ok := r[cols[i]].(string); !ok || s != a.Value {
				bad = true
				break
			}
		}
		if !bad {
			continue
		}
		for i, a := range schema.NoCancer {
			r[cols[i]] = a.Value
		}
		st.Found++
		st.Fixed++
	}
	if st.Fixed > 0 {
		for _, j := range cols {
			t.Kinds[j] = table.String
		}
	}
	return st, nil
}
