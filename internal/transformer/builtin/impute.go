package builtin

import (
	"sort"

	"oncoclean/internal/table"
	"oncoclean/internal/transformer"
)

// Impute fills missing cells. Statistics are computed once over the whole
// table before any cell is written: the median for Int and Float columns,
// the most frequent value for String columns with ties going to the
// smallest value. Columns with no present value are left untouched.
type Impute struct{}

func (Impute) Name() string { return "impute" }

func (Impute) Apply(t *table.Table) (transformer.Stats, error) {
	fill := make([]any, t.Width())
	for j, k := range t.Kinds {
		switch k {
		case table.Int, table.Float:
			if m, ok := median(t, j); ok {
				fill[j] = m
			}
		default:
			if m, ok := mode(t, j); ok {
				fill[j] = m
			}
		}
	}

	var st transformer.Stats
	for _, r := range t.Rows {
		for j, v := range r {
			if table.IsMissing(v) && fill[j] != nil {
				r[j] = fill[j]
				st.Filled++
			}
		}
	}
	return st, nil
}

// median returns the median of the present numeric values in column j as a
// float64. Int columns never hold missing cells, so the result only lands in
// Float columns.
func median(t *table.Table, j int) (float64, bool) {
	vals := make([]float64, 0, t.Len())
	for _, r := range t.Rows {
		if f, ok := table.Number(r[j]); ok {
			vals = append(vals, f)
		}
	}
	n := len(vals)
	if n == 0 {
		return 0, false
	}
	sort.Float64s(vals)
	if n%2 == 1 {
		return vals[n/2], true
	}
	return (vals[n/2-1] + vals[n/2]) / 2, true
}

func mode(t *table.Table, j int) (string, bool) {
	counts := make(map[string]int)
	for _, r := range t.Rows {
		if s, ok := r[j].(string); ok {
			counts[s]++
		}
	}
	best, bestN := "", 0
	for s, n := range counts {
		if n > bestN || (n == bestN && s < best) {
			best, bestN = s, n
		}
	}
	return best, bestN > 0
}
