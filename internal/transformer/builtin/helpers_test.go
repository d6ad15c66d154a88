package builtin

import (
	"testing"

	"oncoclean/internal/table"
)

// intTable builds a single Int column table "n" from vals.
func intTable(t *testing.T, vals ...int64) *table.Table {
	t.Helper()
	tb := table.New([]string{"n"}, []table.Kind{table.Int})
	for _, v := range vals {
		if err := tb.Append([]any{v}); err != nil {
			t.Fatal(err)
		}
	}
	return tb
}

func column(tb *table.Table, j int) []any {
	out := make([]any, tb.Len())
	for i, r := range tb.Rows {
		out[i] = r[j]
	}
	return out
}

// seq returns 0..n-1.
func seq(n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(i)
	}
	return out
}
