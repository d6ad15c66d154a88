package schema

import (
	"reflect"
	"testing"

	"oncoclean/internal/table"
)

func TestSynthesizeRespectsSchema(t *testing.T) {
	t.Parallel()

	tb := Synthesize(500, 7)
	if tb.Len() != 500 {
		t.Fatalf("Len()=%d want 500", tb.Len())
	}
	if tb.Width() != len(Columns) {
		t.Fatalf("Width()=%d want %d", tb.Width(), len(Columns))
	}

	idx := func(name string) int {
		i, err := tb.Lookup(name)
		if err != nil {
			t.Fatal(err)
		}
		return i
	}
	presence := idx(CancerPresence)
	for r, row := range tb.Rows {
		for _, b := range Bounds {
			v, ok := table.Number(row[idx(b.Column)])
			if !ok || !b.Contains(v) {
				t.Fatalf("row %d: %s=%v outside [%v,%v]", r, b.Column, row[idx(b.Column)], b.Min, b.Max)
			}
		}
		if row[presence] == int64(0) {
			for _, a := range NoCancer {
				if got := row[idx(a.Column)]; got != a.Value {
					t.Fatalf("row %d: %s=%v want %q", r, a.Column, got, a.Value)
				}
			}
		}
		for j, v := range row {
			if table.IsMissing(v) {
				t.Fatalf("row %d: %s missing", r, Columns[j])
			}
		}
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	t.Parallel()

	a := Synthesize(50, 42)
	b := Synthesize(50, 42)
	if !reflect.DeepEqual(a.Rows, b.Rows) {
		t.Fatal("same seed produced different tables")
	}
	c := Synthesize(50, 43)
	if reflect.DeepEqual(a.Rows, c.Rows) {
		t.Fatal("different seeds produced identical tables")
	}
}

func TestKindsCoverIntAndFloatColumns(t *testing.T) {
	t.Parallel()

	kinds := Kinds()
	for i, c := range Columns {
		want := table.String
		for _, ic := range IntColumns {
			if ic == c {
				want = table.Int
			}
		}
		for _, fc := range FloatColumns {
			if fc == c {
				want = table.Float
			}
		}
		if kinds[i] != want {
			t.Errorf("%s: kind=%s want %s", c, kinds[i], want)
		}
	}
}
