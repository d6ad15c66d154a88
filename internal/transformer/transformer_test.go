package transformer

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"oncoclean/internal/table"
)

// appendRow appends a single row built from the current length.
type appendRow struct{ name string }

func (a appendRow) Name() string { return a.name }

func (a appendRow) Apply(t *table.Table) (Stats, error) {
	if err := t.Append([]any{int64(t.Len())}); err != nil {
		return Stats{}, err
	}
	return Stats{Added: 1}, nil
}

type failing struct{ err error }

func (failing) Name() string                      { return "failing" }
func (f failing) Apply(*table.Table) (Stats, error) { return Stats{}, f.err }

func newTable() *table.Table {
	return table.New([]string{"n"}, []table.Kind{table.Int})
}

func TestChainRunsInOrder(t *testing.T) {
	t.Parallel()

	tb := newTable()
	var names []string
	var added int
	obs := func(name string, st Stats, d time.Duration, err error) {
		names = append(names, name)
		added += st.Added
		if err != nil {
			t.Errorf("unexpected error from %s: %v", name, err)
		}
	}

	c := Chain{appendRow{"a"}, appendRow{"b"}, appendRow{"c"}}
	if err := c.Apply(tb, obs); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"a", "b", "c"}) {
		t.Fatalf("order=%v", names)
	}
	want := [][]any{{int64(0)}, {int64(1)}, {int64(2)}}
	if !reflect.DeepEqual(tb.Rows, want) || added != 3 {
		t.Fatalf("rows=%v added=%d", tb.Rows, added)
	}
}

func TestChainStopsAtFirstError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	tb := newTable()
	var seen []string
	obs := func(name string, _ Stats, _ time.Duration, err error) {
		seen = append(seen, name)
	}

	err := Chain{appendRow{"a"}, failing{boom}, appendRow{"b"}}.Apply(tb, obs)
	if !errors.Is(err, boom) {
		t.Fatalf("err=%v want wrapped boom", err)
	}
	if err.Error() != "failing: boom" {
		t.Fatalf("err=%q", err)
	}
	if !reflect.DeepEqual(seen, []string{"a", "failing"}) || tb.Len() != 1 {
		t.Fatalf("seen=%v len=%d", seen, tb.Len())
	}
}

func TestEmptyChainNilObserver(t *testing.T) {
	t.Parallel()

	if err := (Chain{}).Apply(newTable(), nil); err != nil {
		t.Fatal(err)
	}
	if err := (Chain{appendRow{"a"}}).Apply(newTable(), nil); err != nil {
		t.Fatal(err)
	}
}
