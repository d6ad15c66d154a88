// Package table holds the in-memory patient table that the cleaning passes
// mutate. Rows are []any slices aligned with Columns, the same row shape the
// storage loaders consume, so a cleaned table can be exported without
// reshaping.
//
// Cell values are one of:
//
//	nil      missing
//	int64    Int columns
//	float64  Float columns (NaN is treated as missing)
//	string   String columns
package table

import (
	"errors"
	"fmt"

	"oncoclean/internal/bitmap"
)

// ErrNoColumn is returned when a pass references a column the table lacks.
var ErrNoColumn = errors.New("column not found")

// Kind is the storage type of a column.
type Kind int

const (
	String Kind = iota
	Int
	Float
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	default:
		return "string"
	}
}

// Table is an ordered, typed, row-major table.
type Table struct {
	Columns []string
	Kinds   []Kind
	Rows    [][]any
}

// New returns an empty table with the given columns. kinds may be nil, in
// which case every column is String.
func New(columns []string, kinds []Kind) *Table {
	t := &Table{
		Columns: append([]string(nil), columns...),
		Kinds:   make([]Kind, len(columns)),
	}
	copy(t.Kinds, kinds)
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Width returns the number of columns.
func (t *Table) Width() int { return len(t.Columns) }

// Index returns the position of column name, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Lookup is Index for callers that treat an absent column as fatal.
func (t *Table) Lookup(name string) (int, error) {
	i := t.Index(name)
	if i < 0 {
		return -1, fmt.Errorf("%w: %q", ErrNoColumn, name)
	}
	return i, nil
}

// Append adds rows as-is. Each row must have Width() cells.
func (t *Table) Append(rows ...[]any) error {
	for _, r := range rows {
		if len(r) != len(t.Columns) {
			return fmt.Errorf("row width %d != columns %d", len(r), len(t.Columns))
		}
	}
	t.Rows = append(t.Rows, rows...)
	return nil
}

// Clone returns a deep copy; rows in the copy can be mutated independently.
func (t *Table) Clone() *Table {
	c := New(t.Columns, t.Kinds)
	c.Rows = make([][]any, len(t.Rows))
	for i, r := range t.Rows {
		c.Rows[i] = append([]any(nil), r...)
	}
	return c
}

// Drop removes every row whose position is marked and returns how many were
// removed. Surviving rows keep their relative order and are renumbered
// contiguously from zero.
func (t *Table) Drop(marks *bitmap.Bitmap) int {
	kept := t.Rows[:0]
	removed := 0
	for i, r := range t.Rows {
		if marks.Has(i) {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	for i := len(kept); i < len(t.Rows); i++ {
		t.Rows[i] = nil
	}
	t.Rows = kept
	return removed
}

// Pick returns copies of the rows at the given positions, in that order.
// Positions may repeat; every returned row is a distinct slice.
func (t *Table) Pick(positions []int) [][]any {
	out := make([][]any, 0, len(positions))
	for _, p := range positions {
		out = append(out, append([]any(nil), t.Rows[p]...))
	}
	return out
}

// SetKind converts every value in column col to kind k. Missing values stay
// missing except when converting to Int, which has no missing representation.
func (t *Table) SetKind(col int, k Kind) error {
	if col < 0 || col >= len(t.Columns) {
		return fmt.Errorf("%w: index %d", ErrNoColumn, col)
	}
	for i, r := range t.Rows {
		v, err := Convert(r[col], k)
		if err != nil {
			return fmt.Errorf("column %q row %d: %w", t.Columns[col], i, err)
		}
		r[col] = v
	}
	t.Kinds[col] = k
	return nil
}

// Missing counts missing cells per column, aligned with Columns.
func (t *Table) Missing() []int {
	out := make([]int, len(t.Columns))
	for _, r := range t.Rows {
		for j, v := range r {
			if IsMissing(v) {
				out[j]++
			}
		}
	}
	return out
}
