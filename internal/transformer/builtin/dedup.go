package builtin

import (
	"github.com/zeebo/xxh3"

	"oncoclean/internal/bitmap"
	"oncoclean/internal/table"
	"oncoclean/internal/transformer"
)

// DeDup removes exact-duplicate rows, never letting the table fall below
// MinRows. The first occurrence of a row is the original; every later equal
// row is a duplicate.
//
// When dropping every duplicate still leaves at least MinRows rows, all of
// them go. Otherwise only the earliest duplicates are dropped, just enough
// to land on MinRows. A table already at or below MinRows keeps its
// duplicates. Stats.Found counts duplicates present, Stats.Removed the rows
// actually dropped.
type DeDup struct {
	MinRows int
}

func (DeDup) Name() string { return "dedup" }

func (d DeDup) Apply(t *table.Table) (transformer.Stats, error) {
	dups := Duplicates(t)
	n := t.Len()

	drop := len(dups)
	if n-drop < d.MinRows {
		drop = max(n-d.MinRows, 0)
	}

	marks := bitmap.New(n)
	for _, p := range dups[:drop] {
		marks.Add(p)
	}
	removed := 0
	if drop > 0 {
		removed = t.Drop(marks)
	}
	return transformer.Stats{Found: len(dups), Removed: removed}, nil
}

// Duplicates returns the positions of rows equal to an earlier row, in
// ascending order. Rows are bucketed by their xxh3 fingerprint and confirmed
// cell by cell.
func Duplicates(t *table.Table) []int {
	firsts := make(map[xxh3.Uint128][]int, t.Len())
	var dups []int
	var buf []byte
	for i, r := range t.Rows {
		var h xxh3.Uint128
		h, buf = table.Fingerprint(buf, r)
		dup := false
		for _, p := range firsts[h] {
			if table.RowsEqual(t.Rows[p], r) {
				dup = true
				break
			}
		}
		if dup {
			dups = append(dups, i)
			continue
		}
		firsts[h] = append(firsts[h], i)
	}
	return dups
}
