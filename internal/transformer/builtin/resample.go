package builtin

import (
	"errors"
	"math/rand/v2"

	"oncoclean/internal/table"
	"oncoclean/internal/transformer"
)

// ErrEmptyTable is returned when rows must be sampled from an empty table.
var ErrEmptyTable = errors.New("cannot sample from an empty table")

// Resample brings the row count into [Min, Max]. A short table is padded
// with rows sampled with replacement; a long one is cut down to Max rows
// sampled without replacement, in sampled order. Every sampling step draws
// from a fresh PCG source seeded (Seed, Seed), so equal inputs resample
// identically. A final check pads again if the table is still short.
type Resample struct {
	Min, Max int
	Seed     uint64
}

func (Resample) Name() string { return "resample" }

func (s Resample) Apply(t *table.Table) (transformer.Stats, error) {
	var st transformer.Stats
	if t.Len() < s.Min {
		n, err := s.pad(t)
		if err != nil {
			return st, err
		}
		st.Added += n
	}
	if n := t.Len(); n > s.Max {
		perm := s.rng().Perm(n)[:s.Max]
		rows := make([][]any, s.Max)
		for i, p := range perm {
			rows[i] = t.Rows[p]
		}
		t.Rows = rows
		st.Removed = n - s.Max
	}
	if t.Len() < s.Min {
		n, err := s.pad(t)
		if err != nil {
			return st, err
		}
		st.Added += n
	}
	return st, nil
}

func (s Resample) rng() *rand.Rand {
	return rand.New(rand.NewPCG(s.Seed, s.Seed))
}

// pad appends Min-Len rows drawn with replacement from the current rows.
func (s Resample) pad(t *table.Table) (int, error) {
	n := t.Len()
	if n == 0 {
		return 0, ErrEmptyTable
	}
	r := s.rng()
	positions := make([]int, s.Min-n)
	for i := range positions {
		positions[i] = r.IntN(n)
	}
	if err := t.Append(t.Pick(positions)...); err != nil {
		return 0, err
	}
	return len(positions), nil
}
