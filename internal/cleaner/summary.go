package cleaner

import (
	"log"
	"math"

	"oncoclean/internal/schema"
	"oncoclean/internal/table"
)

// Summary describes the cleaned table.
type Summary struct {
	Rows      int
	Columns   int
	InputRows int

	// AgeMin and AgeMax are NaN when the table has no age column.
	AgeMin, AgeMax float64

	Cancer    int
	CancerPct float64
}

// Summarize computes the summary of t. inputRows is the row count read from
// the input file.
func Summarize(t *table.Table, inputRows int) Summary {
	s := Summary{
		Rows:      t.Len(),
		Columns:   t.Width(),
		InputRows: inputRows,
		AgeMin:    math.NaN(),
		AgeMax:    math.NaN(),
	}
	if j := t.Index(schema.Age); j >= 0 {
		for _, r := range t.Rows {
			v, ok := table.Number(r[j])
			if !ok {
				continue
			}
			if math.IsNaN(s.AgeMin) || v < s.AgeMin {
				s.AgeMin = v
			}
			if math.IsNaN(s.AgeMax) || v > s.AgeMax {
				s.AgeMax = v
			}
		}
	}
	if j := t.Index(schema.CancerPresence); j >= 0 {
		for _, r := range t.Rows {
			if v, ok := table.Number(r[j]); ok && v == 1 {
				s.Cancer++
			}
		}
	}
	if s.Rows > 0 {
		s.CancerPct = float64(s.Cancer) / float64(s.Rows) * 100
	}
	return s
}

// Log writes the summary as one line per fact.
func (s Summary) Log(lg *log.Logger) {
	lg.Printf("summary: rows=%d cols=%d", s.Rows, s.Columns)
	lg.Printf("summary: preserved=%d/%d", s.Rows, s.InputRows)
	lg.Printf("summary: age_min=%g age_max=%g", s.AgeMin, s.AgeMax)
	lg.Printf("summary: cancer=%d (%.1f%%)", s.Cancer, s.CancerPct)
}
