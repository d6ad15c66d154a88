// Package transformer defines the pass interface the cleaner runs over a
// table and the ordered chain that drives it.
package transformer

import (
	"fmt"
	"time"

	"oncoclean/internal/table"
)

// Stats counts what a pass did to the table. Fields that do not apply to a
// pass stay zero.
type Stats struct {
	Filled  int // missing cells replaced
	Found   int // defective rows detected
	Removed int // rows dropped
	Added   int // rows appended
	Fixed   int // rows repaired in place
}

// Transformer is one in-place pass over a table.
type Transformer interface {
	Name() string
	Apply(t *table.Table) (Stats, error)
}

// Observer is notified after every pass of a Chain, including a failing one.
type Observer func(name string, st Stats, d time.Duration, err error)

// Chain is an ordered list of transformers.
type Chain []Transformer

// Apply runs each transformer in order and stops at the first error, which is
// wrapped with the failing pass name. obs may be nil.
func (c Chain) Apply(t *table.Table, obs Observer) error {
	for _, tr := range c {
		start := time.Now()
		st, err := tr.Apply(t)
		if obs != nil {
			obs(tr.Name(), st, time.Since(start), err)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", tr.Name(), err)
		}
	}
	return nil
}
