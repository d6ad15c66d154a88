package csv

import (
	"encoding/csv"
	"fmt"
	"io"

	"oncoclean/internal/table"
)

// Write emits t as CSV with a header row and no index column. Cells are
// rendered with table.Format, so missing values become empty fields.
func Write(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	rec := make([]string, t.Width())
	for i, row := range t.Rows {
		for j, v := range row {
			rec[j] = table.Format(v)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
