// Package probe profiles a patient CSV before it is cleaned: missing cells
// per column, exact duplicates, rows outside the plausible bounds and rows
// that break the cancer-absence invariant. The profile is read-only; the
// table is never modified.
package probe

import (
	"context"
	stdcsv "encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"oncoclean/internal/datasource/file"
	"oncoclean/internal/parser/csv"
	"oncoclean/internal/schema"
	"oncoclean/internal/table"
	"oncoclean/internal/transformer/builtin"
)

// Options control how a file is read and which bounds are checked.
type Options struct {
	NullTokens       []string
	NormalizeHeaders bool
	Bounds           []schema.Bound
}

// Column is the per-column part of a Profile.
type Column struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Missing int    `json:"missing"`
}

// BoundCount counts rows outside one bound. Rows with a missing or
// non-numeric value are counted too; Absent marks a column the file lacks.
type BoundCount struct {
	Column string  `json:"column"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Rows   int     `json:"rows"`
	Absent bool    `json:"absent,omitempty"`
}

// Profile summarizes the data quality of one table.
type Profile struct {
	Path         string       `json:"path,omitempty"`
	Rows         int          `json:"rows"`
	Skipped      int          `json:"skipped_rows"`
	Columns      []Column     `json:"columns"`
	Duplicates   int          `json:"duplicates"`
	OutOfBounds  []BoundCount `json:"out_of_bounds"`
	Inconsistent int          `json:"inconsistent"`
}

// Table profiles t against bounds.
func Table(t *table.Table, bounds []schema.Bound) Profile {
	p := Profile{Rows: t.Len()}

	missing := t.Missing()
	for j, name := range t.Columns {
		p.Columns = append(p.Columns, Column{Name: name, Kind: t.Kinds[j].String(), Missing: missing[j]})
	}
	p.Duplicates = len(builtin.Duplicates(t))

	for _, b := range bounds {
		bc := BoundCount{Column: b.Column, Min: b.Min, Max: b.Max}
		j := t.Index(b.Column)
		if j < 0 {
			bc.Absent = true
			p.OutOfBounds = append(p.OutOfBounds, bc)
			continue
		}
		for _, r := range t.Rows {
			if v, ok := table.Number(r[j]); !ok || !b.Contains(v) {
				bc.Rows++
			}
		}
		p.OutOfBounds = append(p.OutOfBounds, bc)
	}
	p.Inconsistent = inconsistent(t)
	return p
}

// inconsistent counts rows with cancer_presence 0 that disagree with any
// schema.NoCancer value. It returns 0 when a referenced column is absent.
func inconsistent(t *table.Table) int {
	presence := t.Index(schema.CancerPresence)
	if presence < 0 {
		return 0
	}
	cols := make([]int, len(schema.NoCancer))
	for i, a := range schema.NoCancer {
		if cols[i] = t.Index(a.Column); cols[i] < 0 {
			return 0
		}
	}
	n := 0
	for _, r := range t.Rows {
		if v, ok := table.Number(r[presence]); !ok || v != 0 {
			continue
		}
		for i, a := range schema.NoCancer {
			if s, ok := r[cols[i]].(string); !ok || s != a.Value {
				n++
				break
			}
		}
	}
	return n
}

// File reads and profiles the CSV at path. Compressed inputs are handled by
// the file datasource.
func File(ctx context.Context, path string, opt Options) (Profile, error) {
	rc, err := file.NewLocal(path).Open(ctx)
	if err != nil {
		return Profile{}, err
	}
	defer rc.Close()

	t, skipped, err := csv.NewParser(csv.Options{
		NullTokens:       opt.NullTokens,
		NormalizeHeaders: opt.NormalizeHeaders,
	}).Parse(rc)
	if err != nil {
		return Profile{}, fmt.Errorf("parse %s: %w", path, err)
	}
	p := Table(t, opt.Bounds)
	p.Path = path
	p.Skipped = skipped
	return p, nil
}

// WriteCSV renders p as "section,name,value" lines, one fact per line,
// after a header line.
func (p Profile) WriteCSV(w io.Writer) error {
	cw := stdcsv.NewWriter(w)
	rec := func(fields ...string) { _ = cw.Write(fields) }

	rec("section", "name", "value")
	if p.Path != "" {
		rec("file", "path", p.Path)
	}
	rec("table", "rows", strconv.Itoa(p.Rows))
	rec("table", "skipped_rows", strconv.Itoa(p.Skipped))
	rec("table", "columns", strconv.Itoa(len(p.Columns)))
	rec("table", "duplicates", strconv.Itoa(p.Duplicates))
	rec("table", "inconsistent", strconv.Itoa(p.Inconsistent))
	for _, c := range p.Columns {
		rec("kind", c.Name, c.Kind)
	}
	for _, c := range p.Columns {
		rec("missing", c.Name, strconv.Itoa(c.Missing))
	}
	for _, b := range p.OutOfBounds {
		v := strconv.Itoa(b.Rows)
		if b.Absent {
			v = "absent"
		}
		rec("out_of_bounds", fmt.Sprintf("%s[%s,%s]", b.Column, table.FormatFloat(b.Min), table.FormatFloat(b.Max)), v)
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON renders p as indented JSON followed by a newline.
func (p Profile) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

// MissingTotal sums missing cells over every column.
func (p Profile) MissingTotal() int {
	n := 0
	for _, c := range p.Columns {
		n += c.Missing
	}
	return n
}
