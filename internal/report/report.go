// Package report renders distribution histograms of cleaned numeric columns
// as PNG files with gonum.org/v1/plot.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"oncoclean/internal/table"
)

// Options selects the columns to plot and where to write them.
type Options struct {
	Dir     string
	Columns []string
	Bins    int
}

// Histograms writes <Dir>/<column>.png for every column in opt.Columns and
// returns the written paths. Missing cells are left out of the counts; a
// column that is absent or has no numeric value is an error.
func Histograms(t *table.Table, opt Options) ([]string, error) {
	if opt.Bins <= 0 {
		return nil, fmt.Errorf("report: bins must be > 0, got %d", opt.Bins)
	}
	if err := os.MkdirAll(opt.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}

	var paths []string
	for _, col := range opt.Columns {
		vals, err := values(t, col)
		if err != nil {
			return paths, fmt.Errorf("report: %w", err)
		}

		p := plot.New()
		p.Title.Text = col
		p.X.Label.Text = col
		p.Y.Label.Text = "rows"

		h, err := plotter.NewHist(vals, opt.Bins)
		if err != nil {
			return paths, fmt.Errorf("report: %s: %w", col, err)
		}
		p.Add(h)

		path := filepath.Join(opt.Dir, col+".png")
		if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
			return paths, fmt.Errorf("report: save %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func values(t *table.Table, col string) (plotter.Values, error) {
	j, err := t.Lookup(col)
	if err != nil {
		return nil, err
	}
	vals := make(plotter.Values, 0, t.Len())
	for _, r := range t.Rows {
		if v, ok := table.Number(r[j]); ok {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("column %q has no numeric values", col)
	}
	return vals, nil
}
