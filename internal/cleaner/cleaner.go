// Package cleaner runs the cleaning pipeline over a patient CSV: it reads
// the input, applies the ordered passes, writes the cleaned CSV and reports
// a summary. Progress goes to the *log.Logger in Options.
package cleaner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"oncoclean/internal/config"
	"oncoclean/internal/datasource"
	"oncoclean/internal/datasource/file"
	"oncoclean/internal/metrics"
	"oncoclean/internal/parser/csv"
	"oncoclean/internal/probe"
	"oncoclean/internal/schema"
	"oncoclean/internal/table"
	"oncoclean/internal/transformer"
	"oncoclean/internal/transformer/builtin"
)

// ErrInputNotFound is returned when the input CSV does not exist. It wraps
// fs.ErrNotExist.
var ErrInputNotFound = fmt.Errorf("input file not found: %w", fs.ErrNotExist)

// newSource opens the input named by a path. Tests replace it.
var newSource = func(path string) datasource.Source { return file.NewLocal(path) }

// Options configures one run.
type Options struct {
	Input  string
	Output string

	Seed             uint64
	MinRows, MaxRows int
	Bounds           []schema.Bound
	IntColumns       []string
	FloatColumns     []string

	NullTokens       []string
	NormalizeHeaders bool

	// Job labels metrics.
	Job string

	// Logger receives progress lines. Nil means log.Default().
	Logger *log.Logger

	// Verbose adds per-pass timings and the input profile.
	Verbose bool
}

// DefaultOptions returns the options of a plain run.
func DefaultOptions() Options {
	return FromPipeline(config.Default())
}

// FromPipeline maps a resolved pipeline configuration onto Options.
func FromPipeline(p config.Pipeline) Options {
	return Options{
		Input:            p.Input.Path,
		Output:           p.Output.Path,
		Seed:             p.Clean.Seed,
		MinRows:          p.Clean.MinRows,
		MaxRows:          p.Clean.MaxRows,
		Bounds:           p.Clean.Bounds,
		IntColumns:       p.Clean.IntColumns,
		FloatColumns:     p.Clean.FloatColumns,
		NullTokens:       p.Input.NullTokens,
		NormalizeHeaders: p.Input.NormalizeHeaders,
		Job:              p.Job,
	}
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

// Report collects what each pass did.
type Report struct {
	InputRows int
	Skipped   int

	Filled         int
	DuplicatesSeen int
	Duplicates     int
	Outliers       int
	Inconsistent   int
	Padded         int
	SampledOut     int
}

// Result is the outcome of a successful run.
type Result struct {
	Table   *table.Table
	Report  Report
	Summary Summary
}

// Read loads the input CSV. A missing file yields ErrInputNotFound.
func Read(ctx context.Context, opts Options) (*table.Table, int, error) {
	rc, err := newSource(opts.Input).Open(ctx)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, fmt.Errorf("%w: %s", ErrInputNotFound, opts.Input)
		}
		return nil, 0, err
	}
	defer rc.Close()

	lg := opts.logger()
	t, skipped, err := csv.NewParser(csv.Options{
		NullTokens:       opts.NullTokens,
		NormalizeHeaders: opts.NormalizeHeaders,
		Logf:             lg.Printf,
	}).Parse(rc)
	if err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", opts.Input, err)
	}
	return t, skipped, nil
}

// Passes returns the ordered cleaning passes for opts.
func Passes(opts Options) transformer.Chain {
	return transformer.Chain{
		builtin.Impute{},
		builtin.DeDup{MinRows: opts.MinRows},
		builtin.Outliers{Bounds: opts.Bounds},
		builtin.Consistency{},
		builtin.Resample{Min: opts.MinRows, Max: opts.MaxRows, Seed: opts.Seed},
		builtin.Coerce{Ints: opts.IntColumns, Floats: opts.FloatColumns},
	}
}

// Clean applies the passes to t in place and returns what they did.
func Clean(t *table.Table, opts Options) (Report, error) {
	lg := opts.logger()
	rep := Report{InputRows: t.Len()}

	obs := func(name string, st transformer.Stats, d time.Duration, err error) {
		metrics.RecordStep(opts.Job, name, err, d)
		if err != nil {
			return
		}
		switch name {
		case "impute":
			rep.Filled = st.Filled
			lg.Printf("impute: filled=%d", st.Filled)
		case "dedup":
			rep.DuplicatesSeen, rep.Duplicates = st.Found, st.Removed
			metrics.RecordRows(opts.Job, metrics.KindDuplicates, st.Removed)
			lg.Printf("dedup: found=%d removed=%d rows=%d", st.Found, st.Removed, t.Len())
		case "outliers":
			rep.Outliers = st.Removed
			metrics.RecordRows(opts.Job, metrics.KindOutliers, st.Removed)
			lg.Printf("outliers: removed=%d rows=%d", st.Removed, t.Len())
		case "consistency":
			rep.Inconsistent = st.Fixed
			metrics.RecordRows(opts.Job, metrics.KindInconsistencies, st.Fixed)
			lg.Printf("consistency: fixed=%d", st.Fixed)
		case "resample":
			rep.Padded, rep.SampledOut = st.Added, st.Removed
			metrics.RecordRows(opts.Job, metrics.KindPadded, st.Added)
			metrics.RecordRows(opts.Job, metrics.KindSampledOut, st.Removed)
			lg.Printf("resample: padded=%d sampled_out=%d rows=%d", st.Added, st.Removed, t.Len())
		}
		if opts.Verbose {
			lg.Printf("step: name=%s dur=%s", name, d)
		}
	}

	if err := Passes(opts).Apply(t, obs); err != nil {
		return rep, err
	}
	return rep, nil
}

// Write writes t to opts.Output, compressing by extension.
func Write(ctx context.Context, t *table.Table, opts Options) error {
	w, err := file.NewLocal(opts.Output).Create(ctx)
	if err != nil {
		return err
	}
	if err := csv.Write(w, t); err != nil {
		w.Close()
		return fmt.Errorf("write %s: %w", opts.Output, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close %s: %w", opts.Output, err)
	}
	return nil
}

// Run reads opts.Input, cleans it, writes opts.Output and logs a summary.
// Nothing is written when the input is missing or any pass fails.
func Run(ctx context.Context, opts Options) (*Result, error) {
	lg := opts.logger()
	start := time.Now()

	t, skipped, err := Read(ctx, opts)
	if err != nil {
		return nil, err
	}
	lg.Printf("read: path=%s rows=%d cols=%d skipped=%d", opts.Input, t.Len(), t.Width(), skipped)
	metrics.RecordRows(opts.Job, metrics.KindInput, t.Len())

	if opts.Verbose {
		p := probe.Table(t, opts.Bounds)
		lg.Printf("profile: missing=%d duplicates=%d inconsistent=%d", p.MissingTotal(), p.Duplicates, p.Inconsistent)
		for _, b := range p.OutOfBounds {
			lg.Printf("profile: bound=%s out=%d absent=%t", b.Column, b.Rows, b.Absent)
		}
	}

	rep, err := Clean(t, opts)
	rep.Skipped = skipped
	if err != nil {
		return nil, err
	}

	if err := Write(ctx, t, opts); err != nil {
		return nil, err
	}
	metrics.RecordRows(opts.Job, metrics.KindWritten, t.Len())

	sum := Summarize(t, rep.InputRows)
	sum.Log(lg)
	lg.Printf("done: output=%s elapsed=%s", opts.Output, time.Since(start).Round(time.Millisecond))
	return &Result{Table: t, Report: rep, Summary: sum}, nil
}
