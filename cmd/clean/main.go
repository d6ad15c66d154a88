// Command clean repairs an anomaly-injected patient CSV and writes the
// cleaned dataset. Optionally it exports the result to a database, plots
// distribution histograms and pushes run metrics.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/google/uuid"

	"oncoclean/internal/cleaner"
	"oncoclean/internal/config"
	"oncoclean/internal/metrics"
	"oncoclean/internal/metrics/datadog"
	"oncoclean/internal/metrics/prompush"
	"oncoclean/internal/report"
	"oncoclean/internal/storage"
	"oncoclean/internal/table"

	// register all backends with the storage factory.
	_ "oncoclean/internal/storage/all"
)

// newRepositoryFn is a test seam for the export repository.
var newRepositoryFn = storage.New

func main() {
	inv, err := config.LoadFlags(flag.CommandLine, os.Getenv, os.Args[1:])
	if err != nil {
		fatalf("config: %v", err)
	}
	p := inv.Pipeline

	issues := config.ValidatePipeline(p)
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		fatalf("configuration is invalid")
	}
	if inv.Validate {
		log.Printf("configuration is valid")
		return
	}

	runID := uuid.NewString()
	lg := log.New(os.Stderr, "[run="+runID+"] ", log.LstdFlags)

	flush := setupMetrics(p, runID, lg, inv.Verbose)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, p, inv.Verbose, lg)
	stop()
	flush()
	if err != nil {
		if errors.Is(err, cleaner.ErrInputNotFound) {
			fatalf("error: %v", err)
		}
		fatalf("clean: %v", err)
	}
}

func run(ctx context.Context, p config.Pipeline, verbose bool, lg *log.Logger) error {
	opts := cleaner.FromPipeline(p)
	opts.Logger = lg
	opts.Verbose = verbose

	res, err := cleaner.Run(ctx, opts)
	if err != nil {
		return err
	}
	if p.Storage.Kind != "" {
		if err := export(ctx, p, res.Table, lg); err != nil {
			return err
		}
	}
	if p.Report.Dir != "" {
		paths, err := report.Histograms(res.Table, report.Options{
			Dir:     p.Report.Dir,
			Columns: p.Report.Columns,
			Bins:    p.Report.Bins,
		})
		if err != nil {
			return err
		}
		for _, path := range paths {
			lg.Printf("report: saved %s", path)
		}
	}
	return nil
}

// export writes the cleaned table to the configured database.
func export(ctx context.Context, p config.Pipeline, t *table.Table, lg *log.Logger) error {
	repo, err := newRepositoryFn(ctx, storage.Config{
		Kind:    p.Storage.Kind,
		DSN:     p.Storage.DB.DSN,
		Table:   p.Storage.DB.Table,
		Columns: t.Columns,
	})
	if err != nil {
		return fmt.Errorf("init repo: %w", err)
	}
	defer repo.Close()

	if p.Storage.DB.AutoCreateTable {
		if err := storage.EnsureTable(ctx, p.Storage.Kind, repo, p.Storage.DB.Table, t); err != nil {
			return fmt.Errorf("apply DDL: %w", err)
		}
		lg.Printf("export: table ensured: %s", p.Storage.DB.Table)
	}

	n, err := storage.Export(ctx, repo, t, storage.ExportOptions{
		BatchSize: p.Storage.BatchSize(storage.DefaultBatchSize),
		Job:       p.Job,
		Logger:    lg,
	})
	if err != nil {
		return err
	}
	metrics.RecordRows(p.Job, metrics.KindExported, int(n))
	lg.Printf("export: kind=%s table=%s rows=%d", p.Storage.Kind, p.Storage.DB.Table, n)
	return nil
}

// setupMetrics installs the configured backend and returns its flush func.
func setupMetrics(p config.Pipeline, runID string, lg *log.Logger, verbose bool) func() {
	var (
		b   metrics.Backend
		err error
	)
	switch p.Metrics.Backend {
	case "pushgateway":
		b, err = prompush.NewBackend(p.Job, p.Metrics.PushgatewayURL, runID)
	case "datadog":
		ns := p.Metrics.Namespace
		if ns != "" {
			ns += "."
		}
		b, err = datadog.NewBackend(datadog.Config{
			Addr:       p.Metrics.DatadogAddr,
			Namespace:  ns,
			GlobalTags: []string{"job:" + p.Job, "run:" + runID},
		})
	case "", "none":
		if verbose {
			lg.Printf("metrics: disabled")
		}
		return func() {}
	default:
		lg.Printf("metrics: unknown backend %q; metrics disabled", p.Metrics.Backend)
		return func() {}
	}
	if err != nil {
		lg.Printf("metrics: failed to init %s backend: %v; using nop", p.Metrics.Backend, err)
		return func() {}
	}
	lg.Printf("metrics: backend=%s job=%s", p.Metrics.Backend, p.Job)
	metrics.SetBackend(b)
	return func() {
		if err := metrics.Flush(); err != nil {
			lg.Printf("metrics: flush error: %v", err)
		}
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
