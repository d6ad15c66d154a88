// Package metrics provides a small, backend-agnostic abstraction for recording
// operational metrics from the cleaning pipeline.
//
// A global, pluggable Backend defaults to a no-op implementation, so metrics
// are always safe to call even when no real backend is configured. Concrete
// metric systems live in subpackages (prompush, datadog) and are installed
// with SetBackend.
package metrics

import "time"

// Metric names emitted by the helpers below.
const (
	StepTotal    = "clean_step_total"
	StepDuration = "clean_step_duration_seconds"
	RowsTotal    = "clean_rows_total"
	BatchesTotal = "clean_export_batches_total"
)

// Row kinds passed to RecordRows.
const (
	KindInput           = "input"
	KindDuplicates      = "duplicates_removed"
	KindOutliers        = "outliers_removed"
	KindInconsistencies = "inconsistencies_fixed"
	KindPadded          = "padded"
	KindSampledOut      = "sampled_out"
	KindWritten         = "written"
	KindExported        = "exported"
)

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStep counts one execution of a pipeline step and records its
// duration, labelled with success or failure.
func RecordStep(job, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	lbls := Labels{
		"job":    job,
		"step":   step,
		"status": status,
	}

	backend.IncCounter(StepTotal, 1, lbls)
	backend.ObserveHistogram(StepDuration, d.Seconds(), lbls)
}

// RecordRows adds n to the row counter for kind. Non-positive n is ignored.
func RecordRows(job, kind string, n int) {
	if n <= 0 {
		return
	}
	backend.IncCounter(RowsTotal, float64(n), Labels{
		"job":  job,
		"kind": kind,
	})
}

// RecordBatches counts export batches flushed to the database.
func RecordBatches(job string, n int) {
	if n <= 0 {
		return
	}
	backend.IncCounter(BatchesTotal, float64(n), Labels{"job": job})
}
