package prompush

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"oncoclean/internal/metrics"
)

func readCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()

	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		t.Fatalf("Counter.Write() error = %v", err)
	}
	if m.GetCounter() == nil {
		t.Fatalf("metric did not contain Counter value")
	}
	return m.GetCounter().GetValue()
}

func readSummaryCount(t *testing.T, v *prometheus.SummaryVec, labels ...string) (uint64, float64) {
	t.Helper()

	m := &dto.Metric{}
	metric, ok := v.WithLabelValues(labels...).(prometheus.Metric)
	if !ok {
		t.Fatalf("SummaryVec.WithLabelValues(...) does not implement prometheus.Metric")
	}
	if err := metric.Write(m); err != nil {
		t.Fatalf("Summary.Write() error = %v", err)
	}
	return m.GetSummary().GetSampleCount(), m.GetSummary().GetSampleSum()
}

func TestNewBackend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		jobName     string
		gatewayURL  string
		wantErr     bool
		wantJobName string
	}{
		{name: "missing gateway URL", jobName: "x", wantErr: true},
		{name: "default job name", gatewayURL: "http://pushgateway:9091", wantJobName: "oncoclean"},
		{name: "explicit job name", jobName: "nightly", gatewayURL: "http://pushgateway:9091", wantJobName: "nightly"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b, err := NewBackend(tt.jobName, tt.gatewayURL, "")
			if tt.wantErr {
				if err == nil || b != nil {
					t.Fatalf("NewBackend() = %v, %v; want nil, error", b, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewBackend() error = %v", err)
			}
			if b.jobName != tt.wantJobName {
				t.Fatalf("jobName = %q, want %q", b.jobName, tt.wantJobName)
			}
		})
	}
}

func TestIncCounterRouting(t *testing.T) {
	t.Parallel()

	b, err := NewBackend("", "http://example.com", "")
	if err != nil {
		t.Fatal(err)
	}

	b.IncCounter(metrics.StepTotal, 2, metrics.Labels{"step": "dedup", "status": "success"})
	b.IncCounter(metrics.RowsTotal, 40, metrics.Labels{"kind": metrics.KindOutliers})
	b.IncCounter(metrics.RowsTotal, 10, metrics.Labels{"kind": metrics.KindOutliers})
	b.IncCounter(metrics.BatchesTotal, 3, nil)
	b.IncCounter("unknown_metric", 99, metrics.Labels{"kind": metrics.KindOutliers})

	if got := readCounterValue(t, b.stepCounter.WithLabelValues("dedup", "success")); got != 2 {
		t.Errorf("step counter = %v, want 2", got)
	}
	if got := readCounterValue(t, b.rowCounter.WithLabelValues(metrics.KindOutliers)); got != 50 {
		t.Errorf("row counter = %v, want 50", got)
	}
	if got := readCounterValue(t, b.batchCounter); got != 3 {
		t.Errorf("batch counter = %v, want 3", got)
	}
}

func TestZeroBackendIsSafe(t *testing.T) {
	t.Parallel()

	b := &Backend{}
	b.IncCounter(metrics.StepTotal, 1, metrics.Labels{"step": "s", "status": "success"})
	b.IncCounter(metrics.RowsTotal, 1, metrics.Labels{"kind": "input"})
	b.IncCounter(metrics.BatchesTotal, 1, nil)
	b.ObserveHistogram(metrics.StepDuration, 1, metrics.Labels{"step": "s", "status": "success"})
}

func TestObserveHistogram(t *testing.T) {
	t.Parallel()

	b, err := NewBackend("", "http://example.com", "")
	if err != nil {
		t.Fatal(err)
	}
	lbls := metrics.Labels{"step": "resample", "status": "success"}
	b.ObserveHistogram(metrics.StepDuration, 1.5, lbls)
	b.ObserveHistogram("other_metric", 2.0, lbls)

	count, sum := readSummaryCount(t, b.stepDuration, "resample", "success")
	if count != 1 || sum != 1.5 {
		t.Fatalf("summary count=%d sum=%v, want 1, 1.5", count, sum)
	}
}

func TestFlushGroupsByRun(t *testing.T) {
	t.Parallel()

	type pushed struct {
		method, path string
		bodyLen      int
	}
	reqCh := make(chan pushed, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		reqCh <- pushed{r.Method, r.URL.Path, len(body)}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	b, err := NewBackend("oncoclean", server.URL, "run-123")
	if err != nil {
		t.Fatal(err)
	}
	b.IncCounter(metrics.RowsTotal, 1050, metrics.Labels{"kind": metrics.KindWritten})

	if err := b.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var got pushed
	select {
	case got = <-reqCh:
	default:
		t.Fatal("Flush() sent no request")
	}
	if got.method != http.MethodPut {
		t.Errorf("method = %q, want PUT", got.method)
	}
	if want := "/metrics/job/oncoclean/run/run-123"; got.path != want {
		t.Errorf("path = %q, want %q", got.path, want)
	}
	if got.bodyLen == 0 {
		t.Error("push body is empty")
	}
}
