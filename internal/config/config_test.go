package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"oncoclean/internal/schema"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeline.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()

	p := Default()
	if p.Input.Path != schema.DefaultCleanInput || p.Output.Path != schema.DefaultCleanOutput {
		t.Fatalf("paths = %q, %q", p.Input.Path, p.Output.Path)
	}
	if p.Clean.Seed != 42 || p.Clean.MinRows != 1000 || p.Clean.MaxRows != 1050 {
		t.Fatalf("clean = %+v", p.Clean)
	}
	if !reflect.DeepEqual(p.Clean.Bounds, schema.Bounds) {
		t.Fatalf("bounds = %+v", p.Clean.Bounds)
	}
	// Default must not alias package-level slices.
	p.Clean.Bounds[0].Max = 1
	if schema.Bounds[0].Max != 90 {
		t.Fatal("Default aliases schema.Bounds")
	}
	if issues := ValidatePipeline(Default()); len(issues) != 0 {
		t.Fatalf("default pipeline has issues: %+v", issues)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `{
	  "input":   { "path": "in.csv.gz" },
	  "clean":   { "seed": 7, "bounds": [ { "column": "age", "min": 20, "max": 80 } ] },
	  "storage": { "kind": "sqlite", "db": { "dsn": "out.db", "table": "patients" }, "options": { "batch_size": 250 } }
	}`)
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Input.Path != "in.csv.gz" || p.Clean.Seed != 7 {
		t.Fatalf("overrides not applied: %+v", p)
	}
	if p.Output.Path != schema.DefaultCleanOutput || p.Clean.MinRows != 1000 || !p.Input.NormalizeHeaders {
		t.Fatalf("defaults lost: %+v", p)
	}
	if want := []schema.Bound{{Column: "age", Min: 20, Max: 80}}; !reflect.DeepEqual(p.Clean.Bounds, want) {
		t.Fatalf("bounds = %+v", p.Clean.Bounds)
	}
	if got := p.Storage.BatchSize(500); got != 250 {
		t.Fatalf("batch size = %d", got)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Load(writeConfig(t, `{"inptu": {}}`)); err == nil || !strings.Contains(err.Error(), "inptu") {
		t.Errorf("unknown key err = %v", err)
	}
	if _, err := Load(writeConfig(t, `{`)); err == nil {
		t.Error("expected error for truncated JSON")
	}
}

func TestOptions(t *testing.T) {
	t.Parallel()

	o := Options{"s": "x", "b": true, "f": float64(3), "i": 4, "bad": []any{}}
	if o.String("s", "d") != "x" || o.String("bad", "d") != "d" {
		t.Error("String")
	}
	if !o.Bool("b", false) || o.Bool("missing", false) {
		t.Error("Bool")
	}
	if o.Int("f", 0) != 3 || o.Int("i", 0) != 4 || o.Int("bad", 9) != 9 {
		t.Error("Int")
	}

	var empty Options
	if err := empty.UnmarshalJSON([]byte("null")); err != nil || empty == nil {
		t.Errorf("null options = %v, %v", empty, err)
	}
}

func TestLoadFlagsPrecedence(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, `{"input": {"path": "from-config.csv"}, "output": {"path": "config-out.csv"}, "clean": {"seed": 1}}`)
	env := map[string]string{
		"CLEAN_INPUT":     "from-env.csv",
		"CLEAN_SEED":      "2",
		"METRICS_BACKEND": "datadog",
	}
	getenv := func(k string) string { return env[k] }

	tests := []struct {
		name       string
		args       []string
		wantInput  string
		wantOutput string
		wantSeed   uint64
	}{
		{"defaults", nil, "from-env.csv", schema.DefaultCleanOutput, 2},
		{"config", []string{"-config", cfg}, "from-env.csv", "config-out.csv", 2},
		{"flag wins", []string{"-config", cfg, "-input", "flag.csv", "-seed", "3"}, "flag.csv", "config-out.csv", 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := flag.NewFlagSet("clean", flag.ContinueOnError)
			inv, err := LoadFlags(fs, getenv, tc.args)
			if err != nil {
				t.Fatalf("LoadFlags: %v", err)
			}
			p := inv.Pipeline
			if p.Input.Path != tc.wantInput || p.Output.Path != tc.wantOutput || p.Clean.Seed != tc.wantSeed {
				t.Fatalf("got input=%q output=%q seed=%d", p.Input.Path, p.Output.Path, p.Clean.Seed)
			}
			if p.Metrics.Backend != "datadog" {
				t.Fatalf("metrics backend = %q", p.Metrics.Backend)
			}
		})
	}
}

func TestLoadFlagsSwitches(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("clean", flag.ContinueOnError)
	inv, err := LoadFlags(fs, func(string) string { return "" },
		[]string{"-validate", "-v", "-sink", "sqlite", "-dsn", "x.db", "-table", "t", "-report-dir", "plots"})
	if err != nil {
		t.Fatal(err)
	}
	if !inv.Validate || !inv.Verbose {
		t.Fatalf("switches = %+v", inv)
	}
	s := inv.Pipeline.Storage
	if s.Kind != "sqlite" || s.DB.DSN != "x.db" || s.DB.Table != "t" || inv.Pipeline.Report.Dir != "plots" {
		t.Fatalf("storage = %+v report = %+v", s, inv.Pipeline.Report)
	}
}

func TestLoadFlagsErrors(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("clean", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if _, err := LoadFlags(fs, func(string) string { return "" }, []string{"-seed", "abc"}); err == nil || !strings.Contains(err.Error(), "-seed") {
		t.Errorf("bad seed flag err = %v", err)
	}

	fs = flag.NewFlagSet("clean", flag.ContinueOnError)
	env := func(k string) string {
		if k == "CLEAN_SEED" {
			return "-1"
		}
		return ""
	}
	if _, err := LoadFlags(fs, env, nil); err == nil || !strings.Contains(err.Error(), "CLEAN_SEED") {
		t.Errorf("bad seed env err = %v", err)
	}

	fs = flag.NewFlagSet("clean", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if _, err := LoadFlags(fs, func(string) string { return "" }, []string{"-nope"}); err == nil {
		t.Error("expected error for unknown flag")
	}
}
