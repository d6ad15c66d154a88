// Package config defines the JSON-serializable configuration for a cleaning
// run. A pipeline file is decoded over Default() so absent keys keep their
// defaults; flags and environment variables are layered on top by LoadFlags.
//
// Example (trimmed):
//
//	{
//	  "input":   { "path": "synthetic_with_anomalies.csv" },
//	  "output":  { "path": "cleaned_synthetic_cancer_data.csv" },
//	  "clean":   { "seed": 42, "min_rows": 1000, "max_rows": 1050 },
//	  "storage": { "kind": "sqlite", "db": { "dsn": "cleaned.db", "table": "patients" } }
//	}
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"oncoclean/internal/parser/csv"
	"oncoclean/internal/schema"
)

// Pipeline is the top-level object decoded from a pipeline file.
type Pipeline struct {
	// Job labels metrics emitted by the run.
	Job string `json:"job"`

	Input   Input   `json:"input"`
	Output  Output  `json:"output"`
	Clean   Clean   `json:"clean"`
	Storage Storage `json:"storage"`
	Metrics Metrics `json:"metrics"`
	Report  Report  `json:"report"`
}

// Input describes the CSV the cleaner reads.
type Input struct {
	// Path is a local file; .gz/.zst/.sz/.br/.xz suffixes are decompressed.
	Path string `json:"path"`

	// NullTokens are cell values read as missing.
	NullTokens []string `json:"null_tokens"`

	// NormalizeHeaders lower-cases and snake-cases header names.
	NormalizeHeaders bool `json:"normalize_headers"`
}

// Output describes where the cleaned CSV is written.
type Output struct {
	Path string `json:"path"`
}

// Clean holds the knobs of the cleaning passes.
type Clean struct {
	Seed         uint64         `json:"seed"`
	MinRows      int            `json:"min_rows"`
	MaxRows      int            `json:"max_rows"`
	Bounds       []schema.Bound `json:"bounds"`
	IntColumns   []string       `json:"int_columns"`
	FloatColumns []string       `json:"float_columns"`
}

// Storage selects the optional database export. An empty Kind disables it.
type Storage struct {
	// Kind is one of "postgres", "mssql", "mysql", "sqlite".
	Kind string   `json:"kind"`
	DB   DBConfig `json:"db"`

	// Options carries backend-agnostic knobs such as batch_size.
	Options Options `json:"options"`
}

// DBConfig configures the export target.
type DBConfig struct {
	// DSN is the driver-specific connection string.
	DSN string `json:"dsn"`

	// Table is the destination table, optionally schema-qualified.
	Table string `json:"table"`

	// AutoCreateTable creates the table from the cleaned column kinds.
	AutoCreateTable bool `json:"auto_create_table"`
}

// Metrics selects the metrics backend flushed at the end of a run.
type Metrics struct {
	// Backend is "none", "pushgateway" or "datadog".
	Backend        string `json:"backend"`
	PushgatewayURL string `json:"pushgateway_url"`
	DatadogAddr    string `json:"datadog_addr"`
	Namespace      string `json:"namespace"`
}

// Report configures the histogram report. An empty Dir disables it.
type Report struct {
	Dir     string   `json:"dir"`
	Columns []string `json:"columns"`
	Bins    int      `json:"bins"`
}

// Default returns the configuration of a plain run with no file or flags.
func Default() Pipeline {
	return Pipeline{
		Job: "oncoclean",
		Input: Input{
			Path:             schema.DefaultCleanInput,
			NullTokens:       slices.Clone(csv.DefaultNullTokens),
			NormalizeHeaders: true,
		},
		Output: Output{Path: schema.DefaultCleanOutput},
		Clean: Clean{
			Seed:         schema.Seed,
			MinRows:      schema.MinRows,
			MaxRows:      schema.MaxRows,
			Bounds:       slices.Clone(schema.Bounds),
			IntColumns:   slices.Clone(schema.IntColumns),
			FloatColumns: slices.Clone(schema.FloatColumns),
		},
		Storage: Storage{Options: Options{}},
		Metrics: Metrics{Backend: "none", Namespace: "oncoclean"},
		Report: Report{
			Columns: []string{schema.Age, schema.TumorSizeCM},
			Bins:    20,
		},
	}
}

// Load decodes the JSON pipeline file at path over Default(). Unknown keys
// are rejected so typos surface instead of silently keeping a default.
func Load(path string) (Pipeline, error) {
	p := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read config: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return p, fmt.Errorf("decode config %s: %w", path, err)
	}
	if p.Storage.Options == nil {
		p.Storage.Options = Options{}
	}
	return p, nil
}

// BatchSize returns storage.options.batch_size, or def when unset.
func (s Storage) BatchSize(def int) int {
	return s.Options.Int("batch_size", def)
}

// Options is a small helper to fetch typed values from arbitrary JSON maps.
// It performs only minimal type coercion and returns the provided default
// when a key is absent or of an unexpected type.
type Options map[string]any

// String returns the string value for key or def.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Int returns the int value for key or def. encoding/json decodes numbers
// as float64, so both float64 and int are accepted.
func (o Options) Int(key string, def int) int {
	if v, ok := o[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		}
	}
	return def
}

// UnmarshalJSON decodes a missing or null options object to an empty map.
func (o *Options) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	var tmp map[string]any
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
