package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning is surfaced to users but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding.
//
// Path is a dotted path into the config (e.g. "storage.db.table",
// "clean.bounds[1]").
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

var knownStorage = map[string]struct{}{
	"postgres": {},
	"mssql":    {},
	"mysql":    {},
	"sqlite":   {},
}

var knownMetrics = map[string]struct{}{
	"":            {},
	"none":        {},
	"pushgateway": {},
	"datadog":     {},
}

// ValidatePipeline performs static validation of p without mutating it.
// Callers decide whether warnings are fatal.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue
	issues = append(issues, validatePaths(p)...)
	issues = append(issues, validateClean(p.Clean)...)
	issues = append(issues, validateStorage(p.Storage)...)
	issues = append(issues, validateMetrics(p.Metrics)...)
	if p.Report.Dir != "" && p.Report.Bins <= 0 {
		issues = append(issues, Issue{SeverityError, "report.bins", "bins must be > 0"})
	}
	return issues
}

func validatePaths(p Pipeline) []Issue {
	var issues []Issue
	in := strings.TrimSpace(p.Input.Path)
	out := strings.TrimSpace(p.Output.Path)
	if in == "" {
		issues = append(issues, Issue{SeverityError, "input.path", "input path must not be empty"})
	}
	if out == "" {
		issues = append(issues, Issue{SeverityError, "output.path", "output path must not be empty"})
	}
	if in != "" && filepath.Clean(in) == filepath.Clean(out) {
		issues = append(issues, Issue{SeverityError, "output.path", "output path must differ from input path"})
	}
	return issues
}

func validateClean(c Clean) []Issue {
	var issues []Issue
	if c.MinRows <= 0 {
		issues = append(issues, Issue{SeverityError, "clean.min_rows", "min_rows must be > 0"})
	}
	if c.MaxRows < c.MinRows {
		issues = append(issues, Issue{SeverityError, "clean.max_rows",
			fmt.Sprintf("max_rows (%d) must be >= min_rows (%d)", c.MaxRows, c.MinRows)})
	}
	for i, b := range c.Bounds {
		path := fmt.Sprintf("clean.bounds[%d]", i)
		if strings.TrimSpace(b.Column) == "" {
			issues = append(issues, Issue{SeverityError, path + ".column", "bound column must not be empty"})
		}
		if b.Min > b.Max {
			issues = append(issues, Issue{SeverityError, path,
				fmt.Sprintf("min (%g) must be <= max (%g)", b.Min, b.Max)})
		}
	}

	ints := make(map[string]struct{}, len(c.IntColumns))
	for _, col := range c.IntColumns {
		ints[col] = struct{}{}
	}
	for _, col := range c.FloatColumns {
		if _, ok := ints[col]; ok {
			issues = append(issues, Issue{SeverityWarning, "clean.float_columns",
				fmt.Sprintf("column %q is listed as both int and float; float wins", col)})
		}
	}
	return issues
}

func validateStorage(s Storage) []Issue {
	if s.Kind == "" {
		return nil
	}
	var issues []Issue
	if _, ok := knownStorage[s.Kind]; !ok {
		issues = append(issues, Issue{SeverityError, "storage.kind",
			fmt.Sprintf("unknown storage kind %q; want postgres, mssql, mysql or sqlite", s.Kind)})
	}
	if strings.TrimSpace(s.DB.DSN) == "" {
		issues = append(issues, Issue{SeverityError, "storage.db.dsn", "dsn must not be empty when storage.kind is set"})
	}
	if strings.TrimSpace(s.DB.Table) == "" {
		issues = append(issues, Issue{SeverityError, "storage.db.table", "table must not be empty when storage.kind is set"})
	}
	if bs := s.BatchSize(1); bs <= 0 {
		issues = append(issues, Issue{SeverityError, "storage.options.batch_size", "batch_size must be > 0"})
	}
	return issues
}

func validateMetrics(m Metrics) []Issue {
	var issues []Issue
	if _, ok := knownMetrics[m.Backend]; !ok {
		issues = append(issues, Issue{SeverityWarning, "metrics.backend",
			fmt.Sprintf("unknown metrics backend %q; metrics are disabled", m.Backend)})
		return issues
	}
	if m.Backend == "pushgateway" && m.PushgatewayURL == "" {
		issues = append(issues, Issue{SeverityError, "metrics.pushgateway_url", "pushgateway backend requires pushgateway_url"})
	}
	if m.Backend == "datadog" && m.DatadogAddr == "" {
		issues = append(issues, Issue{SeverityError, "metrics.datadog_addr", "datadog backend requires datadog_addr"})
	}
	return issues
}
