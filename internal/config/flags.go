package config

import (
	"flag"
	"fmt"
	"strconv"
)

// Invocation is the result of parsing a cleaner command line.
type Invocation struct {
	Pipeline Pipeline

	// ConfigPath is the pipeline file that was loaded, if any.
	ConfigPath string

	// Validate asks the CLI to check the configuration and exit.
	Validate bool

	// Verbose enables per-pass timings and the pre-clean profile.
	Verbose bool
}

// setting binds one flag and its environment fallback to a Pipeline field.
type setting struct {
	flag  string
	env   string
	usage string
	apply func(p *Pipeline, v string) error
}

func stringSetting(flagName, env, usage string, dst func(p *Pipeline) *string) setting {
	return setting{flag: flagName, env: env, usage: usage, apply: func(p *Pipeline, v string) error {
		*dst(p) = v
		return nil
	}}
}

var settings = []setting{
	stringSetting("input", "CLEAN_INPUT", "input CSV path", func(p *Pipeline) *string { return &p.Input.Path }),
	stringSetting("output", "CLEAN_OUTPUT", "cleaned CSV path", func(p *Pipeline) *string { return &p.Output.Path }),
	{flag: "seed", env: "CLEAN_SEED", usage: "sampling seed", apply: func(p *Pipeline, v string) error {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("seed %q: %w", v, err)
		}
		p.Clean.Seed = n
		return nil
	}},
	stringSetting("sink", "CLEAN_SINK", "export backend: postgres|mssql|mysql|sqlite (empty disables)", func(p *Pipeline) *string { return &p.Storage.Kind }),
	stringSetting("dsn", "CLEAN_DSN", "export DSN", func(p *Pipeline) *string { return &p.Storage.DB.DSN }),
	stringSetting("table", "CLEAN_TABLE", "export table", func(p *Pipeline) *string { return &p.Storage.DB.Table }),
	stringSetting("metrics-backend", "METRICS_BACKEND", "metrics backend: none|pushgateway|datadog", func(p *Pipeline) *string { return &p.Metrics.Backend }),
	stringSetting("pushgateway-url", "PUSHGATEWAY_URL", "Prometheus Pushgateway URL", func(p *Pipeline) *string { return &p.Metrics.PushgatewayURL }),
	stringSetting("datadog-addr", "DD_AGENT_ADDR", "DogStatsD address host:port", func(p *Pipeline) *string { return &p.Metrics.DatadogAddr }),
	stringSetting("report-dir", "CLEAN_REPORT_DIR", "directory for histogram PNGs (empty disables)", func(p *Pipeline) *string { return &p.Report.Dir }),
}

// LoadFlags registers the cleaner flags on fs, parses args and resolves the
// pipeline. Precedence is flag, then environment, then config file, then
// Default().
func LoadFlags(fs *flag.FlagSet, getenv func(string) string, args []string) (Invocation, error) {
	var inv Invocation
	fs.StringVar(&inv.ConfigPath, "config", "", "JSON pipeline file")
	fs.BoolVar(&inv.Validate, "validate", false, "validate the configuration and exit")
	fs.BoolVar(&inv.Verbose, "v", false, "verbose logging")

	values := make(map[string]*string, len(settings))
	for _, s := range settings {
		values[s.flag] = fs.String(s.flag, "", s.usage+" (env "+s.env+")")
	}
	if err := fs.Parse(args); err != nil {
		return inv, err
	}

	p := Default()
	if inv.ConfigPath != "" {
		var err error
		if p, err = Load(inv.ConfigPath); err != nil {
			return inv, err
		}
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	for _, s := range settings {
		v, from := "", ""
		switch {
		case set[s.flag]:
			v, from = *values[s.flag], "-"+s.flag
		case getenv(s.env) != "":
			v, from = getenv(s.env), s.env
		default:
			continue
		}
		if err := s.apply(&p, v); err != nil {
			return inv, fmt.Errorf("%s: %w", from, err)
		}
	}
	inv.Pipeline = p
	return inv, nil
}
