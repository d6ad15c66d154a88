// Command probe profiles patient CSV files: missing cells, duplicates,
// out-of-bound rows and inconsistent labels. It prints CSV lines, or JSON
// with -json.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"oncoclean/internal/datasource/file"
	"oncoclean/internal/probe"
	"oncoclean/internal/schema"
)

func main() {
	var (
		input  = flag.String("input", schema.DefaultCleanInput, "CSV file to profile")
		list   = flag.String("list", "", "text file with one CSV path per line ('#' comments); overrides -input")
		asJSON = flag.Bool("json", false, "print JSON instead of CSV lines")
	)
	flag.Parse()

	paths := []string{*input}
	if *list != "" {
		var err error
		if paths, err = file.ReadList(*list); err != nil {
			fatalf("read list: %v", err)
		}
	}

	if err := run(context.Background(), os.Stdout, paths, *asJSON); err != nil {
		fatalf("probe: %v", err)
	}
}

func run(ctx context.Context, w io.Writer, paths []string, asJSON bool) error {
	opt := probe.Options{NormalizeHeaders: true, Bounds: schema.Bounds}
	profiles := make([]probe.Profile, 0, len(paths))
	for _, path := range paths {
		p, err := probe.File(ctx, path, opt)
		if err != nil {
			return err
		}
		profiles = append(profiles, p)
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if len(profiles) == 1 {
			return enc.Encode(profiles[0])
		}
		return enc.Encode(profiles)
	}
	for _, p := range profiles {
		if err := p.WriteCSV(w); err != nil {
			return err
		}
	}
	return nil
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
