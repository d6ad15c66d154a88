// Command inject corrupts a clean patient CSV with missing values,
// duplicates, outliers, deletions and inconsistent labels. With -generate N
// it first writes N synthetic clean rows to the input path.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"oncoclean/internal/cleaner"
	"oncoclean/internal/inject"
	"oncoclean/internal/schema"
)

func main() {
	var (
		input    = flag.String("input", envOr("INJECT_INPUT", schema.DefaultInjectInput), "clean input CSV path (env INJECT_INPUT)")
		output   = flag.String("output", envOr("INJECT_OUTPUT", schema.DefaultCleanInput), "anomalous output CSV path (env INJECT_OUTPUT)")
		generate = flag.Int("generate", 0, "write N synthetic clean rows to -input before injecting")
		seed     = flag.Uint64("seed", schema.Seed, "seed for -generate")
	)
	flag.Parse()

	ctx := context.Background()
	lg := log.Default()

	if *generate > 0 {
		opts := cleaner.Options{Output: *input}
		if err := cleaner.Write(ctx, schema.Synthesize(*generate, *seed), opts); err != nil {
			fatalf("generate: %v", err)
		}
		lg.Printf("generate: path=%s rows=%d seed=%d", *input, *generate, *seed)
	}

	rep, err := inject.Run(ctx, inject.Options{
		Input:            *input,
		Output:           *output,
		NormalizeHeaders: true,
		Logger:           lg,
	})
	if err != nil {
		if errors.Is(err, cleaner.ErrInputNotFound) {
			fatalf("error: %v", err)
		}
		fatalf("inject: %v", err)
	}
	lg.Printf("inject: done rows=%d->%d", rep.InputRows, rep.OutputRows)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
