// Package inject corrupts a clean patient dataset with the anomalies the
// cleaner is built to repair: missing values, appended duplicates,
// implausible ages and tumor sizes, deleted rows and cancer-free rows with a
// cancer stage. Each step samples its rows from its own fixed seed.
package inject

import (
	"context"
	"log"
	"math"
	"math/rand/v2"

	"oncoclean/internal/bitmap"
	"oncoclean/internal/cleaner"
	"oncoclean/internal/schema"
	"oncoclean/internal/table"
)

// Sampling fractions and seeds of the injection steps.
const (
	NullFrac = 0.03
	NullSeed = 42

	DupFrac = 0.01
	DupSeed = 1

	AgeFrac = 0.005
	AgeSeed = 3

	TumorFrac = 0.005
	TumorSeed = 4

	DeleteFrac = 0.005
	DeleteSeed = 10

	StageFrac = 0.02
	StageSeed = 5
)

// Implausible values written by the outlier step.
const (
	OutlierAge   = 150
	OutlierTumor = 40.0
)

// NullColumns are blanked on the sampled rows.
var NullColumns = []string{schema.BMI, schema.HemoglobinLevel}

// Report counts what each step did.
type Report struct {
	InputRows    int
	Nulls        int
	Duplicates   int
	AgeOutliers  int
	TumorOutlier int
	Deleted      int
	Inconsistent int
	OutputRows   int
}

// sample picks round-half-even(frac*n) distinct positions of [0,n) from a
// PCG source seeded (seed, seed).
func sample(n int, frac float64, seed uint64) []int {
	k := int(math.RoundToEven(frac * float64(n)))
	if k <= 0 || n == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(seed, seed)).Perm(n)[:k]
}

// Inject applies every step to t in place. Every referenced column must
// exist.
func Inject(t *table.Table, lg *log.Logger) (Report, error) {
	if lg == nil {
		lg = log.Default()
	}
	rep := Report{InputRows: t.Len()}

	nullCols := make([]int, len(NullColumns))
	for i, c := range NullColumns {
		j, err := t.Lookup(c)
		if err != nil {
			return rep, err
		}
		nullCols[i] = j
	}
	age, err := t.Lookup(schema.Age)
	if err != nil {
		return rep, err
	}
	tumor, err := t.Lookup(schema.TumorSizeCM)
	if err != nil {
		return rep, err
	}
	presence, err := t.Lookup(schema.CancerPresence)
	if err != nil {
		return rep, err
	}
	stage, err := t.Lookup(schema.CancerStage)
	if err != nil {
		return rep, err
	}

	for _, i := range sample(t.Len(), NullFrac, NullSeed) {
		for _, j := range nullCols {
			t.Rows[i][j] = nil
		}
	}
	missing := t.Missing()
	for _, j := range nullCols {
		rep.Nulls += missing[j]
	}
	lg.Printf("inject: nulls=%d", rep.Nulls)

	dups := sample(t.Len(), DupFrac, DupSeed)
	for _, i := range dups {
		t.Rows = append(t.Rows, append([]any(nil), t.Rows[i]...))
	}
	rep.Duplicates = len(dups)
	lg.Printf("inject: duplicates=+%d", rep.Duplicates)

	ageVal, err := table.Convert(int64(OutlierAge), t.Kinds[age])
	if err != nil {
		return rep, err
	}
	tumorVal, err := table.Convert(OutlierTumor, t.Kinds[tumor])
	if err != nil {
		return rep, err
	}
	ages := sample(t.Len(), AgeFrac, AgeSeed)
	for _, i := range ages {
		t.Rows[i][age] = ageVal
	}
	tumors := sample(t.Len(), TumorFrac, TumorSeed)
	for _, i := range tumors {
		t.Rows[i][tumor] = tumorVal
	}
	rep.AgeOutliers, rep.TumorOutlier = len(ages), len(tumors)
	lg.Printf("inject: outliers age=%d tumor=%d", rep.AgeOutliers, rep.TumorOutlier)

	del := sample(t.Len(), DeleteFrac, DeleteSeed)
	marks := bitmap.New(t.Len())
	for _, i := range del {
		marks.Add(i)
	}
	rep.Deleted = t.Drop(marks)
	lg.Printf("inject: deleted=-%d", rep.Deleted)

	var healthy []int
	for i, r := range t.Rows {
		if v, ok := table.Number(r[presence]); ok && v == 0 {
			healthy = append(healthy, i)
		}
	}
	for _, k := range sample(len(healthy), StageFrac, StageSeed) {
		t.Rows[healthy[k]][stage] = schema.InconsistentStage
		rep.Inconsistent++
	}
	lg.Printf("inject: inconsistencies=%d", rep.Inconsistent)

	rep.OutputRows = t.Len()
	return rep, nil
}

// Options configures Run.
type Options struct {
	Input            string
	Output           string
	NullTokens       []string
	NormalizeHeaders bool
	Logger           *log.Logger
}

// Run reads opts.Input, injects anomalies and writes opts.Output. A missing
// input yields cleaner.ErrInputNotFound and nothing is written.
func Run(ctx context.Context, opts Options) (Report, error) {
	lg := opts.Logger
	if lg == nil {
		lg = log.Default()
	}
	rw := cleaner.Options{
		Input:            opts.Input,
		Output:           opts.Output,
		NullTokens:       opts.NullTokens,
		NormalizeHeaders: opts.NormalizeHeaders,
		Logger:           lg,
	}
	t, _, err := cleaner.Read(ctx, rw)
	if err != nil {
		return Report{}, err
	}
	lg.Printf("inject: input=%s rows=%d cols=%d", opts.Input, t.Len(), t.Width())

	rep, err := Inject(t, lg)
	if err != nil {
		return rep, err
	}
	if err := cleaner.Write(ctx, t, rw); err != nil {
		return rep, err
	}
	lg.Printf("inject: output=%s rows=%d cols=%d", opts.Output, t.Len(), t.Width())
	return rep, nil
}
