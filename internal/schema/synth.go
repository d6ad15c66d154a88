package schema

import (
	"math"
	"math/rand/v2"

	"oncoclean/internal/table"
)

var (
	stages     = []string{"Stage I", "Stage II", "Stage III", "Stage IV"}
	types      = []string{"Breast", "Lung", "Colon", "Prostate", "Skin", "Leukemia"}
	treatments = []string{"Surgery", "Chemotherapy", "Radiation", "Immunotherapy", "Combination"}
	responses  = []string{"Complete Response", "Partial Response", "Stable Disease", "Progressive Disease"}
)

// Kinds returns the column kinds of the canonical layout.
func Kinds() []table.Kind {
	ints := make(map[string]bool, len(IntColumns))
	for _, c := range IntColumns {
		ints[c] = true
	}
	floats := make(map[string]bool, len(FloatColumns))
	for _, c := range FloatColumns {
		floats[c] = true
	}
	out := make([]table.Kind, len(Columns))
	for i, c := range Columns {
		switch {
		case ints[c]:
			out[i] = table.Int
		case floats[c]:
			out[i] = table.Float
		default:
			out[i] = table.String
		}
	}
	return out
}

// Synthesize builds n clean patient rows from seed. Every row is inside the
// bounds and respects the cancer-absence invariant.
func Synthesize(n int, seed uint64) *table.Table {
	rng := rand.New(rand.NewPCG(seed, seed))
	t := table.New(Columns, Kinds())
	t.Rows = make([][]any, 0, n)

	flag := func(p float64) int64 {
		if rng.Float64() < p {
			return 1
		}
		return 0
	}
	between := func(lo, hi float64, places int) float64 {
		p := math.Pow(10, float64(places))
		return math.Round((lo+rng.Float64()*(hi-lo))*p) / p
	}

	for range n {
		cancer := flag(0.35)
		stage, kind, treatment, response := NoCancerStage, NoCancerType, NoTreatment, NoResponse
		surgery := int64(0)
		tumor := between(0.5, 2.0, 1)
		if cancer == 1 {
			stage = stages[rng.IntN(len(stages))]
			kind = types[rng.IntN(len(types))]
			treatment = treatments[rng.IntN(len(treatments))]
			response = responses[rng.IntN(len(responses))]
			surgery = flag(0.5)
			tumor = between(0.5, 10, 1)
		}
		row := map[string]any{
			Age:                        int64(18 + rng.IntN(73)),
			BMI:                        between(16, 40, 1),
			"family_history_cancer":    flag(0.2),
			"occupational_exposure":    flag(0.15),
			"prior_radiation_exposure": flag(0.05),
			"unexplained_weight_loss":  flag(0.1 + 0.3*float64(cancer)),
			"persistent_fatigue":       flag(0.2 + 0.3*float64(cancer)),
			"chronic_pain":             flag(0.15),
			"abnormal_bleeding":        flag(0.05 + 0.2*float64(cancer)),
			"persistent_cough":         flag(0.1),
			"lump_presence":            flag(0.05 + 0.4*float64(cancer)),
			"imaging_abnormality":      flag(0.05 + 0.6*float64(cancer)),
			TumorSizeCM:                tumor,
			"tumor_marker_level":       between(0, 40+60*float64(cancer), 2),
			HemoglobinLevel:            between(10, 17, 1),
			"wbc_count":                int64(4000 + rng.IntN(7001)),
			"platelet_count":           int64(150000 + rng.IntN(300001)),
			"biopsy_result":            cancer,
			CancerPresence:             cancer,
			CancerStage:                stage,
			CancerType:                 kind,
			TreatmentType:              treatment,
			"surgery_performed":        surgery,
			ResponseToTreatment:        response,
			"survival_months":          int64(1 + rng.IntN(120)),
		}
		cells := make([]any, len(Columns))
		for i, c := range Columns {
			cells[i] = row[c]
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}
