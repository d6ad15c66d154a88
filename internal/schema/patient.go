// Package schema describes the synthetic cancer-patient dataset: its column
// layout, the integer/float typing of the cleaned output, the clinically
// plausible bounds, and the cancer-absence invariant.
package schema

const (
	// DefaultCleanInput is the anomaly-injected dataset the cleaner reads.
	DefaultCleanInput = "synthetic_with_anomalies.csv"
	// DefaultCleanOutput is where the cleaned dataset is written.
	DefaultCleanOutput = "cleaned_synthetic_cancer_data.csv"
	// DefaultInjectInput is the clean dataset the injector corrupts.
	DefaultInjectInput = "synthetic_cancer_patient_data.csv"

	// MinRows and MaxRows bound the row count of the cleaned output.
	MinRows = 1000
	MaxRows = 1050

	// Seed drives every sampling step of the cleaner.
	Seed uint64 = 42
)

// Column names referenced directly by the passes.
const (
	Age                 = "age"
	TumorSizeCM         = "tumor_size_cm"
	BMI                 = "bmi"
	HemoglobinLevel     = "hemoglobin_level"
	CancerPresence      = "cancer_presence"
	CancerStage         = "cancer_stage"
	CancerType          = "cancer_type"
	TreatmentType       = "treatment_type"
	ResponseToTreatment = "response_to_treatment"
)

// Labels used by the cancer-absence invariant.
const (
	NoCancerStage     = "No Cancer"
	NoCancerType      = "None"
	NoTreatment       = "None"
	NoResponse        = "N/A"
	InconsistentStage = "Stage III"
)

// Columns is the canonical column order of the dataset.
var Columns = []string{
	Age,
	BMI,
	"family_history_cancer",
	"occupational_exposure",
	"prior_radiation_exposure",
	"unexplained_weight_loss",
	"persistent_fatigue",
	"chronic_pain",
	"abnormal_bleeding",
	"persistent_cough",
	"lump_presence",
	"imaging_abnormality",
	TumorSizeCM,
	"tumor_marker_level",
	HemoglobinLevel,
	"wbc_count",
	"platelet_count",
	"biopsy_result",
	CancerPresence,
	CancerStage,
	CancerType,
	TreatmentType,
	"surgery_performed",
	ResponseToTreatment,
	"survival_months",
}

// IntColumns are cast to integers in the cleaned output.
var IntColumns = []string{
	Age, "family_history_cancer", "occupational_exposure",
	"prior_radiation_exposure", "wbc_count", "platelet_count",
	"unexplained_weight_loss", "persistent_fatigue", "chronic_pain",
	"abnormal_bleeding", "persistent_cough", "lump_presence",
	"imaging_abnormality", "biopsy_result", "surgery_performed",
	"survival_months", CancerPresence,
}

// FloatColumns are cast to floating point in the cleaned output.
var FloatColumns = []string{BMI, HemoglobinLevel, "tumor_marker_level", TumorSizeCM}

// Bound is an inclusive plausible range for a numeric column.
type Bound struct {
	Column string  `json:"column"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Contains reports whether v lies inside the bound.
func (b Bound) Contains(v float64) bool { return v >= b.Min && v <= b.Max }

// Bounds are the outlier filters, applied in order.
var Bounds = []Bound{
	{Column: Age, Min: 18, Max: 90},
	{Column: TumorSizeCM, Min: 0.5, Max: 10},
}

// Assignment sets Column to Value.
type Assignment struct {
	Column string
	Value  string
}

// NoCancer lists the values every row with cancer_presence == 0 must carry.
var NoCancer = []Assignment{
	{Column: CancerStage, Value: NoCancerStage},
	{Column: CancerType, Value: NoCancerType},
	{Column: TreatmentType, Value: NoTreatment},
	{Column: ResponseToTreatment, Value: NoResponse},
}
