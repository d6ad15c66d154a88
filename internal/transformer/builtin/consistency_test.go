package builtin

import (
	"errors"
	"reflect"
	"testing"

	"oncoclean/internal/schema"
	"oncoclean/internal/table"
)

func TestConsistency(t *testing.T) {
	t.Parallel()

	cols := []string{"cancer_presence", "cancer_stage", "cancer_type", "treatment_type", "response_to_treatment"}
	kinds := []table.Kind{table.Int, table.String, table.String, table.String, table.String}
	tb := table.New(cols, kinds)
	_ = tb.Append(
		[]any{int64(0), "No Cancer", "None", "None", "N/A"},
		[]any{int64(0), "Stage III", "None", "None", "N/A"},
		[]any{int64(1), "Stage II", "Lung", "Surgery", "Complete Response"},
		[]any{int64(0), "No Cancer", "Lung", "None", "N/A"},
		[]any{0.0, "Stage III", "None", "None", "N/A"},
	)

	st, err := Consistency{}.Apply(tb)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if st.Fixed != 3 || st.Found != 3 {
		t.Fatalf("stats=%+v want 3 fixed", st)
	}
	clean := []any{"No Cancer", "None", "None", "N/A"}
	for i, r := range tb.Rows {
		if i == 2 {
			want := []any{"Stage II", "Lung", "Surgery", "Complete Response"}
			if !reflect.DeepEqual(r[1:], want) {
				t.Errorf("row 2 changed: %v", r)
			}
			continue
		}
		if !reflect.DeepEqual(r[1:], clean) {
			t.Errorf("row %d=%v want %v", i, r[1:], clean)
		}
	}
}

func TestConsistencyRequiresColumns(t *testing.T) {
	t.Parallel()

	tb := table.New([]string{schema.CancerPresence, schema.CancerStage}, nil)
	_, err := Consistency{}.Apply(tb)
	if !errors.Is(err, table.ErrNoColumn) {
		t.Fatalf("err=%v want ErrNoColumn", err)
	}
}
