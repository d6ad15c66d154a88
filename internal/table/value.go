package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// IsMissing reports whether v represents a missing cell.
func IsMissing(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	}
	return false
}

// Number returns v as a float64 when it is numeric and present.
func Number(v any) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		if math.IsNaN(x) {
			return 0, false
		}
		return x, true
	}
	return 0, false
}

// Convert returns v converted to kind k. Floats truncate toward zero when
// converted to Int.
func Convert(v any, k Kind) (any, error) {
	switch k {
	case Int:
		switch x := v.(type) {
		case int64:
			return x, nil
		case float64:
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return nil, fmt.Errorf("cannot convert non-finite %v to int", x)
			}
			return int64(x), nil
		case string:
			n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("cannot convert %q to int", x)
			}
			return n, nil
		case nil:
			return nil, fmt.Errorf("cannot convert missing value to int")
		}
	case Float:
		switch x := v.(type) {
		case int64:
			return float64(x), nil
		case float64:
			return x, nil
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
			if err != nil {
				return nil, fmt.Errorf("cannot convert %q to float", x)
			}
			return f, nil
		case nil:
			return nil, nil
		}
	case String:
		if IsMissing(v) {
			return nil, nil
		}
		return Format(v), nil
	}
	return nil, fmt.Errorf("unsupported value %T for kind %s", v, k)
}

// Format renders a cell the way the CSV writer emits it. Missing values are
// the empty string.
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return FormatFloat(x)
	default:
		return fmt.Sprint(x)
	}
}

// FormatFloat renders f in shortest round-trip form. Integral values keep a
// trailing ".0" so a float column stays recognisably float on re-read;
// magnitudes outside [1e-4, 1e16) use exponent notation.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ""
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	if a := math.Abs(f); a != 0 && (a < 1e-4 || a >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
