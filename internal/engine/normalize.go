package engine

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Readings is a cleaned set of activity readings for one day, keyed by
// normalized activity key. Values are non-negative. Keys without a matching
// factor may be present; the calculator ignores them.
type Readings map[string]float64

// NormalizeKey canonicalizes a human-entered activity label into the factor
// table vocabulary: lowercase, with separator runs collapsed to single
// underscores. "Electricity (kWh)" and "electricity_kwh" normalize the same.
func NormalizeKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(key)) {
		isWord := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isWord {
			pendingSep = b.Len() > 0
			continue
		}
		if pendingSep {
			b.WriteByte('_')
			pendingSep = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Sanitize is the single validity boundary for raw activity input. It
// normalizes keys, coerces values to numbers, drops entries that cannot be
// coerced, and clamps negatives to zero. Keys that normalize to something
// outside the factor vocabulary are kept but carry no weight downstream.
//
// After Sanitize, the rest of the engine can assume clean input.
func Sanitize(raw map[string]any) Readings {
	out := make(Readings, len(raw))
	for key, value := range raw {
		norm := NormalizeKey(key)
		if norm == "" {
			continue
		}
		amount, ok := coerceFloat(value)
		if !ok {
			continue
		}
		if amount < 0 {
			amount = 0
		}
		out[norm] = amount
	}
	return out
}

// SanitizeNumeric is Sanitize for already-numeric input maps.
func SanitizeNumeric(raw map[string]float64) Readings {
	out := make(Readings, len(raw))
	for key, amount := range raw {
		norm := NormalizeKey(key)
		if norm == "" || math.IsNaN(amount) || math.IsInf(amount, 0) {
			continue
		}
		if amount < 0 {
			amount = 0
		}
		out[norm] = amount
	}
	return out
}

// HasMeaningfulInput reports whether at least one entry coerces to a number
// greater than zero.
func HasMeaningfulInput(raw map[string]any) bool {
	for _, value := range raw {
		if amount, ok := coerceFloat(value); ok && amount > 0 {
			return true
		}
	}
	return false
}

// InvalidFields returns the keys whose values are non-numeric or negative,
// sorted for stable display.
func InvalidFields(raw map[string]any) []string {
	var bad []string
	for key, value := range raw {
		amount, ok := coerceFloat(value)
		if !ok || amount < 0 {
			bad = append(bad, key)
		}
	}
	sort.Strings(bad)
	return bad
}

// coerceFloat converts the JSON-ish value types the CLI can hand us into a
// finite float64.
func coerceFloat(value any) (float64, bool) {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint64:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
