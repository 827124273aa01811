package answers

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// The helpers below project one command entry onto the type an SDK call
// expects. A missing key or a value of the wrong type yields nil; they never fail.

// String returns the value under key if it is a string.
func String(cmd EventCommand, key string) *string {
	if s, ok := cmd[key].(string); ok {
		return &s
	}
	return nil
}

// Double returns the value under key as a float64. Go numeric kinds,
// json.Number and numeric strings are accepted. NaN and infinities are
// treated as absent since they have no decimal form.
func Double(cmd EventCommand, key string) *float64 {
	f, ok := toFloat(cmd[key])
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// Decimal returns the value under key converted to a double and then to a decimal.
func Decimal(cmd EventCommand, key string) *decimal.Decimal {
	f := Double(cmd, key)
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}

// Bool returns 1 for true and 0 for false if the value under key is a bool.
func Bool(cmd EventCommand, key string) *int {
	b, ok := cmd[key].(bool)
	if !ok {
		return nil
	}
	i := 0
	if b {
		i = 1
	}
	return &i
}

// Nested returns the mapping under key if it is one.
func Nested(cmd EventCommand, key string) Attributes {
	if m, ok := cmd[key].(map[string]any); ok {
		return m
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		return parseFloat(string(n))
	case string:
		return parseFloat(n)
	default:
		return 0, false
	}
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
