package product

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// present reports whether a raw field carries a value. Zero counts as a
// value; null and the empty string do not.
func present(raw map[string]any, key string) bool {
	v, ok := raw[key]
	if !ok || v == nil {
		return false
	}
	if s, isString := v.(string); isString && s == "" {
		return false
	}
	return true
}

// text renders a scalar field as text. Objects and arrays have no text form.
func text(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, t != ""
	case json.Number:
		return t.String(), true
	case float64, float32, int, int64, int32, bool:
		return fmt.Sprint(t), true
	default:
		return "", false
	}
}

// number coerces a raw field to a finite float64. Numeric strings are
// accepted, surrounding whitespace ignored.
func number(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case int32:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
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
