package rofl

import (
	stdjson "encoding/json"
	"math"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// toFloat coerces a decoded JSON value to a float. Strings are parsed after
// trimming surrounding space.
func toFloat(v any) (float64, bool) {
	var (
		f   float64
		err error
	)
	switch v := v.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case stdjson.Number:
		f, err = v.Float64()
	case jsoniter.Number:
		f, err = v.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, false
	}
	if err != nil {
		return 0, false
	}
	return f, true
}

// toInt coerces a decoded JSON value to an integer. Integer literals are read
// exactly; anything else is truncated. NaN and values outside int64 fail.
func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case stdjson.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
	case jsoniter.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return i, true
		}
	}

	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// toText coerces a string or a number literal to text.
func toText(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case stdjson.Number:
		return v.String(), true
	case jsoniter.Number:
		return v.String(), true
	default:
		return "", false
	}
}
