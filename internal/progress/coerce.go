package progress

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var numericPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)

// Coerce converts a loosely typed attribute value into a finite number.
// Strings are read like parseFloat: leading whitespace is skipped and the
// longest numeric prefix wins, so "12.5kg" is 12.5. Values that cannot be
// read return nil rather than an error.
func Coerce(raw any) *float64 {
	var v float64

	switch val := raw.(type) {
	case nil:
		return nil
	case float64:
		v = val
	case float32:
		v = float64(val)
	case int:
		v = float64(val)
	case int8:
		v = float64(val)
	case int16:
		v = float64(val)
	case int32:
		v = float64(val)
	case int64:
		v = float64(val)
	case uint:
		v = float64(val)
	case uint8:
		v = float64(val)
	case uint16:
		v = float64(val)
	case uint32:
		v = float64(val)
	case uint64:
		v = float64(val)
	case json.Number:
		return parsePrefix(val.String())
	case string:
		return parsePrefix(val)
	case []byte:
		return parsePrefix(string(val))
	case fmt.Stringer:
		return parsePrefix(val.String())
	default:
		return nil
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func parsePrefix(s string) *float64 {
	match := numericPrefix.FindString(strings.TrimLeft(s, " \t\n\r\v\f"))
	if match == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.Replace(match, "Infinity", "Inf", 1), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
