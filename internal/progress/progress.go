// Package progress turns raw readings into the classified, clamped
// percentage a progress bar displays.
package progress

import (
	"math"
	"strconv"
)

// InvalidLabel is shown when the maximum bound makes the ratio meaningless.
const InvalidLabel = "Invalid"

// MaxFill is the widest fill a bar can show.
const MaxFill = 100

// Result is the display classification of a single reading.
type Result struct {
	// Percent is the signed, rounded, unclamped ratio.
	Percent float64
	// Fill is the visual width in percent, always within [0, MaxFill].
	Fill        int
	Label       string
	Invalid     bool
	Empty       bool
	Negative    bool
	LowContrast bool
}

// Compute classifies value against maximum. A nil or non-finite value is
// empty, a maximum below 1 is invalid, and any other reading is rounded
// to a whole percent. The fill is clamped while the label keeps the true
// ratio, so 200 of 100 fills the track and reads "200%".
func Compute(value *float64, maximum float64, colorSwitch int) Result {
	var res Result

	switch {
	case math.IsNaN(maximum) || maximum < 1:
		res.Invalid = true
		res.Label = InvalidLabel
	case value == nil || math.IsNaN(*value) || math.IsInf(*value, 0):
		res.Empty = true
	default:
		res.Percent = Round(*value / maximum * 100)
		res.Fill = fill(res.Percent)
		res.Negative = res.Percent < 0
		res.Label = FormatPercent(res.Percent)
	}

	res.LowContrast = math.Abs(res.Percent) < float64(colorSwitch)
	return res
}

// ClampLegacy applies the older clamp-both policy where the label is
// bounded to [0, 100] together with the fill. Invalid and empty results
// pass through untouched.
func ClampLegacy(res Result) Result {
	if res.Invalid || res.Empty {
		return res
	}
	clamped := math.Min(MaxFill, math.Max(0, res.Percent))
	res.Percent = clamped
	res.Fill = int(clamped)
	res.Negative = false
	res.Label = FormatPercent(clamped)
	return res
}

// Round rounds half up toward positive infinity. The fractional part is
// compared directly since x+0.5 can itself round up.
func Round(x float64) float64 {
	f := math.Floor(x)
	if x-f >= 0.5 {
		f++
	}
	return f
}

// FormatPercent renders a whole percentage with its sign, e.g. "-20%".
// Overflowed ratios read "Infinity%" and very large ones use an exponent.
func FormatPercent(p float64) string {
	switch {
	case p == 0:
		// avoid "-0%"
		p = 0
	case math.IsInf(p, 1):
		return "Infinity%"
	case math.IsInf(p, -1):
		return "-Infinity%"
	case math.Abs(p) >= 1e21:
		return strconv.FormatFloat(p, 'g', -1, 64) + "%"
	}
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}

func fill(percent float64) int {
	abs := math.Abs(percent)
	if abs >= MaxFill {
		return MaxFill
	}
	return int(abs)
}
