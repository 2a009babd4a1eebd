package utils

import "math"

// SafeDiv divides a by b, returning 0 for a zero denominator instead of
// Inf/NaN.
func SafeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// PercentChange calculates percentage change between current and previous
// values. Both zero means no change; growth from zero is reported as 100.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return ((current - previous) / previous) * 100
}

// Finite reports whether f is a usable number.
func Finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Round2 rounds to two decimal places, the display precision used for
// percentages.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
