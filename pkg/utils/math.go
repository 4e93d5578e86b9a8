package utils

import (
	"math"
)

// Sum calculates the sum of a slice of float64 values
func Sum(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum
}

// Mean calculates the mean of a slice of float64 values.
// An empty slice has no mean and yields NaN.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return Sum(values) / float64(len(values))
}

// Ratio returns part/whole, or NaN when whole is zero
func Ratio(part, whole int) float64 {
	if whole == 0 {
		return math.NaN()
	}
	return float64(part) / float64(whole)
}

// AlmostEqual reports whether a and b differ by at most tol
func AlmostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// ClampFloat64 clamps a float64 value between min and max
func ClampFloat64(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Round rounds a float64 to the specified number of decimal places
func Round(value float64, decimals int) float64 {
	multiplier := math.Pow(10, float64(decimals))
	return math.Round(value*multiplier) / multiplier
}
