// Package mathutil provides common mathematical utility functions.
package mathutil

import "math"

// Ratio returns part/whole, or 0 when whole is not positive.
func Ratio(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole)
}

// Clamp bounds val to [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// FloorInt truncates toward negative infinity.
func FloorInt(val float64) int {
	return int(math.Floor(val))
}

// Min returns the minimum of two int values
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two int values
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// RelativeSwing returns (max-min)/min over values, ignoring non-positive
// entries. Fewer than two usable values yield 0.
func RelativeSwing(values []int64) float64 {
	var lo, hi int64
	n := 0
	for _, v := range values {
		if v <= 0 {
			continue
		}
		if n == 0 || v < lo {
			lo = v
		}
		if n == 0 || v > hi {
			hi = v
		}
		n++
	}
	if n < 2 {
		return 0
	}
	return float64(hi-lo) / float64(lo)
}

// MeanRounded returns the mean of values rounded to the nearest integer, or 0
// for an empty slice.
func MeanRounded(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return int(math.Round(float64(sum) / float64(len(values))))
}
