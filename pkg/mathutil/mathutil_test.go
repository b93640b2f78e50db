package mathutil

import (
	"math"
	"testing"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		name     string
		part     int64
		whole    int64
		expected float64
	}{
		{"Simple share", 50000, 750000, 0.0667},
		{"Whole share", 100, 100, 1.0},
		{"Zero whole", 10, 0, 0},
		{"Negative whole", 10, -5, 0},
		{"Negative part", -20, 100, -0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Ratio(tt.part, tt.whole)
			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("Ratio(%d, %d) = %v, expected %v", tt.part, tt.whole, result, tt.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"Below range", -12, 0},
		{"Inside range", 44, 44},
		{"At upper bound", 100, 100},
		{"Above range", 130, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Clamp(tt.input, 0, 100); result != tt.expected {
				t.Errorf("Clamp(%d) = %d, expected %d", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFloorInt(t *testing.T) {
	if FloorInt(44.99) != 44 {
		t.Errorf("FloorInt(44.99) = %d, expected 44", FloorInt(44.99))
	}
	if FloorInt(-0.5) != -1 {
		t.Errorf("FloorInt(-0.5) = %d, expected -1", FloorInt(-0.5))
	}
}

func TestRelativeSwing(t *testing.T) {
	tests := []struct {
		name     string
		values   []int64
		expected float64
	}{
		{"No values", nil, 0},
		{"Single value", []int64{500000}, 0},
		{"Flat prices", []int64{500000, 500000, 500000}, 0},
		{"Rising prices", []int64{500000, 520000, 560000}, 0.12},
		{"Ignores missing entries", []int64{0, 400000, 440000}, 0.10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RelativeSwing(tt.values)
			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("RelativeSwing(%v) = %v, expected %v", tt.values, result, tt.expected)
			}
		})
	}
}

func TestMeanRounded(t *testing.T) {
	tests := []struct {
		name     string
		values   []int
		expected int
	}{
		{"Empty", nil, 0},
		{"Single", []int{44}, 44},
		{"Rounds half up", []int{44, 45}, 45},
		{"Rounds down", []int{40, 41, 41}, 41},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := MeanRounded(tt.values); result != tt.expected {
				t.Errorf("MeanRounded(%v) = %d, expected %d", tt.values, result, tt.expected)
			}
		})
	}
}

func TestMinMax(t *testing.T) {
	if Min(3, 7) != 3 || Min(7, 3) != 3 {
		t.Errorf("Min returned the wrong value")
	}
	if Max(3, 7) != 7 || Max(7, 3) != 7 {
		t.Errorf("Max returned the wrong value")
	}
}
