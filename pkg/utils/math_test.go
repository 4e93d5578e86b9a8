package utils

import (
	"math"
	"testing"
)

func TestSumAndMean(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		sum     float64
		mean    float64
		meanNaN bool
	}{
		{"empty", nil, 0, 0, true},
		{"single", []float64{1}, 1, 1, false},
		{"binary outcome", []float64{1, 0, 1, 1}, 3, 0.75, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sum(tt.values); got != tt.sum {
				t.Errorf("Sum(%v) = %f, expected %f", tt.values, got, tt.sum)
			}
			got := Mean(tt.values)
			if tt.meanNaN {
				if !math.IsNaN(got) {
					t.Errorf("Mean(%v) = %f, expected NaN", tt.values, got)
				}
				return
			}
			if got != tt.mean {
				t.Errorf("Mean(%v) = %f, expected %f", tt.values, got, tt.mean)
			}
		})
	}
}

func TestRatio(t *testing.T) {
	if got := Ratio(1, 4); got != 0.25 {
		t.Errorf("Ratio(1, 4) = %f, expected 0.25", got)
	}
	if got := Ratio(3, 3); got != 1 {
		t.Errorf("Ratio(3, 3) = %f, expected 1", got)
	}
	if got := Ratio(0, 0); !math.IsNaN(got) {
		t.Errorf("Ratio(0, 0) = %f, expected NaN", got)
	}
}

func TestAlmostEqual(t *testing.T) {
	if !AlmostEqual(0.1+0.2, 0.3, 1e-9) {
		t.Error("expected 0.1+0.2 to be almost equal to 0.3")
	}
	if AlmostEqual(1, 1.001, 1e-9) {
		t.Error("expected 1 and 1.001 to differ at 1e-9")
	}
}

func TestClampFloat64(t *testing.T) {
	tests := []struct {
		value, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tt := range tests {
		result := ClampFloat64(tt.value, tt.min, tt.max)
		if result != tt.expected {
			t.Errorf("ClampFloat64(%f, %f, %f) = %f, expected %f", tt.value, tt.min, tt.max, result, tt.expected)
		}
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		value    float64
		decimals int
		expected float64
	}{
		{0.647058823, 4, 0.6471},
		{0.5, 0, 1},
		{1.0 / 3.0, 2, 0.33},
	}

	for _, tt := range tests {
		result := Round(tt.value, tt.decimals)
		if result != tt.expected {
			t.Errorf("Round(%f, %d) = %f, expected %f", tt.value, tt.decimals, result, tt.expected)
		}
	}
}
