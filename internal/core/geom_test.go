package core

import "testing"

func TestCircleOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Circle
		expected bool
	}{
		{
			name:     "same center",
			a:        Circle{X: 0, Y: 0, R: 0.06},
			b:        Circle{X: 0, Y: 0, R: 0.05},
			expected: true,
		},
		{
			name:     "rabbit over carrot",
			a:        Circle{X: -0.7, Y: -0.7, R: 0.06},
			b:        Circle{X: -0.7, Y: -0.65, R: 0.05},
			expected: true,
		},
		{
			name:     "far apart horizontally",
			a:        Circle{X: -0.7, Y: -0.7, R: 0.06},
			b:        Circle{X: 0.5, Y: -0.65, R: 0.07},
			expected: false,
		},
		{
			name:     "rabbit above obstacle",
			a:        Circle{X: -0.7, Y: -0.3, R: 0.06},
			b:        Circle{X: -0.7, Y: -0.65, R: 0.07},
			expected: false,
		},
		{
			name:     "touching is not overlapping",
			a:        Circle{X: 0, Y: 0, R: 1},
			b:        Circle{X: 2, Y: 0, R: 1},
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.a.Overlaps(tc.b)
			if result != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", result, tc.expected)
			}
			// Also test symmetry
			resultReverse := tc.b.Overlaps(tc.a)
			if resultReverse != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestWithinBand(t *testing.T) {
	tests := []struct {
		name         string
		x, center, h float64
		expected     bool
	}{
		{"center", 1, 1, 0.5, true},
		{"inside left", 0.6, 1, 0.5, true},
		{"left edge (exclusive)", 0.5, 1, 0.5, false},
		{"right edge (exclusive)", 1.5, 1, 0.5, false},
		{"outside", 3, 1, 0.5, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := WithinBand(tc.x, tc.center, tc.h); got != tc.expected {
				t.Errorf("WithinBand(%v, %v, %v) = %v, expected %v", tc.x, tc.center, tc.h, got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}

	if r.Right() != 30 || r.Bottom() != 25 {
		t.Errorf("Right/Bottom = %d/%d, expected 30/25", r.Right(), r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{0.5, -1.0, 1.0, 0.5},
		{-1.5, -1.0, 1.0, -1.0},
		{1.5, -1.0, 1.0, 1.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}
