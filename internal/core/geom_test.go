package core

import (
	"math"
	"testing"
)

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent horizontal (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent vertical (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 10, 10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 2, 2),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tt.expected)
			}
			// Intersection is symmetric
			if got := tt.b.Intersects(tt.a); got != tt.expected {
				t.Errorf("reverse Intersects() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 5, 4)

	if !r.Contains(2, 3) {
		t.Error("top-left corner should be contained")
	}
	if r.Contains(7, 3) {
		t.Error("right edge is exclusive")
	}
	if r.Contains(2, 7) {
		t.Error("bottom edge is exclusive")
	}
	if !r.Contains(4, 5) {
		t.Error("interior point should be contained")
	}
}

func TestVec2Ops(t *testing.T) {
	a := Vec2{3, 4}
	b := Vec2{-1, 2}

	if got := a.Add(b); got != (Vec2{2, 6}) {
		t.Errorf("Add() = %v", got)
	}
	if got := a.Sub(b); got != (Vec2{4, 2}) {
		t.Errorf("Sub() = %v", got)
	}
	if got := a.Scale(2); got != (Vec2{6, 8}) {
		t.Errorf("Scale() = %v", got)
	}
	if got := a.Len(); math.Abs(got-5) > 1e-9 {
		t.Errorf("Len() = %v, expected 5", got)
	}
}

func TestDist(t *testing.T) {
	if got := Dist(0, 0, 3, 4); math.Abs(got-5) > 1e-9 {
		t.Errorf("Dist() = %v, expected 5", got)
	}
	if got := Dist(1, 1, 1, 1); got != 0 {
		t.Errorf("Dist() of same point = %v, expected 0", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Errorf("Clamp(5, 0, 10) = %d", got)
	}
	if got := Clamp(-5, 0, 10); got != 0 {
		t.Errorf("Clamp(-5, 0, 10) = %d", got)
	}
	if got := Clamp(15, 0, 10); got != 10 {
		t.Errorf("Clamp(15, 0, 10) = %d", got)
	}
	if got := ClampF(1.5, 0, 1); got != 1 {
		t.Errorf("ClampF(1.5, 0, 1) = %v", got)
	}
	if got := ClampF(-0.5, 0, 1); got != 0 {
		t.Errorf("ClampF(-0.5, 0, 1) = %v", got)
	}
}
