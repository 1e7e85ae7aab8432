package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Errorf("new screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds must be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("out-of-bounds Get should return space")
	}
}

func TestScreenColors(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(3, 3, '#', ColorMagenta)
	cell := s.GetCell(3, 3)
	if cell.Rune != '#' || cell.Color != ColorMagenta {
		t.Errorf("GetCell(3, 3) = %+v, expected '#' magenta", cell)
	}

	s.Clear()
	cell = s.GetCell(3, 3)
	if cell.Rune != ' ' || cell.Color != ColorDefault {
		t.Errorf("Clear should reset colors, got %+v", cell)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)

	s.DrawText(2, 1, "hello")
	if got := strings.TrimRight(s.Row(1), " "); got != "  hello" {
		t.Errorf("Row(1) = %q", got)
	}

	// Clipped at the right edge, no panic
	s.DrawText(18, 2, "clip")
	if s.Get(19, 2) != 'l' {
		t.Errorf("Get(19, 2) = %q, expected 'l'", s.Get(19, 2))
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.Set(2, 2, 'X')

	s.Resize(20, 20)
	if s.Get(2, 2) != 'X' {
		t.Error("Resize should preserve content within old bounds")
	}

	s.Resize(3, 3)
	if s.Get(2, 2) != 'X' {
		t.Error("shrinking should keep content inside new bounds")
	}
	if s.Width() != 3 || s.Height() != 3 {
		t.Errorf("size = %dx%d, expected 3x3", s.Width(), s.Height())
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, 'a')
	s.Set(2, 1, 'b')

	expected := "a  \n  b"
	if got := s.String(); got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}
}
