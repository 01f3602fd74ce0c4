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
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("new screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 4)

	s.SetColored(3, 1, '*', ColorRed)
	if c := s.GetCell(3, 1); c.Rune != '*' || c.Color != ColorRed {
		t.Errorf("GetCell(3, 1) = %+v, expected red '*'", c)
	}

	s.SetColor(3, 1, ColorBlue)
	if c := s.GetCell(3, 1); c.Rune != '*' || c.Color != ColorBlue {
		t.Errorf("SetColor should keep the rune, got %+v", c)
	}

	s.Set(3, 1, 'x')
	if c := s.GetCell(3, 1); c.Color != ColorDefault {
		t.Errorf("Set should reset the color, got %v", c.Color)
	}

	// Out of bounds is silent
	s.SetColored(-1, 0, 'A', ColorRed)
	s.SetColor(10, 0, ColorRed)
	if s.Get(-1, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(8, 2)
	s.DrawTextColored(1, 0, "mine", ColorYellow)

	if got := s.Row(0); got != " mine   " {
		t.Errorf("Row(0) = %q", got)
	}
	for x := 1; x <= 4; x++ {
		if s.GetCell(x, 0).Color != ColorYellow {
			t.Errorf("expected yellow at x=%d", x)
		}
	}

	// Clipped at the right edge
	s.DrawText(6, 1, "flag")
	if got := s.Row(1); got != "      fl" {
		t.Errorf("Row(1) = %q", got)
	}
}

func TestScreenDrawTextCenteredCountsRunes(t *testing.T) {
	s := NewScreen(9, 1)
	s.DrawTextCentered(0, "⚑⚑⚑")
	if got := s.Row(0); got != "   ⚑⚑⚑   " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(NewRect(0, 0, 4, 3), ColorGray)

	expected := "┌──┐\n│  │\n└──┘"
	if got := s.String(); got != expected {
		t.Errorf("DrawBox:\n%s\nexpected:\n%s", got, expected)
	}
	if s.GetCell(0, 0).Color != ColorGray {
		t.Error("box outline should carry its color")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 2)
	s.SetColored(1, 1, 'Q', ColorMagenta)

	s.Resize(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("Resize gave %dx%d", s.Width(), s.Height())
	}
	if c := s.GetCell(1, 1); c.Rune != 'Q' || c.Color != ColorMagenta {
		t.Errorf("content lost on resize: %+v", c)
	}

	s.Resize(1, 1)
	if got := s.String(); got != " " {
		t.Errorf("shrunk screen = %q", got)
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Fill('#')
	if got := s.String(); got != "###\n###" {
		t.Errorf("String() = %q", got)
	}
	if strings.Count(s.String(), "\n") != 1 {
		t.Error("rows should be newline separated")
	}
}
