package render

import (
	"strings"
	"testing"
)

func TestTerminalPlotsWithinBounds(t *testing.T) {
	term, err := NewTerminal(10, 4, &strings.Builder{})
	if err != nil {
		t.Fatalf("new terminal: %v", err)
	}
	term.Clear(ClearColor)
	term.DrawPoints([]Vertex{
		V(2, 1, TickColor),
		V(-5, 0, TickColor),  // clipped
		V(50, 50, TickColor), // clipped
	})
	if term.glyphs[1*10+2] != '·' {
		t.Fatalf("expected point at (2,1)")
	}
}

func TestTerminalLineStripGlyphs(t *testing.T) {
	term, _ := NewTerminal(10, 4, &strings.Builder{})
	term.Clear(ClearColor)
	term.DrawLineStrip([]Vertex{V(0, 2, GridColor), V(5, 2, GridColor)})
	for x := 0; x <= 5; x++ {
		if term.glyphs[2*10+x] != '─' {
			t.Fatalf("expected horizontal glyph at x=%d, got %q", x, term.glyphs[2*10+x])
		}
	}
}

func TestTerminalPresentWritesFrame(t *testing.T) {
	var out strings.Builder
	term, _ := NewTerminal(4, 2, &out)
	term.Clear(ClearColor)
	term.DrawText(0, 0, "hi", TextColor)
	if err := term.Present(); err != nil {
		t.Fatalf("present: %v", err)
	}
	frame := out.String()
	if !strings.Contains(frame, "hi") {
		t.Fatalf("frame missing text: %q", frame)
	}
	if !strings.Contains(frame, "\x1b[") {
		t.Fatalf("frame missing ANSI codes")
	}
}

func TestTerminalZeroSizePresent(t *testing.T) {
	var out strings.Builder
	term, _ := NewTerminal(0, 0, &out)
	term.Clear(ClearColor)
	if err := term.Present(); err != nil {
		t.Fatalf("present: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("zero-size surface wrote output: %q", out.String())
	}
}

func TestSegmentGlyph(t *testing.T) {
	if segmentGlyph(1, 0) != '─' || segmentGlyph(0, 1) != '│' {
		t.Fatalf("axis glyphs wrong")
	}
	if segmentGlyph(1, 1) != '╲' || segmentGlyph(1, -1) != '╱' {
		t.Fatalf("diagonal glyphs wrong")
	}
}

func TestAnsiIndexGrayscale(t *testing.T) {
	if got := ansiIndex(RGB(0, 0, 0)); got != 232 {
		t.Fatalf("black=%d want=232", got)
	}
	if got := ansiIndex(RGB(255, 255, 255)); got != 255 {
		t.Fatalf("white=%d want=255", got)
	}
	if got := ansiIndex(RGB(255, 0, 0)); got != 16+36*5 {
		t.Fatalf("red=%d want=%d", got, 16+36*5)
	}
}
