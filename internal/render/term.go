package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Terminal rasterizes scope geometry into an ANSI 256-color cell grid, one
// cell per pixel. It lets the viewer run without any graphics runtime.
type Terminal struct {
	width  int
	height int
	glyphs []rune
	colors []int
	out    io.Writer

	batching bool
	builder  strings.Builder
}

var (
	resetANSI       = "\x1b[0m"
	precomputedANSI [256]string
)

func init() {
	for i := range precomputedANSI {
		precomputedANSI[i] = "\x1b[38;5;" + strconv.Itoa(i) + "m"
	}
}

// NewTerminal creates a terminal surface of the given size writing frames to
// out (os.Stdout when nil).
func NewTerminal(width, height int, out io.Writer) (*Terminal, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid dimensions: width=%d height=%d", width, height)
	}
	if out == nil {
		out = os.Stdout
	}
	t := &Terminal{out: out}
	t.Resize(width, height)
	return t, nil
}

// Resize updates the cell grid dimensions. Cells are reallocated lazily on
// the next Clear.
func (t *Terminal) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	t.width = width
	t.height = height
}

func (t *Terminal) Size() (int, int) { return t.width, t.height }

func (t *Terminal) Clear(c Color) {
	n := t.width * t.height
	if len(t.glyphs) != n {
		t.glyphs = make([]rune, n)
		t.colors = make([]int, n)
	}
	for i := range t.glyphs {
		t.glyphs[i] = ' '
		t.colors[i] = 15
	}
}

func (t *Terminal) Begin() { t.batching = true }
func (t *Terminal) End()   { t.batching = false }

func (t *Terminal) DrawPoints(pts []Vertex) {
	for _, p := range pts {
		t.plot(int(p.X), int(p.Y), '·', p.Col)
	}
}

func (t *Terminal) DrawLineStrip(pts []Vertex) {
	for i := 1; i < len(pts); i++ {
		t.segment(pts[i-1], pts[i])
	}
	if len(pts) == 1 {
		t.plot(int(pts[0].X), int(pts[0].Y), '─', pts[0].Col)
	}
}

// DrawTriangleStrip fills the strip's bounding box. The scope only submits
// axis-aligned backdrop strips, for which the bounding box is exact.
func (t *Terminal) DrawTriangleStrip(pts []Vertex) {
	if len(pts) < 3 {
		return
	}
	minX, minY := math.MaxFloat32, math.MaxFloat32
	maxX, maxY := -math.MaxFloat32, -math.MaxFloat32
	for _, p := range pts {
		minX = math.Min(minX, float64(p.X))
		minY = math.Min(minY, float64(p.Y))
		maxX = math.Max(maxX, float64(p.X))
		maxY = math.Max(maxY, float64(p.Y))
	}
	c := pts[0].Col
	for y := int(minY); y <= int(maxY); y++ {
		for x := int(minX); x <= int(maxX); x++ {
			t.plot(x, y, ' ', c)
		}
	}
}

func (t *Terminal) DrawText(x, y int, text string, c Color) {
	for _, r := range text {
		t.plot(x, y, r, c)
		x++
	}
}

func (t *Terminal) TextWidth(text string) int {
	return len([]rune(text))
}

// Present writes the frame to the output, reusing the home-cursor escape so
// successive frames overdraw in place.
func (t *Terminal) Present() error {
	if t.width <= 0 || t.height <= 0 {
		return nil
	}
	b := &t.builder
	b.Reset()
	b.Grow(t.width*t.height + t.height*8)
	b.WriteString("\x1b[H")
	for y := 0; y < t.height; y++ {
		lastColor := -1
		row := y * t.width
		for x := 0; x < t.width; x++ {
			if ci := t.colors[row+x]; ci != lastColor {
				b.WriteString(colorCode(ci))
				lastColor = ci
			}
			b.WriteRune(t.glyphs[row+x])
		}
		b.WriteString(resetANSI)
		if y+1 < t.height {
			b.WriteByte('\n')
		}
	}
	_, err := io.WriteString(t.out, b.String())
	return err
}

func (t *Terminal) Close() error { return nil }

func (t *Terminal) plot(x, y int, glyph rune, c Color) {
	if x < 0 || y < 0 || x >= t.width || y >= t.height {
		return
	}
	t.glyphs[y*t.width+x] = glyph
	t.colors[y*t.width+x] = ansiIndex(c)
}

// segment draws a Bresenham line between two vertices, picking a glyph from
// the segment direction.
func (t *Terminal) segment(a, b Vertex) {
	x0, y0 := int(a.X), int(a.Y)
	x1, y1 := int(b.X), int(b.Y)
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	glyph := segmentGlyph(x1-x0, y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	errAcc := dx + dy
	for {
		t.plot(x0, y0, glyph, b.Col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * errAcc
		if e2 >= dy {
			errAcc += dy
			x0 += sx
		}
		if e2 <= dx {
			errAcc += dx
			y0 += sy
		}
	}
}

func segmentGlyph(dx, dy int) rune {
	switch {
	case dy == 0:
		return '─'
	case dx == 0:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

func colorCode(index int) string {
	if index < 0 {
		index = 0
	} else if index >= len(precomputedANSI) {
		index = len(precomputedANSI) - 1
	}
	return precomputedANSI[index]
}

// ansiIndex maps an RGB color onto the xterm 256-color cube, falling back to
// the grayscale ramp for near-gray colors.
func ansiIndex(c Color) int {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	if math.Abs(r-g) < 0.02 && math.Abs(g-b) < 0.02 {
		gray := int(math.Round(r * 23))
		if gray < 0 {
			gray = 0
		} else if gray > 23 {
			gray = 23
		}
		return 232 + gray
	}

	ri := cube5(r)
	gi := cube5(g)
	bi := cube5(b)
	return 16 + 36*ri + 6*gi + bi
}

func cube5(v float64) int {
	i := int(v*5 + 0.5)
	if i < 0 {
		return 0
	}
	if i > 5 {
		return 5
	}
	return i
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
