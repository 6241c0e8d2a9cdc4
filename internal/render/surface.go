package render

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// RGB builds an opaque Color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// Vertex is a pixel-space point with a color, the unit every primitive
// batch is made of.
type Vertex struct {
	X, Y float32
	Col  Color
}

// V builds a Vertex.
func V(x, y float32, c Color) Vertex {
	return Vertex{X: x, Y: y, Col: c}
}

// Surface is the drawable backing store the scope renders into. One frame is
// a Clear, a Begin/End batch of primitives and text, and a Present. Size is
// queried at the start of a pass and stays valid for that pass.
type Surface interface {
	// Size returns the drawable dimensions in pixels. Either dimension may
	// be zero, in which case the caller must skip the frame.
	Size() (width, height int)

	Clear(c Color)

	Begin()
	DrawPoints(pts []Vertex)
	DrawLineStrip(pts []Vertex)
	DrawTriangleStrip(pts []Vertex)
	DrawText(x, y int, text string, c Color)
	End()

	// TextWidth reports the rendered width of text in pixels.
	TextWidth(text string) int

	// Present flushes the batch to the display. It returns ErrSurfaceClosed
	// when the user closed the surface.
	Present() error

	Close() error
}
