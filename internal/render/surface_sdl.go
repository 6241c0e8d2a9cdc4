//go:build sdl

package render

import (
	"strings"

	"github.com/veandco/go-sdl2/sdl"
)

// SDL is a Surface backed by an SDL2 window and accelerated renderer.
// Resources are created lazily and recreated whenever the window size goes
// stale or the device reports a lost state, so a resize never surfaces as an
// error to the caller.
type SDL struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	width    int32
	height   int32
	title    string

	texts     []string
	lastTitle string

	onPointer func(x, y int)
	onClick   func(x, y int)
}

// NewSDL initializes the SDL video subsystem and opens a resizable window.
// A missing runtime or display is reported as a SetupError.
func NewSDL(width, height int, title string) (*SDL, error) {
	if err := sdl.InitSubSystem(sdl.INIT_VIDEO); err != nil {
		return nil, &SetupError{
			Op:   "init video",
			Hint: "install the SDL2 runtime (libsdl2) and make sure a display is available",
			Err:  err,
		}
	}
	s := &SDL{width: int32(width), height: int32(height), title: title}
	if err := s.ensureResources(); err != nil {
		sdl.QuitSubSystem(sdl.INIT_VIDEO)
		return nil, err
	}
	return s, nil
}

// SetPointerHandler registers the callback invoked on pointer motion, in
// local pixel coordinates.
func (s *SDL) SetPointerHandler(fn func(x, y int)) { s.onPointer = fn }

// SetClickHandler registers the callback invoked on pointer press.
func (s *SDL) SetClickHandler(fn func(x, y int)) { s.onClick = fn }

func (s *SDL) ensureResources() error {
	if s.window == nil {
		window, err := sdl.CreateWindow(
			s.title,
			sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
			s.width, s.height,
			sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE,
		)
		if err != nil {
			return &SetupError{Op: "create window", Hint: "no display available", Err: err}
		}
		s.window = window
	}
	if s.renderer == nil {
		renderer, err := sdl.CreateRenderer(s.window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
		if err != nil {
			renderer, err = sdl.CreateRenderer(s.window, -1, sdl.RENDERER_SOFTWARE)
			if err != nil {
				return &SetupError{Op: "create renderer", Hint: "no usable SDL render driver", Err: err}
			}
		}
		s.renderer = renderer
	}
	return nil
}

// recreate tears the renderer down and builds it again, the local recovery
// path for a lost device.
func (s *SDL) recreate() error {
	if s.renderer != nil {
		_ = s.renderer.Destroy()
		s.renderer = nil
	}
	return s.ensureResources()
}

func (s *SDL) Size() (int, int) {
	if s.window == nil {
		return 0, 0
	}
	w, h := s.window.GetSize()
	s.width, s.height = w, h
	return int(w), int(h)
}

func (s *SDL) Clear(c Color) {
	if s.renderer == nil {
		return
	}
	_ = s.renderer.SetDrawColor(c.R, c.G, c.B, c.A)
	if err := s.renderer.Clear(); err != nil {
		if s.recreate() == nil {
			_ = s.renderer.SetDrawColor(c.R, c.G, c.B, c.A)
			_ = s.renderer.Clear()
		}
	}
}

func (s *SDL) Begin() {
	s.texts = s.texts[:0]
}

func (s *SDL) DrawPoints(pts []Vertex) {
	if s.renderer == nil || len(pts) == 0 {
		return
	}
	// batch contiguous same-color runs into one call
	start := 0
	for i := 1; i <= len(pts); i++ {
		if i < len(pts) && pts[i].Col == pts[start].Col {
			continue
		}
		c := pts[start].Col
		_ = s.renderer.SetDrawColor(c.R, c.G, c.B, c.A)
		run := make([]sdl.Point, i-start)
		for j := start; j < i; j++ {
			run[j-start] = sdl.Point{X: int32(pts[j].X), Y: int32(pts[j].Y)}
		}
		_ = s.renderer.DrawPoints(run)
		start = i
	}
}

func (s *SDL) DrawLineStrip(pts []Vertex) {
	if s.renderer == nil || len(pts) < 2 {
		return
	}
	c := pts[0].Col
	_ = s.renderer.SetDrawColor(c.R, c.G, c.B, c.A)
	line := make([]sdl.Point, len(pts))
	for i, p := range pts {
		line[i] = sdl.Point{X: int32(p.X), Y: int32(p.Y)}
	}
	_ = s.renderer.DrawLines(line)
}

func (s *SDL) DrawTriangleStrip(pts []Vertex) {
	if s.renderer == nil || len(pts) < 3 {
		return
	}
	verts := make([]sdl.Vertex, len(pts))
	for i, p := range pts {
		verts[i] = sdl.Vertex{
			Position: sdl.FPoint{X: p.X, Y: p.Y},
			Color:    sdl.Color{R: p.Col.R, G: p.Col.G, B: p.Col.B, A: p.Col.A},
		}
	}
	indices := make([]int32, 0, 3*(len(pts)-2))
	for i := 0; i+2 < len(pts); i++ {
		indices = append(indices, int32(i), int32(i+1), int32(i+2))
	}
	_ = s.renderer.RenderGeometry(nil, verts, indices)
}

// DrawText accumulates the frame's text. SDL has no built-in font, so the
// readout is mirrored into the window title at Present.
func (s *SDL) DrawText(x, y int, text string, c Color) {
	if text != "" {
		s.texts = append(s.texts, text)
	}
}

func (s *SDL) TextWidth(text string) int {
	return 8 * len([]rune(text))
}

func (s *SDL) End() {}

func (s *SDL) Present() error {
	if s.renderer == nil {
		return nil
	}
	if title := strings.Join(s.texts, "  "); title != "" && title != s.lastTitle && s.window != nil {
		s.window.SetTitle(title)
		s.lastTitle = title
	}
	s.renderer.Present()
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			return ErrSurfaceClosed
		case *sdl.MouseMotionEvent:
			if s.onPointer != nil {
				s.onPointer(int(ev.X), int(ev.Y))
			}
		case *sdl.MouseButtonEvent:
			if ev.State == sdl.PRESSED && s.onClick != nil {
				s.onClick(int(ev.X), int(ev.Y))
			}
		}
	}
	return nil
}

func (s *SDL) Close() error {
	if s.renderer != nil {
		_ = s.renderer.Destroy()
		s.renderer = nil
	}
	if s.window != nil {
		_ = s.window.Destroy()
		s.window = nil
	}
	sdl.QuitSubSystem(sdl.INIT_VIDEO)
	return nil
}

// SupportsSDL reports whether this build carries the SDL backend.
func SupportsSDL() bool { return true }
