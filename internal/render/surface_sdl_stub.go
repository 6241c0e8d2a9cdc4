//go:build !sdl

package render

import "errors"

// SDL is unavailable in builds without the sdl tag.
type SDL struct{}

func NewSDL(width, height int, title string) (*SDL, error) {
	return nil, &SetupError{
		Op:   "init video",
		Hint: "rebuild with -tags sdl",
		Err:  errors.New("SDL backend not enabled"),
	}
}

func (s *SDL) SetPointerHandler(fn func(x, y int)) {}
func (s *SDL) SetClickHandler(fn func(x, y int))   {}
func (s *SDL) Size() (int, int)                    { return 0, 0 }
func (s *SDL) Clear(c Color)                       {}
func (s *SDL) Begin()                              {}
func (s *SDL) DrawPoints(pts []Vertex)             {}
func (s *SDL) DrawLineStrip(pts []Vertex)          {}
func (s *SDL) DrawTriangleStrip(pts []Vertex)      {}
func (s *SDL) DrawText(x, y int, text string, c Color) {}
func (s *SDL) TextWidth(text string) int           { return 0 }
func (s *SDL) End()                                {}
func (s *SDL) Present() error                      { return ErrSurfaceClosed }
func (s *SDL) Close() error                        { return nil }

// SupportsSDL reports whether this build carries the SDL backend.
func SupportsSDL() bool { return false }
