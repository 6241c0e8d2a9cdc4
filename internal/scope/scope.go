// Package scope implements the windowing, normalization and rasterization
// core of the waveform viewer: it maps a scroll position to a visible window
// of the sample sequence, maps sample values to pixel coordinates per
// channel, and keeps the scroll widget, window and cursor index consistent
// while the view resizes and the data grows.
package scope

import (
	"fmt"
	"log"
	"os"

	"tracescope/internal/render"
)

// Config is the scope's host-supplied configuration, set before or between
// render passes.
type Config struct {
	Channels         []Channel
	SamplesPerSecond int
	HorizontalLines  int
	Margin           int
	Title            string
	TimeString       string
	LabelSpacing     int
	TabSpacing       int
	Log              *log.Logger
}

// Scope renders an oscilloscope-style view of a host-owned sample buffer.
// Execution is single-threaded and paint-driven: the host serializes buffer
// appends, input and resizes relative to render passes; a pass snapshots the
// buffer length and geometry at its start and uses that snapshot throughout.
type Scope struct {
	cfg    Config
	buf    *Buffer
	norm   *Normalizer
	vp     *Viewport
	traces Traces
	log    *log.Logger

	onScroll func(seconds float64, committed bool)
}

// New validates the configuration and creates a scope over buf.
func New(cfg Config, buf *Buffer) (*Scope, error) {
	if len(cfg.Channels) == 0 {
		return nil, fmt.Errorf("scope: no channels configured")
	}
	if cfg.SamplesPerSecond <= 0 {
		return nil, fmt.Errorf("scope: samples per second must be positive (got %d)", cfg.SamplesPerSecond)
	}
	norm, err := NewNormalizer(cfg.Channels)
	if err != nil {
		return nil, err
	}
	if cfg.Margin <= 0 {
		cfg.Margin = 10
	}
	if cfg.HorizontalLines < 0 {
		cfg.HorizontalLines = 0
	}
	if cfg.LabelSpacing <= 0 {
		cfg.LabelSpacing = 10
	}
	if cfg.TabSpacing <= 0 {
		cfg.TabSpacing = 3 * cfg.LabelSpacing
	}
	if cfg.Log == nil {
		cfg.Log = log.New(os.Stderr, "", log.LstdFlags)
	}
	if buf == nil {
		buf = NewBuffer(0)
	}
	return &Scope{
		cfg:  cfg,
		buf:  buf,
		norm: norm,
		vp:   NewViewport(cfg.SamplesPerSecond, cfg.Margin),
		log:  cfg.Log,
	}, nil
}

// Buffer returns the host-owned sample buffer.
func (s *Scope) Buffer() *Buffer { return s.buf }

// Viewport returns the scroll/window state.
func (s *Scope) Viewport() *Viewport { return s.vp }

// Channels returns the channel configuration.
func (s *Scope) Channels() []Channel { return s.cfg.Channels }

// SetTimeString updates the time label shown in the readout.
func (s *Scope) SetTimeString(text string) { s.cfg.TimeString = text }

// OnScroll registers the notification fired when the scroll position
// changes. committed is false while a drag is in progress and true once the
// value is finalized.
func (s *Scope) OnScroll(fn func(seconds float64, committed bool)) { s.onScroll = fn }

// ScrollChanged applies a scrollbar-originated value change, e.g. from the
// widget's drag events.
func (s *Scope) ScrollChanged(value int, dragging bool) {
	s.vp.SetDragging(dragging)
	s.vp.SetValue(value)
	if s.onScroll != nil {
		s.onScroll(s.vp.TimePosition(), !dragging)
	}
}

// ScrollBy moves the scroll value by delta seconds, as keyboard and wheel
// input do.
func (s *Scope) ScrollBy(delta int) {
	s.vp.SetValue(s.vp.Value() + delta)
	if s.onScroll != nil {
		s.onScroll(s.vp.TimePosition(), true)
	}
}

// SetTimePosition scrolls so the given time position (seconds) is visible
// with the centering policy of the viewport. Ignored while the scrollbar is
// mid-drag.
func (s *Scope) SetTimePosition(seconds float64) {
	s.vp.SetTimePosition(seconds, s.buf.Len())
}

// TimePosition returns the time position currently under the cursor.
func (s *Scope) TimePosition() float64 { return s.vp.TimePosition() }

// CursorIndex returns the sample index under the cursor.
func (s *Scope) CursorIndex() int { return s.vp.CursorIndex(s.buf.Len()) }

// SetCursorIndex moves the cursor to a sample index within the visible
// window.
func (s *Scope) SetCursorIndex(i int) {
	start, count := s.vp.Window(s.buf.Len())
	x := i - start + s.cfg.Margin + 2 + (s.vp.WindowSamples() - count)
	s.vp.PointerMoved(x, s.buf.Len())
}

// PointerMoved translates a pointer position in local pixel coordinates into
// a cursor update. The host re-exposes the event unchanged to its own
// listeners.
func (s *Scope) PointerMoved(x, y int) {
	s.vp.PointerMoved(x, s.buf.Len())
}

// TooltipText formats the tooltip for the current scroll position.
func (s *Scope) TooltipText() string {
	return fmt.Sprintf("t=%.2fs", s.vp.TimePosition())
}

// Readout returns the formatted cursor readout labels for the current
// frame, measured with the surface's text metrics.
func (s *Scope) Readout(measure func(string) int) []Label {
	return buildReadout(s.buf, s.cfg.Channels, s.CursorIndex(), readoutSpec{
		title:      s.cfg.Title,
		timeText:   s.cfg.TimeString,
		spacing:    s.cfg.LabelSpacing,
		tabSpacing: s.cfg.TabSpacing,
		margin:     s.cfg.Margin,
	}, measure)
}

// Render runs one synchronous pass: grid, waveform traces, then the textual
// overlay, presented at the end. A zero-sized drawable suppresses the pass
// entirely without mutating cursor or scroll state.
func (s *Scope) Render(dst render.Surface) error {
	width, height := dst.Size()
	if width <= 0 || height <= 0 {
		return nil
	}

	// consistent snapshot for the whole pass
	bufLen := s.buf.Len()
	s.vp.Resize(width, height)
	s.vp.SetChannels(len(s.cfg.Channels))
	s.vp.UpdateRange(bufLen)
	start, count := s.vp.Window(bufLen)

	grid := GridSpec{
		Width:           width,
		Height:          height,
		Margin:          s.cfg.Margin,
		HorizontalLines: s.cfg.HorizontalLines,
		Backdrop:        render.BackdropColor,
		Border:          render.BorderColor,
		Tick:            render.TickColor,
		Line:            render.GridColor,
		Highlight:       render.HighlightColor,
	}.Rasterize()

	traces, n := s.traces.Rasterize(s.buf, s.norm, s.cfg.Channels, s.vp, start, count)

	dst.Clear(render.ClearColor)
	dst.Begin()
	dst.DrawTriangleStrip(grid.Backdrop)
	for _, line := range grid.Lines {
		dst.DrawLineStrip(line[:])
	}
	dst.DrawPoints(grid.Ticks)
	dst.DrawLineStrip(grid.Border)
	for _, trace := range traces {
		if n > 1 {
			dst.DrawLineStrip(trace[:n])
		} else if n == 1 {
			dst.DrawPoints(trace[:n])
		}
	}
	for _, label := range s.Readout(dst.TextWidth) {
		dst.DrawText(label.X, 0, label.Text, label.Col)
	}
	dst.End()
	return dst.Present()
}
