package scope

// Viewport keeps the scroll widget, the visible window of the sample buffer
// and the cursor position mutually consistent as the view resizes and the
// data grows.
//
// The scroll value is in whole seconds, mirroring native scrollbar range
// semantics: the effective travel is maximum + 1 - largeChange, where
// largeChange is the seconds of data visible at once. Window geometry is
// cached and recomputed only when the generation counter says it is stale
// (resize or channel-count change), never per frame.
type Viewport struct {
	margin int
	sps    int

	width    int
	height   int
	channels int

	windowSamples int
	smallStep     int
	largeStep     int

	value        int
	maximum      int
	cursorPixel  int
	dragging     bool
	scrolledBack bool

	generation uint64
	cachedGen  uint64
}

// NewViewport creates a viewport for data arriving at samplesPerSecond with
// the given plot margin in pixels.
func NewViewport(samplesPerSecond, margin int) *Viewport {
	if samplesPerSecond <= 0 {
		samplesPerSecond = 1
	}
	if margin < 0 {
		margin = 0
	}
	return &Viewport{
		margin:     margin,
		sps:        samplesPerSecond,
		largeStep:  1,
		smallStep:  1,
		generation: 1,
	}
}

// Resize records the drawable size, invalidating the cached geometry when
// the width changed.
func (v *Viewport) Resize(width, height int) {
	if width == v.width && height == v.height {
		return
	}
	if width != v.width {
		v.generation++
	}
	v.width = width
	v.height = height
}

// SetChannels records the channel count, invalidating cached geometry when
// it changed.
func (v *Viewport) SetChannels(n int) {
	if n == v.channels {
		return
	}
	v.channels = n
	v.generation++
}

// ensure recomputes the window width and scroll steps when the cached
// generation is stale.
func (v *Viewport) ensure() {
	if v.cachedGen == v.generation {
		return
	}
	v.windowSamples = v.width - 2*v.margin - 4
	if v.windowSamples < 0 {
		v.windowSamples = 0
	}
	v.largeStep = v.windowSamples / v.sps
	if v.largeStep < 1 {
		v.largeStep = 1
	}
	v.smallStep = v.largeStep / 10
	if v.smallStep < 1 {
		v.smallStep = 1
	}
	v.cachedGen = v.generation
}

// WindowSamples returns the number of samples the plot can show at once.
func (v *Viewport) WindowSamples() int {
	v.ensure()
	return v.windowSamples
}

// Steps returns the small and large scroll increments in seconds.
func (v *Viewport) Steps() (small, large int) {
	v.ensure()
	return v.smallStep, v.largeStep
}

// SetMaximum sets the scrollbar maximum in seconds.
func (v *Viewport) SetMaximum(m int) {
	if m < 0 {
		m = 0
	}
	v.maximum = m
}

// Maximum returns the scrollbar maximum in seconds.
func (v *Viewport) Maximum() int { return v.maximum }

// Value returns the current scrollbar value in seconds.
func (v *Viewport) Value() int { return v.value }

// effectiveMax is the scrollbar's usable travel: maximum + 1 - largeChange,
// clamped at zero.
func (v *Viewport) effectiveMax() int {
	v.ensure()
	m := v.maximum + 1 - v.largeStep
	if m < 0 {
		m = 0
	}
	return m
}

// EffectiveMax exposes the clamped scroll travel for widgets and tests.
func (v *Viewport) EffectiveMax() int { return v.effectiveMax() }

// SetValue applies a scrollbar-originated value, clamped to the effective
// travel. Scrolling anywhere short of the end releases the window from
// following the newest sample; scrolling back to the end re-engages it.
func (v *Viewport) SetValue(value int) {
	max := v.effectiveMax()
	if value < 0 {
		value = 0
	} else if value > max {
		value = max
	}
	v.value = value
	v.scrolledBack = value < max
}

// SetDragging marks whether the scrollbar is the active input. While a drag
// is in progress SetTimePosition becomes a no-op, since the scroll events
// themselves supply the position.
func (v *Viewport) SetDragging(dragging bool) { v.dragging = dragging }

// Dragging reports whether a scrollbar drag is in progress.
func (v *Viewport) Dragging() bool { return v.dragging }

// SetTimePosition scrolls the view so the target time position (seconds) is
// visible, preferring to center it. Near the ends of the data the window is
// anchored instead and the cursor moves within it:
//
//	p < 0:        value 0, cursor at seconds*sps (anchored at the start)
//	0 <= p <= max: value p, cursor fixed at the window midpoint
//	p > max:       value max, cursor at (seconds-max)*sps (anchored at the end)
//
// where p = seconds - half the visible window. The cursor pixel is finally
// clamped to [0, bufLen-1].
func (v *Viewport) SetTimePosition(seconds float64, bufLen int) {
	v.ensure()
	if v.dragging {
		return
	}
	mid := float64(v.windowSamples/2) / float64(v.sps)
	p := seconds - mid
	max := v.effectiveMax()

	var pixel float64
	switch {
	case p < 0:
		v.value = 0
		pixel = seconds * float64(v.sps)
	case p <= float64(max):
		v.value = int(p)
		pixel = mid * float64(v.sps)
	default:
		v.value = max
		pixel = (seconds - float64(max)) * float64(v.sps)
	}
	v.scrolledBack = v.value < max

	v.cursorPixel = clampInt(int(pixel), 0, maxInt(bufLen-1, 0))
}

// TimePosition reads the time position back from the scrollbar value and
// cursor, the inverse mapping used for tooltip display.
func (v *Viewport) TimePosition() float64 {
	v.ensure()
	return float64(v.value) + float64(v.cursorPixel)/float64(v.sps)
}

// UpdateRange grows the scroll range as the buffer grows, keeping the window
// pinned to the newest sample unless the user explicitly scrolled backward.
func (v *Viewport) UpdateRange(bufLen int) {
	v.ensure()
	m := (bufLen+v.sps-1)/v.sps - 1
	if m < 0 {
		m = 0
	}
	v.maximum = m
	max := v.effectiveMax()
	if !v.scrolledBack || v.value > max {
		v.value = max
	}
}

// Window returns the visible slice [start, start+count) of a buffer of the
// given length.
func (v *Viewport) Window(bufLen int) (start, count int) {
	v.ensure()
	start = v.value * v.sps
	if start > bufLen {
		start = bufLen
	}
	if start < 0 {
		start = 0
	}
	count = bufLen - start
	if count > v.windowSamples {
		count = v.windowSamples
	}
	return start, count
}

// CursorPixel returns the cursor position within the plot, in pixels from
// the window's left edge.
func (v *Viewport) CursorPixel() int { return v.cursorPixel }

// CursorIndex resolves the cursor to a sample index, clamped to
// [0, bufLen-1] once the buffer is non-empty.
func (v *Viewport) CursorIndex(bufLen int) int {
	v.ensure()
	if bufLen <= 0 {
		return 0
	}
	return clampInt(v.value*v.sps+v.cursorPixel, 0, bufLen-1)
}

// PointerMoved translates a pointer x (local pixel coordinates) into the
// cursor pixel within the window. The window is drawn right-aligned, so
// when fewer samples than the window width are visible the drawn slice
// starts windowSamples-count pixels right of the plot's left edge.
func (v *Viewport) PointerMoved(x, bufLen int) {
	v.ensure()
	_, count := v.Window(bufLen)
	px := x - v.margin - 2 - (v.windowSamples - count)
	limit := count - 1
	if bufLen-1 < limit {
		limit = bufLen - 1
	}
	v.cursorPixel = clampInt(px, 0, maxInt(limit, 0))
}

// Generation returns the geometry generation, bumped on resize and
// channel-count change. Callers caching per-window buffers compare it to
// decide when to reallocate.
func (v *Viewport) Generation() uint64 { return v.generation }

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
