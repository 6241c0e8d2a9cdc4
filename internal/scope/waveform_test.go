package scope

import (
	"math"
	"testing"
)

func testChannels() []Channel {
	return []Channel{
		{MinDisplay: -1, MaxDisplay: 1},
		{MinDisplay: 0, MaxDisplay: 10},
		{MinDisplay: -100, MaxDisplay: 100},
	}
}

func TestRasterizeStopsAtFirstAbsentSample(t *testing.T) {
	channels := testChannels()
	norm, err := NewNormalizer(channels)
	if err != nil {
		t.Fatalf("normalizer: %v", err)
	}
	buf := NewBuffer(8)
	for i := 0; i < 5; i++ { // indices 0..4 present
		buf.Append(Sample{0, 5, 0})
	}
	buf.AppendAbsent() // index 5 absent
	buf.AppendAbsent()

	vp := testViewport()
	vp.UpdateRange(buf.Len())
	start, count := vp.Window(buf.Len())
	if start != 0 || count != 7 {
		t.Fatalf("window=[%d,+%d) want=[0,+7)", start, count)
	}

	var traces Traces
	polylines, n := traces.Rasterize(buf, norm, channels, vp, start, count)
	if n != 5 {
		t.Fatalf("rasterized length=%d want=5 (stops at first absent sample)", n)
	}
	for k, line := range polylines {
		if len(line) != 5 {
			t.Fatalf("channel %d polyline length=%d want=5 (lock-step truncation)", k, len(line))
		}
	}
}

func TestRasterizeLengthNeverExceedsWindowOrBuffer(t *testing.T) {
	channels := testChannels()
	norm, _ := NewNormalizer(channels)
	buf := NewBuffer(300)
	for i := 0; i < 300; i++ {
		buf.Append(Sample{0, 5, 0})
	}
	vp := testViewport()
	vp.UpdateRange(buf.Len())
	start, count := vp.Window(buf.Len())

	var traces Traces
	_, n := traces.Rasterize(buf, norm, channels, vp, start, count)
	if limit := vp.WindowSamples(); n > limit {
		t.Fatalf("rasterized length %d exceeds window width %d", n, limit)
	}
	if n > buf.Len() {
		t.Fatalf("rasterized length %d exceeds buffer length %d", n, buf.Len())
	}
}

func TestRasterizeRightAligned(t *testing.T) {
	channels := testChannels()
	norm, _ := NewNormalizer(channels)
	buf := NewBuffer(10)
	for i := 0; i < 10; i++ {
		buf.Append(Sample{0, 5, 0})
	}
	vp := testViewport()
	vp.UpdateRange(buf.Len())
	start, count := vp.Window(buf.Len())

	var traces Traces
	polylines, n := traces.Rasterize(buf, norm, channels, vp, start, count)
	if n != 10 {
		t.Fatalf("rasterized length=%d want=10", n)
	}
	// newest sample sits one pixel inside the right border
	rightEdge := float32(224 - 10 - 2)
	if got := polylines[0][n-1].X; got != rightEdge-1 {
		t.Fatalf("newest sample x=%f want=%f", got, rightEdge-1)
	}
}

func TestRasterizeNormalizesPerChannel(t *testing.T) {
	channels := testChannels()
	norm, _ := NewNormalizer(channels)
	buf := NewBuffer(1)
	buf.Append(Sample{-1, 10, 0}) // min, max, center of the three ranges
	vp := testViewport()
	vp.UpdateRange(buf.Len())
	start, count := vp.Window(buf.Len())

	var traces Traces
	polylines, n := traces.Rasterize(buf, norm, channels, vp, start, count)
	if n != 1 {
		t.Fatalf("rasterized length=%d want=1", n)
	}
	mod, zero := PlotScale(100, 10)
	if got := float64(polylines[0][0].Y); math.Abs(got-(zero+mod)) > 0.5 {
		t.Fatalf("channel 0 min value y=%f want=%f", got, zero+mod)
	}
	if got := float64(polylines[1][0].Y); math.Abs(got-(zero-mod)) > 0.5 {
		t.Fatalf("channel 1 max value y=%f want=%f", got, zero-mod)
	}
	if got := float64(polylines[2][0].Y); math.Abs(got-zero) > 0.5 {
		t.Fatalf("channel 2 center value y=%f want=%f", got, zero)
	}
}

func TestTracesReuseUntilGenerationChanges(t *testing.T) {
	channels := testChannels()
	norm, _ := NewNormalizer(channels)
	buf := NewBuffer(10)
	for i := 0; i < 10; i++ {
		buf.Append(Sample{0, 5, 0})
	}
	vp := testViewport()
	vp.UpdateRange(buf.Len())
	start, count := vp.Window(buf.Len())

	var traces Traces
	traces.Rasterize(buf, norm, channels, vp, start, count)
	gen := traces.generation

	traces.Rasterize(buf, norm, channels, vp, start, count)
	if traces.generation != gen {
		t.Fatalf("generation changed without invalidation")
	}

	vp.Resize(324, 100)
	vp.UpdateRange(buf.Len())
	start, count = vp.Window(buf.Len())
	traces.Rasterize(buf, norm, channels, vp, start, count)
	if traces.generation == gen {
		t.Fatalf("expected reallocation after resize")
	}
}

func TestPointerResolvesRasterizedSample(t *testing.T) {
	channels := testChannels()
	norm, _ := NewNormalizer(channels)
	buf := NewBuffer(950)
	for i := 0; i < 950; i++ {
		buf.Append(Sample{0, 5, 0})
	}

	// 950 samples do not fill the end-pinned window: [800,950) leaves the
	// drawn slice 50 pixels short of the window width.
	vp := testViewport()
	vp.UpdateRange(buf.Len())
	start, count := vp.Window(buf.Len())
	if start != 800 || count != 150 {
		t.Fatalf("window=[%d,+%d) want=[800,+150)", start, count)
	}

	var traces Traces
	polylines, n := traces.Rasterize(buf, norm, channels, vp, start, count)
	if n != count {
		t.Fatalf("rasterized length=%d want=%d", n, count)
	}

	// pointing at a drawn vertex must read back that vertex's sample index
	for _, i := range []int{0, 1, 74, count - 1} {
		x := int(polylines[0][i].X)
		vp.PointerMoved(x, buf.Len())
		if got, want := vp.CursorIndex(buf.Len()), start+i; got != want {
			t.Fatalf("pointer at x=%d resolved index=%d want=%d", x, got, want)
		}
	}

	// left of the drawn slice clamps to its first sample
	vp.PointerMoved(12, buf.Len())
	if got := vp.CursorIndex(buf.Len()); got != start {
		t.Fatalf("pointer left of trace resolved index=%d want=%d", got, start)
	}
}
