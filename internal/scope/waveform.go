package scope

import "tracescope/internal/render"

// Traces holds the per-channel polylines for one visible window. The slices
// are reused across frames; they are reallocated only when the viewport
// generation changes.
type Traces struct {
	channels   [][]render.Vertex
	generation uint64
}

// Rasterize produces, per channel, the ordered pixel-space polyline for the
// window [start, start+count) of the buffer, right-aligned so the newest
// sample sits at the plot's right edge.
//
// Iteration stops at the first absent sample encountered: absence means "not
// yet produced", and channels advance in lock-step, so a single absent
// sample halts rasterization for every channel at that index. The returned
// length is the usable polyline length for all channels. Rendering a shorter
// trace is the expected degradation for a partially filled buffer, not an
// error.
func (t *Traces) Rasterize(buf *Buffer, norm *Normalizer, channels []Channel, vp *Viewport, start, count int) ([][]render.Vertex, int) {
	t.ensure(vp, len(channels))

	mod, zero := PlotScale(vp.height, vp.margin)
	rightEdge := float64(vp.width - vp.margin - 2)

	n := 0
	for i := 0; i < count; i++ {
		sample, ok := buf.At(start + i)
		if !ok {
			break
		}
		x := float32(rightEdge - float64(count) + float64(i))
		for k := range channels {
			y := norm.Y(k, sample[k], zero, mod)
			t.channels[k] = append(t.channels[k], render.V(x, float32(y), channels[k].Color))
		}
		n++
	}
	return t.channels, n
}

// ensure reallocates the per-channel buffers when the cached viewport
// generation is stale, otherwise just resets their lengths.
func (t *Traces) ensure(vp *Viewport, channels int) {
	window := vp.WindowSamples()
	if t.generation != vp.Generation() || len(t.channels) != channels {
		t.channels = make([][]render.Vertex, channels)
		for k := range t.channels {
			t.channels[k] = make([]render.Vertex, 0, window)
		}
		t.generation = vp.Generation()
		return
	}
	for k := range t.channels {
		t.channels[k] = t.channels[k][:0]
	}
}
