package scope

import (
	"fmt"

	"tracescope/internal/render"
)

// Channel configures one signal: the display range its values are normalized
// against, the trace color, and the label template for the cursor readout.
// A template starting with a tab adds extra horizontal spacing before the
// label, used to visually group channels.
type Channel struct {
	MinDisplay  float64
	MaxDisplay  float64
	Color       render.Color
	LabelFormat string
}

// Normalizer linearly maps raw channel values onto vertical pixel offsets
// using each channel's display range.
type Normalizer struct {
	center   []float64
	halfSpan []float64
}

// NewNormalizer validates the channel ranges and precomputes the per-channel
// center and half-span. A zero-span range is a configuration error.
func NewNormalizer(channels []Channel) (*Normalizer, error) {
	n := &Normalizer{
		center:   make([]float64, len(channels)),
		halfSpan: make([]float64, len(channels)),
	}
	for i, ch := range channels {
		if ch.MaxDisplay == ch.MinDisplay {
			return nil, fmt.Errorf("scope: channel %d has zero display span (min=max=%g)", i, ch.MinDisplay)
		}
		n.halfSpan[i] = (ch.MaxDisplay - ch.MinDisplay) / 2
		n.center[i] = ch.MinDisplay + n.halfSpan[i]
	}
	return n, nil
}

// Channels returns the number of configured channels.
func (n *Normalizer) Channels() int { return len(n.center) }

// Y maps value on channel ch to a pixel row given the vertical zero line and
// scale. A value at the range minimum lands on zero+mod, the maximum on
// zero-mod.
func (n *Normalizer) Y(ch int, value, zero, mod float64) float64 {
	return zero - mod*(value-n.center[ch])/n.halfSpan[ch]
}

// PlotScale derives the vertical scale and zero line from the drawable
// height and margin.
func PlotScale(height, margin int) (mod, zero float64) {
	mod = float64(height-2*margin-4) / 2
	if mod < 0 {
		mod = 0
	}
	zero = mod + float64(margin) + 2
	return mod, zero
}
