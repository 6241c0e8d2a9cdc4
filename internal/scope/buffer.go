package scope

import "fmt"

// Sample holds the per-channel values recorded for one timestamp.
type Sample []float64

// Buffer is the host-owned, time-ordered sequence of samples the scope
// displays. Positions hold either a concrete sample or an absence marker
// ("no data yet"); a filled position never reverts to absent, so absence
// only occurs at trailing not-yet-filled slots. The scope reads the buffer
// and observes its length once per render pass and never mutates it.
type Buffer struct {
	samples []Sample
}

// NewBuffer creates an empty buffer with room for n samples.
func NewBuffer(n int) *Buffer {
	if n < 0 {
		n = 0
	}
	return &Buffer{samples: make([]Sample, 0, n)}
}

// Append adds a concrete sample at the next position. The values are copied
// so later mutation by the caller cannot alter recorded history.
func (b *Buffer) Append(s Sample) {
	cp := make(Sample, len(s))
	copy(cp, s)
	b.samples = append(b.samples, cp)
}

// AppendAbsent reserves the next position without data, to be filled later
// via Fill.
func (b *Buffer) AppendAbsent() {
	b.samples = append(b.samples, nil)
}

// Fill sets a previously absent position. Overwriting a concrete sample is
// rejected: once recorded, a position is immutable.
func (b *Buffer) Fill(i int, s Sample) error {
	if i < 0 || i >= len(b.samples) {
		return fmt.Errorf("scope: fill position %d out of range [0,%d)", i, len(b.samples))
	}
	if b.samples[i] != nil {
		return fmt.Errorf("scope: position %d already holds a sample", i)
	}
	cp := make(Sample, len(s))
	copy(cp, s)
	b.samples[i] = cp
	return nil
}

// Len returns the number of positions, filled or not.
func (b *Buffer) Len() int { return len(b.samples) }

// At returns the sample at position i. ok is false when the position is
// absent or out of range.
func (b *Buffer) At(i int) (Sample, bool) {
	if i < 0 || i >= len(b.samples) || b.samples[i] == nil {
		return nil, false
	}
	return b.samples[i], true
}
