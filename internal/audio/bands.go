package audio

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
)

// Band bounds in Hz for the demo's three scope channels.
var bandLimits = [...][2]float64{
	{20, 250},
	{250, 2000},
	{2000, 8000},
}

// NumBands is the number of channels Extract produces.
const NumBands = len(bandLimits)

// BandExtractor reduces a window of raw audio to one multi-channel scope
// sample: the normalized energy in each frequency band. Peak tracking with a
// slow release keeps the values inside a [0,1] display range regardless of
// input level.
type BandExtractor struct {
	sampleRate float64
	buffer     []complex128
	window     []float64
	peaks      [NumBands]float64
}

// NewBandExtractor creates an extractor for audio at the given sample rate.
func NewBandExtractor(sampleRate float64) *BandExtractor {
	if sampleRate <= 0 {
		sampleRate = 44_100
	}
	return &BandExtractor{sampleRate: sampleRate}
}

// Extract returns the per-band energies for the provided mono samples, or
// nil when there is no usable input, which the host records as an absent
// sample.
func (e *BandExtractor) Extract(samples []float32) []float64 {
	if len(samples) == 0 {
		return nil
	}

	size := nextPow2(minInt(len(samples), 2048))
	if size < 256 {
		size = 256
	}
	e.ensureWorkspace(size)

	for i := 0; i < size; i++ {
		if i < len(samples) {
			e.buffer[i] = complex(float64(samples[i])*e.window[i], 0)
		} else {
			e.buffer[i] = 0
		}
	}

	spectrum := fft.FFT(e.buffer[:size])
	resolution := e.sampleRate / float64(size)

	out := make([]float64, NumBands)
	for b, limits := range bandLimits {
		energy := bandEnergy(spectrum, resolution, limits[0], limits[1])
		e.peaks[b] = envelope(e.peaks[b], energy, 0.94, 0.995)
		if e.peaks[b] > 1e-6 {
			energy /= e.peaks[b]
		}
		out[b] = clamp01(energy)
	}
	return out
}

func bandEnergy(spectrum []complex128, resolution, minHz, maxHz float64) float64 {
	if minHz >= maxHz || resolution <= 0 {
		return 0
	}
	lo := int(math.Floor(minHz / resolution))
	hi := int(math.Ceil(maxHz/resolution)) + 1
	if hi > len(spectrum)/2 {
		hi = len(spectrum) / 2
	}
	if lo >= hi {
		return 0
	}
	sum := 0.0
	for _, v := range spectrum[lo:hi] {
		sum += math.Hypot(real(v), imag(v))
	}
	return sum / float64(hi-lo)
}

func (e *BandExtractor) ensureWorkspace(size int) {
	if len(e.buffer) != size {
		e.buffer = make([]complex128, size)
	}
	if len(e.window) != size {
		e.window = make([]float64, size)
		for i := range e.window {
			e.window[i] = hann(float64(i), float64(size))
		}
	}
}

func hann(i, size float64) float64 {
	return 0.5 * (1.0 - math.Cos(2.0*math.Pi*i/size))
}

// envelope follows rising input quickly and decays slowly otherwise.
func envelope(current, input, attack, release float64) float64 {
	if input > current {
		return current*attack + input*(1-attack)
	}
	return current * release
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func nextPow2(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	return n + 1
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
