package audio

import (
	"math"
	"testing"
)

func TestNextPow2(t *testing.T) {
	cases := map[int]int{
		0:    1,
		1:    1,
		2:    2,
		3:    4,
		5:    8,
		256:  256,
		257:  512,
		2048: 2048,
	}
	for input, want := range cases {
		if got := nextPow2(input); got != want {
			t.Fatalf("nextPow2(%d)=%d want=%d", input, got, want)
		}
	}
}

func TestExtractEmptyInput(t *testing.T) {
	e := NewBandExtractor(44_100)
	if got := e.Extract(nil); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}

func TestExtractSineLandsInLowBand(t *testing.T) {
	const sampleRate = 44_100.0
	samples := make([]float32, 2048)
	for i := range samples {
		samples[i] = float32(math.Sin(2 * math.Pi * 100 * float64(i) / sampleRate))
	}

	e := NewBandExtractor(sampleRate)
	bands := e.Extract(samples)
	if len(bands) != NumBands {
		t.Fatalf("bands=%d want=%d", len(bands), NumBands)
	}
	if bands[0] <= bands[1] || bands[0] <= bands[2] {
		t.Fatalf("100 Hz sine should dominate the low band: %v", bands)
	}
	for i, v := range bands {
		if v < 0 || v > 1 {
			t.Fatalf("band %d=%f outside [0,1]", i, v)
		}
	}
}

func TestEnvelopeAttackAndRelease(t *testing.T) {
	up := envelope(0.1, 1.0, 0.94, 0.995)
	if up <= 0.1 {
		t.Fatalf("envelope did not rise: %f", up)
	}
	down := envelope(1.0, 0.0, 0.94, 0.995)
	if down >= 1.0 || down <= 0 {
		t.Fatalf("envelope did not decay: %f", down)
	}
}
