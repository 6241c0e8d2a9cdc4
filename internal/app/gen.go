package app

import (
	"math"
	"math/rand"
	"time"

	"tracescope/internal/render"
	"tracescope/internal/scope"
)

// generator produces synthetic three-channel samples for runs without an
// audio device: a sine, a decaying pulse train and band noise.
type generator struct {
	rng   *rand.Rand
	phase float64
	pulse float64
}

func newGenerator() *generator {
	return &generator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Channels returns the display configuration matching Next's output.
func (g *generator) Channels() []scope.Channel {
	return []scope.Channel{
		{MinDisplay: -1, MaxDisplay: 1, Color: render.TraceColor(0), LabelFormat: "sin=%+.2f"},
		{MinDisplay: 0, MaxDisplay: 1, Color: render.TraceColor(1), LabelFormat: "pulse=%.2f"},
		{MinDisplay: -0.5, MaxDisplay: 0.5, Color: render.TraceColor(2), LabelFormat: "\tnoise=%+.2f"},
	}
}

func (g *generator) Next(delta float64) scope.Sample {
	g.phase += delta * 2 * math.Pi * 0.8

	g.pulse *= math.Pow(0.2, delta)
	if g.rng.Float64() < delta*1.5 {
		g.pulse = 1.0
	}

	return scope.Sample{
		math.Sin(g.phase),
		g.pulse,
		(g.rng.Float64() - 0.5) * 0.8,
	}
}
