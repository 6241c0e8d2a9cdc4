package scope

import (
	"math"
	"testing"
)

func TestNormalizerRejectsZeroSpan(t *testing.T) {
	_, err := NewNormalizer([]Channel{{MinDisplay: 1, MaxDisplay: 1}})
	if err == nil {
		t.Fatalf("expected zero-span range to be rejected")
	}
}

func TestNormalizeExtremes(t *testing.T) {
	norm, err := NewNormalizer([]Channel{{MinDisplay: -5, MaxDisplay: 5}})
	if err != nil {
		t.Fatalf("normalizer: %v", err)
	}
	mod, zero := PlotScale(100, 10)

	if got := norm.Y(0, -5, zero, mod); math.Abs(got-(zero+mod)) > 1e-9 {
		t.Fatalf("min maps to %f want zero+mod=%f", got, zero+mod)
	}
	if got := norm.Y(0, 5, zero, mod); math.Abs(got-(zero-mod)) > 1e-9 {
		t.Fatalf("max maps to %f want zero-mod=%f", got, zero-mod)
	}
	if got := norm.Y(0, 0, zero, mod); math.Abs(got-zero) > 1e-9 {
		t.Fatalf("center maps to %f want zero=%f", got, zero)
	}
}

func TestPlotScale(t *testing.T) {
	mod, zero := PlotScale(100, 10)
	if mod != 38 {
		t.Fatalf("mod=%f want=38", mod)
	}
	if zero != 50 {
		t.Fatalf("zero=%f want=50", zero)
	}
}
