package game

import (
	"math"
	"math/rand"
	"testing"
)

func TestTorchDecay_Law(t *testing.T) {
	cases := []struct {
		elapsed float64
		want    float64
	}{
		{0, 100},
		{150, 50},
		{299.999, 100 * (1 - 299.999/300)},
		{300, 0},
		{1000, 0},
	}
	for _, c := range cases {
		if got := TorchDecay(c.elapsed); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("TorchDecay(%v) = %v, want %v", c.elapsed, got, c.want)
		}
	}
}

func TestTorchDecay_StrictlyDecreasingUntilOut(t *testing.T) {
	prev := TorchDecay(0)
	for e := 0.5; e < TorchLifetime; e += 0.5 {
		cur := TorchDecay(e)
		if cur >= prev {
			t.Fatalf("torch not decreasing at t=%.1f: %v >= %v", e, cur, prev)
		}
		prev = cur
	}
}

func TestFlicker_StaysInBoundsAcrossSeeds(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		rng := rand.New(rand.NewSource(seed))
		f := NewFlicker(rng)
		for tick := 0; tick < 2000; tick++ {
			base := TorchDecay(float64(tick) / 5)
			shown := f.Step(base, true)
			if shown < 0 || shown > TorchMax {
				t.Fatalf("seed %d tick %d: shown torch %v outside [0,100]", seed, tick, shown)
			}
		}
	}
}

func TestFlicker_AmplitudeScalesWithBase(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	f := NewFlicker(rng)
	for i := 0; i < 500; i++ {
		for _, base := range []float64{2, 40, 90} {
			shown := f.Step(base, true)
			dev := math.Abs(shown - base)
			// Clamping can only shrink the deviation.
			if dev > 0.10*base+1e-9 {
				t.Fatalf("base %v: deviation %v exceeds 10%%", base, dev)
			}
			if shown > 0 && shown < TorchMax && dev < 0.05*base-1e-9 {
				t.Fatalf("base %v: deviation %v under 5%%", base, dev)
			}
		}
	}
}

func TestFlicker_DirectionFlipsEventually(t *testing.T) {
	f := NewFlicker(rand.New(rand.NewSource(3)))
	if f.Direction() != -1 {
		t.Fatalf("flicker should start dimming, got direction %v", f.Direction())
	}
	flipped := false
	for i := 0; i < 500 && !flipped; i++ {
		f.Step(50, true)
		flipped = f.Direction() == 1
	}
	if !flipped {
		t.Fatal("direction never flipped in 500 ticks")
	}
}

func TestFlicker_NotPlayingReturnsBaseWithoutRandomness(t *testing.T) {
	rngA := rand.New(rand.NewSource(11))
	rngB := rand.New(rand.NewSource(11))
	f := NewFlicker(rngA)
	if got := f.Step(63, false); got != 63 {
		t.Fatalf("expected frozen base 63, got %v", got)
	}
	if rngA.Int63() != rngB.Int63() {
		t.Fatal("Step consumed randomness while not playing")
	}
}
