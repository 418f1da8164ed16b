package game

import "math/rand"

const (
	// TorchLifetime is how long a full torch burns, in seconds.
	TorchLifetime = 300.0
	// TorchMax is full brightness.
	TorchMax = 100.0

	flickerMinChange  = 0.05
	flickerMaxChange  = 0.10
	flickerFlipChance = 10 // percent per tick
)

// TorchDecay returns the torch level after elapsed seconds of play. It is a
// function of total elapsed time only, so repeated evaluation never drifts.
func TorchDecay(elapsed float64) float64 {
	return max(TorchMax*(1-elapsed/TorchLifetime), 0)
}

// Flicker perturbs the displayed torch level each tick. The step size is a
// fraction of the base level, so the flicker fades out as the torch dies.
type Flicker struct {
	rng       *rand.Rand
	direction float64
}

// NewFlicker creates a flicker that starts dimming.
func NewFlicker(rng *rand.Rand) *Flicker {
	return &Flicker{rng: rng, direction: -1}
}

// Direction is the current walk direction, +1 or -1.
func (f *Flicker) Direction() float64 {
	return f.direction
}

// Step returns the displayed level for this tick. While not playing the
// base is returned untouched and no randomness is consumed.
func (f *Flicker) Step(base float64, playing bool) float64 {
	if !playing {
		return clamp(base, 0, TorchMax)
	}
	lo := flickerMinChange * base
	hi := flickerMaxChange * base
	change := f.rng.Float64()*(hi-lo) + lo

	shown := clamp(base+change*f.direction, 0, TorchMax)

	if f.rng.Intn(100) < flickerFlipChance {
		f.direction = -f.direction
	}
	return shown
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
