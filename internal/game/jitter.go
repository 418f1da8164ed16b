package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	wallHeight          = 1.0
	wallHeightVariation = 0.1
	wallXYVariation     = 0.1
)

// Jitter displaces a vertex by a smooth function of its own coordinates so
// walls and floors look hand built. It has no state: the same input always
// yields the same output, and quads sharing a corner stay stitched together.
// e is only a phase offset.
func Jitter(v mgl64.Vec3) mgl64.Vec3 {
	phase := v.X() + v.Y() + v.Z() + math.E
	return mgl64.Vec3{
		v.X() + math.Sin(phase*1.5)*wallXYVariation,
		v.Y() + math.Sin(phase*2.5)*wallXYVariation,
		v.Z() + math.Sin(phase*1.0)*wallHeightVariation,
	}
}

// JitterXYZ is Jitter for loose coordinates.
func JitterXYZ(x, y, z float64) mgl64.Vec3 {
	return Jitter(mgl64.Vec3{x, y, z})
}

// EyePosition returns the first-person eye position for a player standing
// at pos: the jittered ground height under the player plus the eye height.
func EyePosition(pos mgl64.Vec2, eyeHeight float64) mgl64.Vec3 {
	ground := JitterXYZ(pos.X(), pos.Y(), 0)
	return mgl64.Vec3{pos.X(), pos.Y(), ground.Z() + eyeHeight}
}
