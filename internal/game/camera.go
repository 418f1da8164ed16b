package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CameraMode selects how the scene is viewed.
type CameraMode int

const (
	CameraFirstPerson CameraMode = iota
	CameraThirdPerson
)

func (m CameraMode) String() string {
	if m == CameraThirdPerson {
		return "third-person"
	}
	return "first-person"
}

// Toggle returns the other mode.
func (m CameraMode) Toggle() CameraMode {
	if m == CameraFirstPerson {
		return CameraThirdPerson
	}
	return CameraFirstPerson
}

// Mode-independent projection constants.
const (
	FieldOfView        = math.Pi / 4
	VisibilityDistance = 7.0
	NearPlane          = 1e-3
	FarPlane           = VisibilityDistance * 2

	thirdPersonPitch    = 60.0 // degrees
	thirdPersonTrailing = 2.0
	thirdPersonLift     = wallHeight * 3

	fogDensityFirstPerson = 0.5
	fogDensityThirdPerson = 0.1
)

// FogDensity is denser in first person to hide the draw distance.
func FogDensity(mode CameraMode) float64 {
	if mode == CameraThirdPerson {
		return fogDensityThirdPerson
	}
	return fogDensityFirstPerson
}

// Projection returns the perspective projection for a viewport.
func Projection(width, height int) mgl64.Mat4 {
	aspect := 1.0
	if height > 0 {
		aspect = float64(width) / float64(height)
	}
	return mgl64.Perspective(FieldOfView, aspect, NearPlane, FarPlane)
}

// baseView looks along +Y with +Z up, the maze's natural frame.
var baseView = mgl64.LookAtV(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 1})

// ViewMatrix builds the world-to-camera transform. eye is the player's eye
// position and angle its heading in degrees.
//
// First person: yaw by the heading, then move the world so the eye is at
// the origin. Third person: pitch down, back off behind the player, apply
// the first-person transform, then lift the camera above the walls.
func ViewMatrix(mode CameraMode, eye mgl64.Vec3, angle float64) mgl64.Mat4 {
	yaw := mgl64.HomogRotate3DZ(mgl64.DegToRad(angle))
	toEye := mgl64.Translate3D(-eye.X(), -eye.Y(), -eye.Z())
	if mode == CameraThirdPerson {
		pitch := mgl64.HomogRotate3DX(mgl64.DegToRad(thirdPersonPitch))
		trail := mgl64.Translate3D(0, thirdPersonTrailing, 0)
		lift := mgl64.Translate3D(0, 0, -thirdPersonLift)
		return baseView.Mul4(pitch).Mul4(trail).Mul4(yaw).Mul4(toEye).Mul4(lift)
	}
	return baseView.Mul4(yaw).Mul4(toEye)
}

// Camera bundles the per-frame transforms.
type Camera struct {
	Mode     CameraMode
	View     mgl64.Mat4
	Proj     mgl64.Mat4
	ViewProj mgl64.Mat4
	Width    int
	Height   int
}

// NewCamera prepares the frame camera for a viewport.
func NewCamera(mode CameraMode, eye mgl64.Vec3, angle float64, width, height int) Camera {
	view := ViewMatrix(mode, eye, angle)
	proj := Projection(width, height)
	return Camera{
		Mode:     mode,
		View:     view,
		Proj:     proj,
		ViewProj: proj.Mul4(view),
		Width:    width,
		Height:   height,
	}
}

// EyeDistance is the distance from the camera to a world point.
func (c Camera) EyeDistance(p mgl64.Vec3) float64 {
	return c.View.Mul4x1(p.Vec4(1)).Vec3().Len()
}

// ToScreen maps a clip-space position with w > 0 to pixel coordinates.
func (c Camera) ToScreen(clip mgl64.Vec4) (float64, float64) {
	nx := clip.X() / clip.W()
	ny := clip.Y() / clip.W()
	sx := (nx + 1) / 2 * float64(c.Width)
	sy := (1 - ny) / 2 * float64(c.Height)
	return sx, sy
}
