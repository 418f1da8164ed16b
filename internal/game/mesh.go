package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SurfaceKind tells walls, floors and ceilings apart.
type SurfaceKind uint8

const (
	SurfaceWall SurfaceKind = iota
	SurfaceFloor
	SurfaceCeiling
)

// Quad is one jittered, textured piece of maze geometry. UV runs over
// [0,1] of the wall texture.
type Quad struct {
	Kind SurfaceKind
	Pos  [4]mgl64.Vec3
	UV   [4]mgl64.Vec2
}

// Centre is the average of the corners.
func (q Quad) Centre() mgl64.Vec3 {
	return q.Pos[0].Add(q.Pos[1]).Add(q.Pos[2]).Add(q.Pos[3]).Mul(0.25)
}

// VisibleRange returns the inclusive cell bounds within VisibilityDistance
// of the player, clamped to the grid.
func VisibleRange(m MazeView, player mgl64.Vec2) (xmin, ymin, xmax, ymax int) {
	xmin = int(math.Floor(max(player.X()-VisibilityDistance, 0)))
	ymin = int(math.Floor(max(player.Y()-VisibilityDistance, 0)))
	xmax = int(math.Ceil(min(player.X()+VisibilityDistance, float64(m.Width()-1))))
	ymax = int(math.Ceil(min(player.Y()+VisibilityDistance, float64(m.Height()-1))))
	return xmin, ymin, xmax, ymax
}

// BuildMazeMesh emits the quads around every visible floor cell: a wall
// face toward each wall neighbour, the floor, and in first person the
// ceiling. Faces are wound so they read left to right from inside the cell.
func BuildMazeMesh(m MazeView, player mgl64.Vec2, mode CameraMode) []Quad {
	xmin, ymin, xmax, ymax := VisibleRange(m, player)
	var quads []Quad
	for x := xmin; x <= xmax; x++ {
		for y := ymin; y <= ymax; y++ {
			if m.Cell(x, y) != CellEmpty {
				continue
			}
			fx, fy := float64(x), float64(y)
			if m.Cell(x, y+1) == CellWall {
				quads = appendWall(quads, mgl64.Vec2{fx, fy + 1}, mgl64.Vec2{fx + 1, fy + 1})
			}
			if m.Cell(x, y-1) == CellWall {
				quads = appendWall(quads, mgl64.Vec2{fx + 1, fy}, mgl64.Vec2{fx, fy})
			}
			if m.Cell(x-1, y) == CellWall {
				quads = appendWall(quads, mgl64.Vec2{fx, fy}, mgl64.Vec2{fx, fy + 1})
			}
			if m.Cell(x+1, y) == CellWall {
				quads = appendWall(quads, mgl64.Vec2{fx + 1, fy + 1}, mgl64.Vec2{fx + 1, fy})
			}
			quads = appendFlat(quads, SurfaceFloor, fx, fy, 0)
			if mode == CameraFirstPerson {
				quads = appendFlat(quads, SurfaceCeiling, fx, fy, wallHeight)
			}
		}
	}
	return quads
}

// appendWall splits the face a-b into two columns of two rows so the
// jitter has interior vertices to bend.
func appendWall(quads []Quad, a, b mgl64.Vec2) []Quad {
	mid := a.Add(b).Mul(0.5)
	cols := [2][2]mgl64.Vec2{{a, mid}, {mid, b}}
	const half = wallHeight / 2
	for i, col := range cols {
		u0 := float64(i) * 0.5
		u1 := u0 + 0.5
		for _, z := range [2]float64{0, half} {
			top, bottom := z+half, z
			// Texture rows run down from the top of the wall.
			v0 := 1 - top/wallHeight
			v1 := 1 - bottom/wallHeight
			quads = append(quads, Quad{
				Kind: SurfaceWall,
				Pos: [4]mgl64.Vec3{
					JitterXYZ(col[0].X(), col[0].Y(), top),
					JitterXYZ(col[1].X(), col[1].Y(), top),
					JitterXYZ(col[1].X(), col[1].Y(), bottom),
					JitterXYZ(col[0].X(), col[0].Y(), bottom),
				},
				UV: [4]mgl64.Vec2{{u0, v0}, {u1, v0}, {u1, v1}, {u0, v1}},
			})
		}
	}
	return quads
}

// appendFlat tiles the cell at (x, y) with a 2x2 grid of half-cell quads at
// height z.
func appendFlat(quads []Quad, kind SurfaceKind, x, y, z float64) []Quad {
	for _, dx := range [2]float64{0, 0.5} {
		for _, dy := range [2]float64{0, 0.5} {
			px, py := x+dx, y+dy
			quads = append(quads, Quad{
				Kind: kind,
				Pos: [4]mgl64.Vec3{
					JitterXYZ(px, py, z),
					JitterXYZ(px+0.5, py, z),
					JitterXYZ(px+0.5, py+0.5, z),
					JitterXYZ(px, py+0.5, z),
				},
				UV: [4]mgl64.Vec2{{dx, dy}, {dx + 0.5, dy}, {dx + 0.5, dy + 0.5}, {dx, dy + 0.5}},
			})
		}
	}
	return quads
}
