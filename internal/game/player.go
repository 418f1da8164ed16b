package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	playerTurnSpeed     = 120.0 // degrees per second
	playerMovementSpeed = 2.0   // cells per second
)

// Player is the explorer. Position is continuous in cell units (the centre
// of cell (x,y) is (x+0.5, y+0.5)); Angle is the heading in degrees, where
// 0 faces +Y and positive angles turn clockwise seen from above.
type Player struct {
	Position      mgl64.Vec2
	Angle         float64
	Size          mgl64.Vec3 // footprint X/Y and eye height Z
	TurnSpeed     float64
	MovementSpeed float64

	walls interface{ IsWall(x, y int) bool }
}

// NewPlayer places a player at the centre of the maze start cell.
func NewPlayer(m *Maze) *Player {
	return &Player{
		Position:      m.Start().Centre(),
		Size:          mgl64.Vec3{0.3, 0.3, 0.5},
		TurnSpeed:     playerTurnSpeed,
		MovementSpeed: playerMovementSpeed,
		walls:         m,
	}
}

// Heading returns the unit vector the player faces.
func (p *Player) Heading() mgl64.Vec2 {
	rad := mgl64.DegToRad(p.Angle)
	return mgl64.Vec2{math.Sin(rad), math.Cos(rad)}
}

// Turn adds deg to the heading, keeping it in [0, 360).
func (p *Player) Turn(deg float64) {
	p.Angle = math.Mod(p.Angle+deg, 360)
	if p.Angle < 0 {
		p.Angle += 360
	}
}

// Move applies a heading-local displacement (+Y forward, +X right). Each
// world axis is resolved separately so the player slides along walls.
func (p *Player) Move(v mgl64.Vec2) {
	rad := mgl64.DegToRad(p.Angle)
	sin, cos := math.Sin(rad), math.Cos(rad)
	dx := v.X()*cos + v.Y()*sin
	dy := -v.X()*sin + v.Y()*cos

	next := mgl64.Vec2{p.Position.X() + dx, p.Position.Y()}
	if !p.collides(next) {
		p.Position = next
	}
	next = mgl64.Vec2{p.Position.X(), p.Position.Y() + dy}
	if !p.collides(next) {
		p.Position = next
	}
}

func (p *Player) collides(pos mgl64.Vec2) bool {
	if p.walls == nil {
		return false
	}
	rx, ry := p.Size.X()/2, p.Size.Y()/2
	corners := [4]mgl64.Vec2{
		{pos.X() - rx, pos.Y() - ry},
		{pos.X() + rx, pos.Y() - ry},
		{pos.X() - rx, pos.Y() + ry},
		{pos.X() + rx, pos.Y() + ry},
	}
	for _, c := range corners {
		cell := CellOf(c)
		if p.walls.IsWall(cell.X, cell.Y) {
			return true
		}
	}
	return false
}
