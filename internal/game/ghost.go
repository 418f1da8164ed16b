package game

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

const ghostSpeed = 1.2 // cells per second

// Ghost drifts from cell to cell through the maze. Position uses the same
// corner anchoring as icons: a ghost resting in cell (x,y) has Position (x,y).
type Ghost struct {
	Position mgl64.Vec2

	maze   *Maze
	rng    *rand.Rand
	from   Cell
	target Cell
}

// NewGhost spawns a ghost in cell c with its own random source.
func NewGhost(m *Maze, c Cell, rng *rand.Rand) *Ghost {
	g := &Ghost{
		Position: c.Vec2(),
		maze:     m,
		rng:      rng,
		from:     c,
		target:   c,
	}
	g.pickTarget()
	return g
}

// Move advances the ghost towards its target cell by dt seconds of travel,
// choosing a new neighbouring cell each time it arrives.
func (g *Ghost) Move(dt float64) {
	step := ghostSpeed * dt
	for step > 0 {
		goal := g.target.Vec2()
		delta := goal.Sub(g.Position)
		dist := delta.Len()
		if dist <= step {
			g.Position = goal
			step -= dist
			prev := g.from
			g.from = g.target
			g.pickTargetAvoiding(prev)
			if g.target == g.from {
				return
			}
			continue
		}
		g.Position = g.Position.Add(delta.Mul(step / dist))
		return
	}
}

func (g *Ghost) pickTarget() {
	g.pickTargetAvoiding(Cell{-1, -1})
}

// pickTargetAvoiding chooses a random open neighbour, only turning back to
// avoid when it is a dead end.
func (g *Ghost) pickTargetAvoiding(avoid Cell) {
	var options []Cell
	var back []Cell
	for _, d := range mazeDirs {
		n := Cell{g.from.X + d.X, g.from.Y + d.Y}
		if g.maze.IsWall(n.X, n.Y) {
			continue
		}
		if n == avoid {
			back = append(back, n)
			continue
		}
		options = append(options, n)
	}
	if len(options) == 0 {
		options = back
	}
	if len(options) == 0 {
		g.target = g.from
		return
	}
	g.target = options[g.rng.Intn(len(options))]
}
