package game

import (
	"math/rand"
	"testing"
)

func TestGhost_StaysOnFloor(t *testing.T) {
	m, err := GenerateMaze(rand.New(rand.NewSource(4)), 6, 6, 0)
	if err != nil {
		t.Fatal(err)
	}
	g := NewGhost(m, m.Finish(), rand.New(rand.NewSource(8)))
	for i := 0; i < 3000; i++ {
		g.Move(1.0 / 60)
		// Corner-anchored, so the cell under the ghost's centre is what counts.
		c := CellOf(g.Position.Add(Cell{}.Centre()))
		if m.IsWall(c.X, c.Y) {
			t.Fatalf("tick %d: ghost inside wall at %v", i, g.Position)
		}
	}
}

func TestGhost_Moves(t *testing.T) {
	m, err := MazeFromRows(winMaze)
	if err != nil {
		t.Fatal(err)
	}
	g := NewGhost(m, Cell{3, 3}, rand.New(rand.NewSource(2)))
	start := g.Position
	g.Move(0.5)
	if g.Position == start {
		t.Fatal("ghost did not move")
	}
	if d := g.Position.Sub(start).Len(); d > ghostSpeed*0.5+1e-9 {
		t.Fatalf("ghost moved %v in 0.5s, faster than %v cells/s", d, ghostSpeed)
	}
}
