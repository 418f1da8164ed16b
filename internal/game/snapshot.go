package game

import "github.com/go-gl/mathgl/mgl64"

// PlayerView is the read-only part of the player the renderer needs.
type PlayerView struct {
	Position mgl64.Vec2
	Angle    float64
	Size     mgl64.Vec3
}

// Snapshot is a read-only copy of session state taken after a tick. The
// renderer draws from it and never touches the session itself.
type Snapshot struct {
	Tick        int
	TPS         int
	State       GameState
	Torch       float64
	Maze        MazeView
	Player      PlayerView
	Ghosts      []mgl64.Vec2
	Checkpoints []Cell
	Collected   []bool // parallel to Checkpoints
	Finish      Cell
	Marks       []Cell
	MarksLeft   int
}

// Snapshot copies the state the renderer reads.
func (s *Session) Snapshot() Snapshot {
	cps := s.maze.Checkpoints()
	collected := make([]bool, len(cps))
	for i := range cps {
		collected[i] = s.collected[i]
	}
	ghosts := make([]mgl64.Vec2, len(s.ghosts))
	for i, g := range s.ghosts {
		ghosts[i] = g.Position
	}
	return Snapshot{
		Tick:  s.ticks,
		TPS:   s.tps,
		State: s.state,
		Torch: s.torch,
		Maze:  s.maze,
		Player: PlayerView{
			Position: s.player.Position,
			Angle:    s.player.Angle,
			Size:     s.player.Size,
		},
		Ghosts:      ghosts,
		Checkpoints: cps,
		Collected:   collected,
		Finish:      s.maze.Finish(),
		Marks:       s.Marks(),
		MarksLeft:   s.marksLeft,
	}
}

// AllCollected reports whether every checkpoint has been collected.
func (s Snapshot) AllCollected() bool {
	for _, c := range s.Collected {
		if !c {
			return false
		}
	}
	return true
}

// CollectedCount counts collected checkpoints.
func (s Snapshot) CollectedCount() int {
	n := 0
	for _, c := range s.Collected {
		if c {
			n++
		}
	}
	return n
}

// TorchRemaining is the torch burn time left in seconds.
func (s Snapshot) TorchRemaining() float64 {
	return TorchLifetime * s.Torch / TorchMax
}
