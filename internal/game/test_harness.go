package game

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/Garsondee/Labyrinth/internal/config"
)

// HeadlessSim runs a Session without a window. Tests and the headless
// report drive it with deterministic seeds and an optional autopilot.
type HeadlessSim struct {
	Session    *Session
	Log        *SessionLog
	Seed       int64
	Difficulty config.Difficulty
	TPS        int

	rows   []string
	ghosts int
	pilot  *Autopilot
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // seed, difficulty, tps, maze: applied before the session exists
	simOptPilot                      // applied once the session is built
)

// SimOption is a builder function applied to a HeadlessSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*HeadlessSim)
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(hs *HeadlessSim) {
		hs.Seed = seed
	}}
}

// WithDifficulty picks the generated maze preset.
func WithDifficulty(d config.Difficulty) SimOption {
	return SimOption{simOptInfra, func(hs *HeadlessSim) {
		hs.Difficulty = d
	}}
}

// WithTPS sets the tick rate.
func WithTPS(tps int) SimOption {
	return SimOption{simOptInfra, func(hs *HeadlessSim) {
		hs.TPS = tps
	}}
}

// WithMazeRows uses a hand-written maze (see ParseMaze) with the given
// number of ghosts instead of a generated one.
func WithMazeRows(ghosts int, rows ...string) SimOption {
	return SimOption{simOptInfra, func(hs *HeadlessSim) {
		hs.rows = rows
		hs.ghosts = ghosts
	}}
}

// WithAutopilot steers the player along the shortest route through every
// checkpoint to the exit.
func WithAutopilot() SimOption {
	return SimOption{simOptPilot, func(hs *HeadlessSim) {
		hs.pilot = NewAutopilot(hs.Session.Maze())
	}}
}

// NewHeadlessSim constructs a HeadlessSim from the given options in two
// ordered passes: infrastructure, then the autopilot.
func NewHeadlessSim(opts ...SimOption) (*HeadlessSim, error) {
	hs := &HeadlessSim{
		Seed:       1,
		Difficulty: config.DifficultyNormal,
		TPS:        60,
		Log:        NewSessionLog(),
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(hs)
		}
	}

	rng := rand.New(rand.NewSource(hs.Seed)) // #nosec G404 -- deterministic harness
	var err error
	if hs.rows != nil {
		var m *Maze
		if m, err = MazeFromRows(hs.rows); err != nil {
			return nil, fmt.Errorf("headless maze: %w", err)
		}
		hs.Session, err = NewSession(SessionParams{Maze: m, Ghosts: hs.ghosts, TPS: hs.TPS, Rand: rng, Log: hs.Log})
	} else {
		hs.Session, err = NewSessionForDifficulty(hs.Difficulty, hs.TPS, rng, hs.Log)
	}
	if err != nil {
		return nil, err
	}

	for _, o := range opts {
		if o.kind == simOptPilot {
			o.fn(hs)
		}
	}
	return hs, nil
}

// Step advances one tick with explicit controls, ignoring the autopilot.
func (hs *HeadlessSim) Step(c Controls) {
	hs.Session.Tick(c)
}

func (hs *HeadlessSim) tick() {
	var c Controls
	if hs.pilot != nil {
		c = hs.pilot.Controls(hs.Session.Player(), 1/float64(hs.TPS))
	}
	hs.Session.Tick(c)
}

// RunTicks advances the simulation n ticks.
func (hs *HeadlessSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		hs.tick()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (hs *HeadlessSim) RunUntil(predicate func(*HeadlessSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		hs.tick()
		if predicate(hs) {
			return hs.Session.Ticks()
		}
	}
	return -1
}

// Won reports whether the session has been won.
func Won(hs *HeadlessSim) bool {
	return hs.Session.State() == StateWin
}

// CurrentTick returns the current simulation tick.
func (hs *HeadlessSim) CurrentTick() int {
	return hs.Session.Ticks()
}

// Autopilot walks the player from cell centre to cell centre along a
// planned route: nearest uncollected checkpoint first, then the exit.
type Autopilot struct {
	route []Cell
	next  int
}

const (
	waypointRadius  = 0.15
	walkAlignDegree = 10.0
)

// NewAutopilot plans a route through m from its start cell.
func NewAutopilot(m *Maze) *Autopilot {
	cur := m.Start()
	route := []Cell{cur}
	pending := m.Checkpoints()
	for len(pending) > 0 {
		best, bestPath := -1, []Cell(nil)
		for i, cp := range pending {
			p := m.ShortestPath(cur, cp)
			if p == nil {
				continue
			}
			if best < 0 || len(p) < len(bestPath) {
				best, bestPath = i, p
			}
		}
		if best < 0 {
			break
		}
		route = append(route, bestPath[1:]...)
		cur = pending[best]
		pending = append(pending[:best], pending[best+1:]...)
	}
	if p := m.ShortestPath(cur, m.Finish()); p != nil {
		route = append(route, p[1:]...)
	}
	return &Autopilot{route: route}
}

// Route returns the planned cells.
func (a *Autopilot) Route() []Cell { return a.route }

// Done reports whether the last waypoint has been reached.
func (a *Autopilot) Done() bool { return a.next >= len(a.route) }

// Controls returns the keys to hold this tick: turn toward the waypoint and
// walk once roughly facing it.
func (a *Autopilot) Controls(p *Player, dt float64) Controls {
	for a.next < len(a.route) && a.route[a.next].Centre().Sub(p.Position).Len() < waypointRadius {
		a.next++
	}
	if a.Done() {
		return Controls{}
	}
	delta := a.route[a.next].Centre().Sub(p.Position)
	want := math.Atan2(delta.X(), delta.Y()) * 180 / math.Pi
	diff := math.Mod(want-p.Angle+540, 360) - 180

	var c Controls
	if step := p.TurnSpeed * dt; math.Abs(diff) > step {
		c.TurnLeft = diff < 0
		c.TurnRight = diff > 0
	}
	c.Forward = math.Abs(diff) < walkAlignDegree
	return c
}
