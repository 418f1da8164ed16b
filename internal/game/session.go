package game

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Garsondee/Labyrinth/internal/config"
)

// GameState is the session's top-level state. Playing only ever moves to Win.
type GameState uint8

const (
	StatePlaying GameState = iota
	StateWin
)

func (s GameState) String() string {
	if s == StateWin {
		return "win"
	}
	return "playing"
}

// MaxMarks is how many marks a player may place per session.
const MaxMarks = 10

// Controls is the held-key state the session consumes each tick.
type Controls struct {
	Forward     bool
	Back        bool
	StrafeLeft  bool
	StrafeRight bool
	TurnLeft    bool
	TurnRight   bool
}

// Preset is the maze and population for a difficulty.
type Preset struct {
	RoomsW      int
	RoomsH      int
	Checkpoints int
	Ghosts      int
}

// PresetFor returns the preset for d. Maze sizes are the classic 10/20/30
// cell grids, carved as rooms of two cells each.
func PresetFor(d config.Difficulty) Preset {
	switch d {
	case config.DifficultyEasy:
		return Preset{RoomsW: 5, RoomsH: 5, Checkpoints: 2, Ghosts: 1}
	case config.DifficultyHard:
		return Preset{RoomsW: 15, RoomsH: 15, Checkpoints: 4, Ghosts: 5}
	default:
		return Preset{RoomsW: 10, RoomsH: 10, Checkpoints: 3, Ghosts: 3}
	}
}

// SessionParams configures NewSession.
type SessionParams struct {
	Maze   *Maze
	Ghosts int
	TPS    int
	// Rand seeds the ghosts. Required.
	Rand *rand.Rand
	// Log receives session events. A fresh log is created when nil.
	Log *SessionLog
}

// Session is the game state machine: torch decay, checkpoint pickup, marks
// and the win condition. It owns the player and the ghosts.
type Session struct {
	maze   *Maze
	player *Player
	ghosts []*Ghost
	log    *SessionLog

	state     GameState
	torch     float64
	tps       int
	ticks     int
	collected map[int]bool
	marks     []Cell
	marksLeft int
	torchOut  bool
}

// NewSession starts a session on p.Maze.
func NewSession(p SessionParams) (*Session, error) {
	if p.Maze == nil {
		return nil, errors.New("session needs a maze")
	}
	if p.TPS <= 0 {
		return nil, fmt.Errorf("tps must be > 0, got %d", p.TPS)
	}
	if p.Rand == nil {
		return nil, errors.New("session needs a random source")
	}
	log := p.Log
	if log == nil {
		log = NewSessionLog()
	}
	s := &Session{
		maze:      p.Maze,
		player:    NewPlayer(p.Maze),
		log:       log,
		state:     StatePlaying,
		torch:     TorchMax,
		tps:       p.TPS,
		collected: make(map[int]bool),
		marksLeft: MaxMarks,
	}

	spawns := ghostSpawns(p.Maze)
	for i := 0; i < p.Ghosts && len(spawns) > 0; i++ {
		c := spawns[p.Rand.Intn(len(spawns))]
		g := NewGhost(p.Maze, c, rand.New(rand.NewSource(p.Rand.Int63()))) // #nosec G404 -- gameplay randomness
		s.ghosts = append(s.ghosts, g)
	}

	log.Add(0, LogSession, KeyStart,
		fmt.Sprintf("%dx%d maze, %d keys, %d ghosts", p.Maze.Width(), p.Maze.Height(),
			len(p.Maze.Checkpoints()), len(s.ghosts)), float64(len(p.Maze.Checkpoints())))
	return s, nil
}

// RandStreams derives independent generators for the session and the
// renderer from one seed, so the flicker and ghost animation do not shift
// with how much randomness maze generation consumed.
func RandStreams(seed int64) (session, renderer *rand.Rand) {
	// #nosec G404 -- gameplay randomness
	root := rand.New(rand.NewSource(seed))
	session = rand.New(rand.NewSource(root.Int63()))
	renderer = rand.New(rand.NewSource(root.Int63()))
	return session, renderer
}

// NewSessionForDifficulty generates a maze for d and starts a session on it.
func NewSessionForDifficulty(d config.Difficulty, tps int, rng *rand.Rand, log *SessionLog) (*Session, error) {
	if rng == nil {
		return nil, errors.New("session needs a random source")
	}
	preset := PresetFor(d)
	m, err := GenerateMaze(rng, preset.RoomsW, preset.RoomsH, preset.Checkpoints)
	if err != nil {
		return nil, fmt.Errorf("generate %s maze: %w", d, err)
	}
	return NewSession(SessionParams{Maze: m, Ghosts: preset.Ghosts, TPS: tps, Rand: rng, Log: log})
}

// ghostSpawns lists floor cells away from the start.
func ghostSpawns(m *Maze) []Cell {
	start := m.Start()
	var out []Cell
	for _, c := range m.EmptyCells() {
		dx, dy := c.X-start.X, c.Y-start.Y
		if dx*dx+dy*dy < 9 {
			continue
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return m.EmptyCells()
	}
	return out
}

// Tick advances the session by one fixed step of 1/TPS seconds. Nothing
// changes once the session is won except the tick counter.
func (s *Session) Tick(c Controls) {
	s.ticks++
	tps := float64(s.tps)
	elapsed := float64(s.ticks) / tps

	if s.state != StatePlaying {
		return
	}

	s.torch = TorchDecay(elapsed)
	if s.torch == 0 && !s.torchOut {
		s.torchOut = true
		s.log.Add(s.ticks, LogTorch, KeyOut, "the torch has burnt out", elapsed)
	}

	dt := 1 / tps
	for _, g := range s.ghosts {
		g.Move(dt)
	}

	if c.TurnLeft {
		s.player.Turn(-s.player.TurnSpeed * dt)
	}
	if c.TurnRight {
		s.player.Turn(s.player.TurnSpeed * dt)
	}

	step := s.player.MovementSpeed * dt
	var move mgl64.Vec2
	if c.Forward {
		move[1] += step
	}
	if c.Back {
		move[1] -= step
	}
	if c.StrafeLeft {
		move[0] -= step
	}
	if c.StrafeRight {
		move[0] += step
	}
	if move != (mgl64.Vec2{}) {
		s.player.Move(move)
	}

	s.checkProgress()
}

// checkProgress collects checkpoints under the player and detects the win.
// Both compare the floored player position with the target cell exactly.
func (s *Session) checkProgress() {
	here := CellOf(s.player.Position)
	checkpoints := s.maze.Checkpoints()
	for i, cp := range checkpoints {
		if s.collected[i] || here != cp {
			continue
		}
		s.collected[i] = true
		s.log.Add(s.ticks, LogCheckpoint, KeyCollected,
			fmt.Sprintf("key %d at %s", i+1, cp), float64(i))
	}
	if here == s.maze.Finish() && len(s.collected) == len(checkpoints) {
		s.state = StateWin
		s.log.Add(s.ticks, LogState, KeyWin,
			fmt.Sprintf("reached exit at %s", here), float64(s.ticks)/float64(s.tps))
	}
}

// PlaceMark drops a mark on the player's cell. It reports whether a mark
// was placed; it is refused after a win or once all marks are used.
func (s *Session) PlaceMark() bool {
	if s.state != StatePlaying {
		return false
	}
	if s.marksLeft <= 0 {
		s.log.Add(s.ticks, LogMark, KeyRefused, "no marks left", 0)
		return false
	}
	c := CellOf(s.player.Position)
	s.marks = append(s.marks, c)
	s.marksLeft--
	s.log.Add(s.ticks, LogMark, KeyPlaced,
		fmt.Sprintf("mark at %s, %d left", c, s.marksLeft), float64(s.marksLeft))
	return true
}

// State is the current game state.
func (s *Session) State() GameState { return s.state }

// Torch is the decayed torch level; it freezes on win.
func (s *Session) Torch() float64 { return s.torch }

// Ticks is the number of ticks simulated so far.
func (s *Session) Ticks() int { return s.ticks }

// TPS is the fixed tick rate.
func (s *Session) TPS() int { return s.tps }

// Elapsed is simulated time in seconds.
func (s *Session) Elapsed() float64 { return float64(s.ticks) / float64(s.tps) }

// MarksLeft is how many marks can still be placed.
func (s *Session) MarksLeft() int { return s.marksLeft }

// Marks returns placed marks in placement order.
func (s *Session) Marks() []Cell {
	out := make([]Cell, len(s.marks))
	copy(out, s.marks)
	return out
}

// Collected reports whether checkpoint i has been collected.
func (s *Session) Collected(i int) bool { return s.collected[i] }

// CollectedCount is the number of collected checkpoints.
func (s *Session) CollectedCount() int { return len(s.collected) }

// Maze is the session's maze.
func (s *Session) Maze() *Maze { return s.maze }

// Player exposes the player for collaborators that steer it directly.
func (s *Session) Player() *Player { return s.player }

// Ghosts returns the session's ghosts.
func (s *Session) Ghosts() []*Ghost { return s.ghosts }

// Log is the session's event log.
func (s *Session) Log() *SessionLog { return s.log }
