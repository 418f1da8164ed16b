package game

import (
	"log"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/Labyrinth/internal/render"
)

// Game wires the session, the renderer and the keyboard into the engine's
// Update/Draw loop.
type Game struct {
	session  *Session
	renderer *FrameRenderer
	input    render.Input
	feed     *EventFeed
	info     ReportInfo
	snap     Snapshot

	width, height int
	prevKeys      map[render.Key]bool

	// copyText places the session report on the clipboard.
	copyText func(string) error
}

// Options configures New.
type Options struct {
	Session  *Session
	Renderer *FrameRenderer
	Input    render.Input
	Info     ReportInfo
	Width    int
	Height   int
	// Clipboard overrides the system clipboard (tests).
	Clipboard func(string) error
}

// New creates a Game. The session log feeds the HUD event feed from here on.
func New(opts Options) *Game {
	g := &Game{
		session:  opts.Session,
		renderer: opts.Renderer,
		input:    opts.Input,
		feed:     NewEventFeed(),
		info:     opts.Info,
		width:    opts.Width,
		height:   opts.Height,
		prevKeys: make(map[render.Key]bool),
		copyText: opts.Clipboard,
	}
	if g.copyText == nil {
		g.copyText = clipboard.WriteAll
	}
	for _, e := range g.session.Log().Entries() {
		g.feed.Observe(e)
	}
	g.session.Log().Subscribe(g.feed.Observe)
	g.renderer.SetFeed(g.feed)
	g.snap = g.session.Snapshot()
	return g
}

// Update runs one tick: edge-triggered keys first, then the session, then
// the renderer's presentation state.
func (g *Game) Update() error {
	if g.handleInput() {
		return render.ErrTerminated
	}
	g.session.Tick(g.controls())
	g.snap = g.session.Snapshot()
	g.renderer.Tick(g.snap)
	return nil
}

func (g *Game) controls() Controls {
	in := g.input
	return Controls{
		Forward:     in.IsKeyPressed(render.KeyW) || in.IsKeyPressed(render.KeyUp),
		Back:        in.IsKeyPressed(render.KeyS) || in.IsKeyPressed(render.KeyDown),
		StrafeLeft:  in.IsKeyPressed(render.KeyA),
		StrafeRight: in.IsKeyPressed(render.KeyD),
		TurnLeft:    in.IsKeyPressed(render.KeyLeft),
		TurnRight:   in.IsKeyPressed(render.KeyRight),
	}
}

// handleInput processes one-shot keypresses (edge-triggered). It reports
// whether the player asked to quit.
func (g *Game) handleInput() bool {
	currentKeys := map[render.Key]bool{}
	pressed := func(k render.Key) bool {
		currentKeys[k] = g.input.IsKeyPressed(k)
		return currentKeys[k] && !g.prevKeys[k]
	}
	defer func() { g.prevKeys = currentKeys }()

	if pressed(render.KeyEscape) {
		return true
	}

	// C: camera toggle, F: place a mark. Both only while playing.
	if pressed(render.KeyC) && g.session.State() == StatePlaying {
		mode := g.renderer.ToggleCamera()
		g.session.Log().Add(g.session.Ticks(), LogCamera, KeyToggle, mode.String(), float64(mode))
	}
	if pressed(render.KeyF) {
		g.session.PlaceMark()
	}

	// F9: copy the session report.
	if pressed(render.KeyF9) {
		if err := g.copyText(g.Report()); err != nil {
			log.Printf("copy report: %v", err)
		} else {
			g.feed.Add(g.session.Ticks(), "Report copied to clipboard")
		}
	}
	return false
}

// Report builds the session report.
func (g *Game) Report() string {
	return SessionReport(g.info, g.session)
}

// Draw renders the latest snapshot.
func (g *Game) Draw(screen render.Surface) {
	g.renderer.Render(screen, g.snap)
}

// Layout uses the configured logical size, falling back to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.width > 0 && g.height > 0 {
		return g.width, g.height
	}
	return outsideWidth, outsideHeight
}

// Session exposes the running session.
func (g *Game) Session() *Session { return g.session }

// Renderer exposes the frame renderer.
func (g *Game) Renderer() *FrameRenderer { return g.renderer }

// Feed exposes the HUD event feed.
func (g *Game) Feed() *EventFeed { return g.feed }
