package game

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"path/filepath"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/colornames"

	"github.com/Garsondee/Labyrinth/internal/render"
)

// Texture files under <assetDir>/textures.
const (
	TextureWall      = "wall.png"
	TextureExit      = "exit.png"
	TextureKey       = "key.png"
	TextureMark      = "mark.png"
	TextureGhostSide = "ghost.png"
	TextureGhostTop  = "ghost-from-top.png"
)

// TextureFiles lists the fixed texture set in load order.
var TextureFiles = []string{
	TextureWall, TextureExit, TextureKey, TextureMark, TextureGhostSide, TextureGhostTop,
}

const (
	iconMinSize = 0.35
	iconMaxSize = 0.40
	iconAlpha   = 0.7
	ghostSize   = 0.7

	ghostFrameChance = 5 // percent per tick

	winLabel     = "You win!"
	winFontSize  = 50
	hudFontSize  = 16
	playerAlpha  = 0.7
	maxCheckKeys = 4
)

var checkpointColors = [maxCheckKeys]color.RGBA{
	colornames.Orangered, colornames.Aquamarine, colornames.Dodgerblue, colornames.Yellow,
}

// FrameRenderer draws a Snapshot. It owns presentation state only: the
// displayed torch value, the ghost animation frame, the camera mode and
// the win fade.
type FrameRenderer struct {
	wall, exit, key, mark render.Texture
	ghostSide, ghostTop   render.Texture
	winFont, hudFont      render.Font

	rng         *rand.Rand
	flicker     *Flicker
	torch       float64
	ticks       int
	ghostFrames int
	ghostFrame  int
	camera      CameraMode
	fade        WinFade
	feed        *EventFeed

	batch triangleBatch
}

// NewFrameRenderer loads the fixed asset set. Any missing texture or font
// is an error; the renderer cannot run without them.
func NewFrameRenderer(assets render.AssetLoader, assetDir string, rng *rand.Rand) (*FrameRenderer, error) {
	r := &FrameRenderer{
		rng:     rng,
		flicker: NewFlicker(rng),
		camera:  CameraFirstPerson,
	}
	slots := map[string]*render.Texture{
		TextureWall:      &r.wall,
		TextureExit:      &r.exit,
		TextureKey:       &r.key,
		TextureMark:      &r.mark,
		TextureGhostSide: &r.ghostSide,
		TextureGhostTop:  &r.ghostTop,
	}
	for _, name := range TextureFiles {
		tex, err := assets.LoadTexture(filepath.Join(assetDir, "textures", name))
		if err != nil {
			return nil, fmt.Errorf("renderer assets: %w", err)
		}
		*slots[name] = tex
	}
	var err error
	if r.winFont, err = assets.LoadFont(winFontSize); err != nil {
		return nil, fmt.Errorf("renderer assets: %w", err)
	}
	if r.hudFont, err = assets.LoadFont(hudFontSize); err != nil {
		return nil, fmt.Errorf("renderer assets: %w", err)
	}
	r.ghostFrames = stripFrames(r.ghostSide)
	return r, nil
}

// stripFrames is the number of square frames in a horizontal strip.
func stripFrames(tex render.Texture) int {
	if h := tex.Height(); h > 0 {
		return max(tex.Width()/h, 1)
	}
	return 1
}

// stripFrame returns the texel span [x0, x0+w) of frame i in tex. Strips
// shorter than the animation wrap around.
func stripFrame(tex render.Texture, i int) (x0, w float64) {
	n := stripFrames(tex)
	w = float64(tex.Width()) / float64(n)
	return float64(i%n) * w, w
}

// SetFeed attaches the event feed shown in the HUD.
func (r *FrameRenderer) SetFeed(f *EventFeed) { r.feed = f }

// CameraMode is the current camera mode.
func (r *FrameRenderer) CameraMode() CameraMode { return r.camera }

// ToggleCamera switches between first and third person.
func (r *FrameRenderer) ToggleCamera() CameraMode {
	r.camera = r.camera.Toggle()
	return r.camera
}

// Torch is the displayed (flickered) torch value.
func (r *FrameRenderer) Torch() float64 { return r.torch }

// GhostFrame is the current ghost animation frame.
func (r *FrameRenderer) GhostFrame() int { return r.ghostFrame }

// GhostFrames is the number of frames in the ghost strip.
func (r *FrameRenderer) GhostFrames() int { return r.ghostFrames }

// Ticks is the number of renderer ticks so far.
func (r *FrameRenderer) Ticks() int { return r.ticks }

// Fade exposes the win fade state.
func (r *FrameRenderer) Fade() *WinFade { return &r.fade }

// Tick advances presentation state once per simulation tick: the torch
// flicker (only while playing) and the ghost animation frame.
func (r *FrameRenderer) Tick(snap Snapshot) {
	r.ticks++
	r.torch = r.flicker.Step(snap.Torch, snap.State == StatePlaying)
	if r.rng.Intn(100) < ghostFrameChance {
		r.ghostFrame = r.rng.Intn(r.ghostFrames)
	}
}

// IconSize is the pulsing billboard size at renderer tick t.
func IconSize(t int) float64 {
	return (iconMaxSize-iconMinSize)/2*(math.Sin(float64(t)/10)/2-1) + iconMaxSize
}

// TransparentObjects lists the frame's alpha-blended objects: the exit,
// uncollected checkpoints, marks and ghosts.
func TransparentObjects(snap Snapshot) []TransparentObject {
	exitColor := colornames.Red
	if snap.AllCollected() {
		exitColor = colornames.Forestgreen
	}
	objs := []TransparentObject{{
		ID:       "exit",
		Position: snap.Finish.Vec2(),
		Kind:     TransparentIcon,
		Icon:     IconPayload{Texture: IconExit, Color: exitColor},
	}}
	for i, cp := range snap.Checkpoints {
		if snap.Collected[i] {
			continue
		}
		objs = append(objs, TransparentObject{
			ID:       fmt.Sprintf("key%d", i),
			Position: cp.Vec2(),
			Kind:     TransparentIcon,
			Icon:     IconPayload{Texture: IconCheckpoint, Color: checkpointColors[i%maxCheckKeys]},
		})
	}
	for i, m := range snap.Marks {
		objs = append(objs, TransparentObject{
			ID:       fmt.Sprintf("mark%d", i),
			Position: m.Vec2(),
			Kind:     TransparentIcon,
			Icon:     IconPayload{Texture: IconMark, Color: colornames.Mediumorchid},
		})
	}
	for i, g := range snap.Ghosts {
		objs = append(objs, TransparentObject{
			ID:       fmt.Sprintf("ghost%d", i),
			Position: g,
			Kind:     TransparentGhost,
			Ghost:    GhostPayload{Index: i},
		})
	}
	return objs
}

// Render draws one frame of snap onto s.
func (r *FrameRenderer) Render(s render.Surface, snap Snapshot) {
	w, h := s.Size()
	s.Fill(color.Black)
	r.batch.reset(s)

	eye := EyePosition(snap.Player.Position, snap.Player.Size.Z())
	f := &frame{
		r:     r,
		snap:  snap,
		cam:   NewCamera(r.camera, eye, snap.Player.Angle, w, h),
		shade: litShader(SceneLight(r.torch), FogDensity(r.camera)),
	}
	f.prepareOpaque()

	Dispatch(Compose(snap.Player.Position, TransparentObjects(snap)), f)
	f.drawOpaqueFartherThan(-1)

	if r.camera == CameraThirdPerson {
		f.drawPlayer()
	}
	r.batch.flush()

	r.drawHUD(s, snap)

	if snap.State == StateWin {
		r.drawWinScreen(s, w, h)
	}
}

// frame carries per-frame state while drawing.
type frame struct {
	r     *FrameRenderer
	snap  Snapshot
	cam   Camera
	shade shader

	opaque []Quad
	dist   []float64 // parallel to opaque, descending
	next   int
}

// prepareOpaque builds the maze mesh and orders it far to near. With no
// depth buffer, nearer faces must be painted last.
func (f *frame) prepareOpaque() {
	player := f.snap.Player.Position
	quads := BuildMazeMesh(f.snap.Maze, player, f.cam.Mode)
	type keyed struct {
		q Quad
		d float64
	}
	ks := make([]keyed, len(quads))
	for i, q := range quads {
		c := q.Centre()
		ks[i] = keyed{q, mgl64.Vec2{c.X(), c.Y()}.Sub(player).Len()}
	}
	slices.SortStableFunc(ks, func(a, b keyed) int {
		switch {
		case a.d > b.d:
			return -1
		case a.d < b.d:
			return 1
		}
		return 0
	})
	f.opaque = make([]Quad, len(ks))
	f.dist = make([]float64, len(ks))
	for i, k := range ks {
		f.opaque[i] = k.q
		f.dist[i] = k.d
	}
}

// drawOpaqueFartherThan paints pending maze quads farther than d from the
// player. A negative d paints everything left.
func (f *frame) drawOpaqueFartherThan(d float64) {
	texW, texH := float64(f.r.wall.Width()), float64(f.r.wall.Height())
	for ; f.next < len(f.opaque); f.next++ {
		if d >= 0 && f.dist[f.next] <= d {
			return
		}
		q := f.opaque[f.next]
		uv := make([]mgl64.Vec2, 4)
		for i, t := range q.UV {
			uv[i] = mgl64.Vec2{t.X() * texW, t.Y() * texH}
		}
		f.r.batch.addPolygon(f.r.wall, f.cam.projectPolygon(q.Pos[:], uv, f.shade))
	}
}

// objectDepth is the distance used to interleave a transparent object with
// the maze: its cell centre.
func (f *frame) objectDepth(obj TransparentObject) float64 {
	return obj.Position.Add(mgl64.Vec2{0.5, 0.5}).Sub(f.snap.Player.Position).Len()
}

// anchor places an object in the middle of its cell at half wall height.
func anchor(pos mgl64.Vec2) mgl64.Mat4 {
	return mgl64.Translate3D(pos.X()+0.5, pos.Y()+0.5, wallHeight/2)
}

var layFlat = mgl64.HomogRotate3DX(mgl64.DegToRad(-90))

// billboard returns the model transform for an object anchored at pos:
// turned to face the camera, and laid flat in third person.
func (f *frame) billboard(pos mgl64.Vec2) mgl64.Mat4 {
	m := anchor(pos).Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(-f.snap.Player.Angle)))
	if f.cam.Mode == CameraThirdPerson {
		m = m.Mul4(layFlat)
	}
	return m
}

// ghostModel faces the camera in first person. Seen from above the sprite
// keeps its orientation in the world.
func (f *frame) ghostModel(pos mgl64.Vec2) mgl64.Mat4 {
	if f.cam.Mode == CameraThirdPerson {
		return anchor(pos).Mul4(layFlat)
	}
	return f.billboard(pos)
}

func transform(m mgl64.Mat4, local []mgl64.Vec3) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(local))
	for i, p := range local {
		out[i] = m.Mul4x1(p.Vec4(1)).Vec3()
	}
	return out
}

func (f *frame) iconTexture(t IconTexture) render.Texture {
	switch t {
	case IconExit:
		return f.r.exit
	case IconCheckpoint:
		return f.r.key
	default:
		return f.r.mark
	}
}

// DrawIcon draws a pulsing, unlit, unfogged icon billboard.
func (f *frame) DrawIcon(obj TransparentObject) {
	f.drawOpaqueFartherThan(f.objectDepth(obj))

	size := IconSize(f.r.ticks)
	half := size / 2
	tex := f.iconTexture(obj.Icon.Texture)
	tw, th := float64(tex.Width()), float64(tex.Height())
	world := transform(f.billboard(obj.Position), []mgl64.Vec3{
		{-half, 0, -half}, {-half, 0, half}, {half, 0, half}, {half, 0, -half},
	})
	uv := []mgl64.Vec2{{0, th}, {0, 0}, {tw, 0}, {tw, th}}
	f.r.batch.addPolygon(tex, f.cam.projectPolygon(world, uv, flatShader(obj.Icon.Color, iconAlpha)))
}

// DrawGhost draws the current animation frame of a ghost: a bent strip of
// three panels in first person, a flat sprite seen from above otherwise.
func (f *frame) DrawGhost(obj TransparentObject) {
	f.drawOpaqueFartherThan(f.objectDepth(obj))

	m := f.ghostModel(obj.Position)
	white := flatShader(colornames.White, 1)
	const s = ghostSize

	if f.cam.Mode == CameraFirstPerson {
		tex := f.r.ghostSide
		x0, frameW := stripFrame(tex, f.r.ghostFrame)
		th := float64(tex.Height())
		// Columns of the strip, left to right: local x, local y, texture u.
		cols := [4][3]float64{
			{-s / 2, s / 2, x0},
			{-s / 4, 0, x0 + frameW*0.25},
			{s / 4, 0, x0 + frameW*0.75},
			{s / 2, s / 2, x0 + frameW},
		}
		for i := 0; i < 3; i++ {
			a, b := cols[i], cols[i+1]
			world := transform(m, []mgl64.Vec3{
				{a[0], a[1], s / 2}, {b[0], b[1], s / 2}, {b[0], b[1], -s / 2}, {a[0], a[1], -s / 2},
			})
			uv := []mgl64.Vec2{{a[2], 0}, {b[2], 0}, {b[2], th}, {a[2], th}}
			f.r.batch.addPolygon(tex, f.cam.projectPolygon(world, uv, white))
		}
		return
	}

	tex := f.r.ghostTop
	x0, frameW := stripFrame(tex, f.r.ghostFrame)
	th := float64(tex.Height())
	world := transform(m, []mgl64.Vec3{
		{-s / 2, 0, -s / 2}, {-s / 2, 0, s / 2}, {s / 2, 0, s / 2}, {s / 2, 0, -s / 2},
	})
	uv := []mgl64.Vec2{{x0, th}, {x0, 0}, {x0 + frameW, 0}, {x0 + frameW, th}}
	f.r.batch.addPolygon(tex, f.cam.projectPolygon(world, uv, white))
}

// drawPlayer draws the third-person arrow marker at eye height.
func (f *frame) drawPlayer() {
	p := f.snap.Player
	eye := EyePosition(p.Position, p.Size.Z())
	m := mgl64.Translate3D(eye.X(), eye.Y(), eye.Z()).
		Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(-p.Angle)))
	sx, sy := p.Size.X(), p.Size.Y()
	world := transform(m, []mgl64.Vec3{
		{0, sy / 2, 0}, {sx / 2, -sy / 2, 0}, {0, -sy / 4, 0}, {-sx / 2, -sy / 2, 0},
	})
	uv := make([]mgl64.Vec2, len(world))
	shade := fogShader(colornames.Red, playerAlpha, FogDensity(f.cam.Mode))
	f.r.batch.addPolygon(nil, f.cam.projectPolygon(world, uv, shade))
}

// drawWinScreen darkens the frame over FadeLength ticks, then shows the
// label for every later frame.
func (r *FrameRenderer) drawWinScreen(s render.Surface, w, h int) {
	r.fade.Observe(r.ticks)
	a := float32(r.fade.Alpha(r.ticks))
	fw, fh := float32(w), float32(h)
	quad := []render.Vertex{
		{DstX: 0, DstY: 0, ColorA: a},
		{DstX: fw, DstY: 0, ColorA: a},
		{DstX: fw, DstY: fh, ColorA: a},
		{DstX: 0, DstY: fh, ColorA: a},
	}
	s.DrawTriangles(quad, []uint16{0, 1, 2, 0, 2, 3}, nil)

	if r.fade.LabelVisible(r.ticks) {
		lw, lh := r.winFont.Measure(winLabel)
		s.DrawText(winLabel, r.winFont, (float64(w)-lw)/2, (float64(h)-lh)/2, color.White)
	}
}
