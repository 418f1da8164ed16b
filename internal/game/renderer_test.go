package game

import (
	"errors"
	"image/color"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/colornames"

	"github.com/Garsondee/Labyrinth/internal/render"
)

type fakeTexture struct {
	name string
	w, h int
}

func (t *fakeTexture) Width() int  { return t.w }
func (t *fakeTexture) Height() int { return t.h }

type fakeFont struct{ size float64 }

func (f *fakeFont) Measure(s string) (float64, float64) {
	return float64(len(s)) * f.size / 2, f.size
}

type fakeAssets struct {
	missing string
	paths   []string
}

func (a *fakeAssets) LoadTexture(path string) (render.Texture, error) {
	a.paths = append(a.paths, path)
	name := filepath.Base(path)
	if name == a.missing {
		return nil, errors.New("open " + path + ": no such file")
	}
	if name == TextureGhostSide || name == TextureGhostTop {
		return &fakeTexture{name: name, w: 4 * 32, h: 32}, nil
	}
	return &fakeTexture{name: name, w: 64, h: 64}, nil
}

func (a *fakeAssets) LoadFont(size float64) (render.Font, error) {
	return &fakeFont{size: size}, nil
}

type drawCall struct {
	tex     string
	verts   []render.Vertex
	indices []uint16
}

type textCall struct {
	s    string
	x, y float64
}

type fakeSurface struct {
	w, h  int
	fills int
	draws []drawCall
	texts []textCall
}

func (s *fakeSurface) Size() (int, int)   { return s.w, s.h }
func (s *fakeSurface) Fill(_ color.Color) { s.fills++ }

func (s *fakeSurface) DrawTriangles(vs []render.Vertex, idx []uint16, tex render.Texture) {
	name := ""
	if tex != nil {
		name = tex.(*fakeTexture).name
	}
	s.draws = append(s.draws, drawCall{
		tex:     name,
		verts:   append([]render.Vertex(nil), vs...),
		indices: append([]uint16(nil), idx...),
	})
}

func (s *fakeSurface) DrawText(str string, _ render.Font, x, y float64, _ color.Color) {
	s.texts = append(s.texts, textCall{s: str, x: x, y: y})
}

func (s *fakeSurface) hasText(sub string) bool {
	for _, tc := range s.texts {
		if strings.Contains(tc.s, sub) {
			return true
		}
	}
	return false
}

func (s *fakeSurface) drawIndex(tex string) []int {
	var out []int
	for i, d := range s.draws {
		if d.tex == tex {
			out = append(out, i)
		}
	}
	return out
}

func newTestRenderer(t *testing.T) *FrameRenderer {
	t.Helper()
	r, err := NewFrameRenderer(&fakeAssets{}, "assets", rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	return r
}

func TestNewFrameRenderer_LoadsFixedSet(t *testing.T) {
	a := &fakeAssets{}
	r, err := NewFrameRenderer(a, "assets", rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	if len(a.paths) != len(TextureFiles) {
		t.Fatalf("loaded %d textures, want %d", len(a.paths), len(TextureFiles))
	}
	if want := filepath.Join("assets", "textures", TextureWall); a.paths[0] != want {
		t.Fatalf("first path %q, want %q", a.paths[0], want)
	}
	if r.GhostFrames() != 4 {
		t.Fatalf("ghost frames = %d, want 4", r.GhostFrames())
	}
}

func TestNewFrameRenderer_MissingAssetIsFatal(t *testing.T) {
	_, err := NewFrameRenderer(&fakeAssets{missing: TextureMark}, "assets", rand.New(rand.NewSource(1)))
	if err == nil || !strings.Contains(err.Error(), TextureMark) {
		t.Fatalf("expected error naming %s, got %v", TextureMark, err)
	}
}

func TestBuildMazeMesh_CeilingOnlyInFirstPerson(t *testing.T) {
	m, _ := MazeFromRows(winMaze)
	count := func(mode CameraMode) (ceil, floor int) {
		for _, q := range BuildMazeMesh(m, mgl64.Vec2{1.5, 5.5}, mode) {
			switch q.Kind {
			case SurfaceCeiling:
				ceil++
			case SurfaceFloor:
				floor++
			}
		}
		return
	}
	ceilFP, floorFP := count(CameraFirstPerson)
	ceilTP, floorTP := count(CameraThirdPerson)
	if ceilFP == 0 || ceilFP != floorFP {
		t.Fatalf("first person: %d ceiling quads for %d floor quads", ceilFP, floorFP)
	}
	if ceilTP != 0 || floorTP != floorFP {
		t.Fatalf("third person: %d ceiling quads, %d floor quads", ceilTP, floorTP)
	}
	if floorFP != 4*len(m.EmptyCells()) {
		t.Fatalf("floor quads %d, want 4 per floor cell (%d)", floorFP, 4*len(m.EmptyCells()))
	}
}

func TestTransparentObjects_ColoursAndCollected(t *testing.T) {
	s := newTestSession(t, winMaze, 1)
	snap := s.Snapshot()
	objs := TransparentObjects(snap)
	if len(objs) != 1+2+1 {
		t.Fatalf("expected exit, 2 keys and a ghost, got %v", ids(objs))
	}
	if objs[0].Icon.Color != colornames.Red {
		t.Fatal("exit should be red before all keys are collected")
	}
	if objs[1].Icon.Color != colornames.Orangered || objs[2].Icon.Color != colornames.Aquamarine {
		t.Fatal("checkpoint colours out of order")
	}

	visit(s, Cell{1, 1})
	visit(s, Cell{3, 3})
	s.PlaceMark()
	objs = TransparentObjects(s.Snapshot())
	if objs[0].Icon.Color != colornames.Forestgreen {
		t.Fatal("exit should turn green once all keys are collected")
	}
	var kinds []string
	for _, o := range objs {
		kinds = append(kinds, o.ID)
	}
	if got := strings.Join(kinds, ","); got != "exit,mark0,ghost0" {
		t.Fatalf("objects = %s, want exit,mark0,ghost0", got)
	}
	if objs[1].Icon.Color != colornames.Mediumorchid {
		t.Fatal("marks should be medium orchid")
	}
}

func TestFrameRenderer_TransparentInterleavesWithMaze(t *testing.T) {
	s := newTestSession(t, winMaze, 0)
	s.Player().Angle = 90 // looking down the corridor at the exit
	r := newTestRenderer(t)
	snap := s.Snapshot()
	r.Tick(snap)

	surf := &fakeSurface{w: 640, h: 480}
	r.Render(surf, snap)

	exits := surf.drawIndex(TextureExit)
	walls := surf.drawIndex(TextureWall)
	if len(exits) != 1 {
		t.Fatalf("expected the exit icon drawn once, got %d", len(exits))
	}
	if len(walls) < 2 {
		t.Fatalf("expected maze drawn before and after the icon, got %d wall calls", len(walls))
	}
	if walls[0] > exits[0] || walls[len(walls)-1] < exits[0] {
		t.Fatalf("exit at call %d not between far walls (%d) and near walls (%d)", exits[0], walls[0], walls[len(walls)-1])
	}
	if !surf.hasText("Keys 0/2") || !surf.hasText("Marks 10") {
		t.Fatalf("HUD missing: %+v", surf.texts)
	}
}

func TestFrameRenderer_PlayerArrowOnlyInThirdPerson(t *testing.T) {
	s := newTestSession(t, winMaze, 0)
	r := newTestRenderer(t)
	snap := s.Snapshot()

	fp := &fakeSurface{w: 640, h: 480}
	r.Render(fp, snap)
	if n := len(fp.drawIndex("")); n != 0 {
		t.Fatalf("first person drew %d untextured calls", n)
	}

	if r.ToggleCamera() != CameraThirdPerson {
		t.Fatal("toggle should switch to third person")
	}
	tp := &fakeSurface{w: 640, h: 480}
	r.Render(tp, snap)
	arrows := tp.drawIndex("")
	if len(arrows) != 1 {
		t.Fatalf("third person drew %d untextured calls, want the player arrow", len(arrows))
	}
	v := tp.draws[arrows[0]].verts[0]
	if v.ColorA != playerAlpha || v.ColorG != 0 {
		t.Fatalf("arrow vertex colour %+v, want translucent red", v)
	}
}

func TestFrameRenderer_WinFadeAndLabel(t *testing.T) {
	s := newTestSession(t, []string{
		"#####",
		"#S.F#",
		"#####",
	}, 0)
	r := newTestRenderer(t)
	labelTick := -1
	startTick := -1
	for i := 0; i < 200; i++ {
		if i == 10 {
			s.Player().Position = Cell{3, 1}.Centre()
		}
		s.Tick(Controls{})
		snap := s.Snapshot()
		r.Tick(snap)
		surf := &fakeSurface{w: 800, h: 600}
		r.Render(surf, snap)
		if snap.State == StateWin && startTick < 0 {
			startTick = r.Ticks()
		}
		if labelTick < 0 && surf.hasText(winLabel) {
			labelTick = r.Ticks()
		}
		if labelTick >= 0 && !surf.hasText(winLabel) {
			t.Fatalf("label vanished at renderer tick %d", r.Ticks())
		}
	}
	if startTick < 0 {
		t.Fatal("never won")
	}
	if r.Fade().StartTick() != startTick {
		t.Fatalf("fade started at %d, want first win frame %d", r.Fade().StartTick(), startTick)
	}
	if labelTick != startTick+FadeLength {
		t.Fatalf("label first shown at %d, want %d", labelTick, startTick+FadeLength)
	}
}

func TestFrameRenderer_WinLabelCentred(t *testing.T) {
	r := newTestRenderer(t)
	s := newTestSession(t, winMaze, 0)
	snap := s.Snapshot()
	snap.State = StateWin
	r.Render(&fakeSurface{w: 800, h: 600}, snap)
	for i := 0; i < FadeLength; i++ {
		r.Tick(snap)
	}
	surf := &fakeSurface{w: 800, h: 600}
	r.Render(surf, snap)
	for _, tc := range surf.texts {
		if tc.s != winLabel {
			continue
		}
		w := float64(len(winLabel)) * winFontSize / 2
		if tc.x != (800-w)/2 || tc.y != (600-winFontSize)/2 {
			t.Fatalf("label at (%v,%v), not centred", tc.x, tc.y)
		}
		return
	}
	t.Fatal("label not drawn after the fade")
}

func TestFrameRenderer_TickFlickerAndGhostFrame(t *testing.T) {
	r := newTestRenderer(t)
	snap := Snapshot{State: StatePlaying, Torch: 80}
	changed := false
	for i := 0; i < 1000; i++ {
		r.Tick(snap)
		if r.Torch() < 0 || r.Torch() > TorchMax {
			t.Fatalf("displayed torch %v out of range", r.Torch())
		}
		if r.GhostFrame() < 0 || r.GhostFrame() >= r.GhostFrames() {
			t.Fatalf("ghost frame %d out of range", r.GhostFrame())
		}
		changed = changed || r.GhostFrame() != 0
	}
	if !changed {
		t.Fatal("ghost frame never changed in 1000 ticks")
	}

	snap.State = StateWin
	snap.Torch = 40
	r.Tick(snap)
	if r.Torch() != 40 {
		t.Fatalf("displayed torch after win = %v, want frozen 40", r.Torch())
	}
}

func TestSceneLight(t *testing.T) {
	dark := SceneLight(0)
	if dark != (mgl64.Vec3{globalAmbient, globalAmbient, globalAmbient}) {
		t.Fatalf("torch out light = %v", dark)
	}
	full := SceneLight(100)
	if full.X() != 1 {
		t.Fatalf("full torch red channel = %v, want saturated", full.X())
	}
	low := SceneLight(10)
	if !(low.X() < full.X() && low.X() > dark.X()) {
		t.Fatalf("light not monotonic: %v %v %v", dark, low, full)
	}
	if FogFactor(0.5, 0) != 1 || FogFactor(0.5, 4) >= FogFactor(0.1, 4) {
		t.Fatal("fog should be denser in first person")
	}
}

func TestIconSize_Pulse(t *testing.T) {
	for tick := 0; tick < 200; tick++ {
		s := IconSize(tick)
		// The pulse spans half of [min,max] below max, down to max-(max-min)*3/4.
		if s > iconMaxSize+1e-12 || s < iconMaxSize-(iconMaxSize-iconMinSize)*0.75-1e-12 {
			t.Fatalf("tick %d: icon size %v out of range", tick, s)
		}
	}
}

func TestStripFrame_WrapsShortStrips(t *testing.T) {
	strip := &fakeTexture{w: 128, h: 32}
	if x0, w := stripFrame(strip, 2); x0 != 64 || w != 32 {
		t.Fatalf("frame 2 of a 4-frame strip: x0=%v w=%v", x0, w)
	}
	single := &fakeTexture{w: 32, h: 32}
	if x0, w := stripFrame(single, 3); x0 != 0 || w != 32 {
		t.Fatalf("single-frame texture should always use frame 0, got x0=%v w=%v", x0, w)
	}
}

func TestGhostModel_TopDownIgnoresHeading(t *testing.T) {
	pos := mgl64.Vec2{3, 4}
	model := func(mode CameraMode, angle float64) mgl64.Mat4 {
		f := &frame{
			snap: Snapshot{Player: PlayerView{Angle: angle}},
			cam:  Camera{Mode: mode},
		}
		return f.ghostModel(pos)
	}
	if a, b := model(CameraThirdPerson, 0), model(CameraThirdPerson, 135); a != b {
		t.Fatalf("third-person ghost turned with the player:\n%v\n%v", a, b)
	}
	if a, b := model(CameraFirstPerson, 0), model(CameraFirstPerson, 135); a == b {
		t.Fatal("first-person ghost should face the camera")
	}
	centre := model(CameraThirdPerson, 90).Mul4x1(mgl64.Vec4{0, 0, 0, 1})
	if centre != (mgl64.Vec4{3.5, 4.5, wallHeight / 2, 1}) {
		t.Fatalf("ghost anchored at %v, want cell centre", centre)
	}
}
