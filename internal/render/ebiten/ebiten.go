// Package ebiten implements the render contracts on top of Ebitengine.
package ebiten

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/Garsondee/Labyrinth/internal/render"
)

var whiteImage = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img
}()

// whiteSubImage is sampled for untextured fills; its centre texel is opaque white.
var whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)

// Texture wraps an ebiten.Image loaded from disk.
type Texture struct {
	img *ebiten.Image
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.img.Bounds().Dx() }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.img.Bounds().Dy() }

// Font is a Go text face at a fixed size.
type Font struct {
	face *text.GoTextFace
}

// Measure returns the size of s rendered in this face.
func (f *Font) Measure(s string) (float64, float64) {
	return text.Measure(s, f.face, f.face.Size)
}

// Surface wraps the frame's ebiten.Image.
type Surface struct {
	img *ebiten.Image
	// scratch avoids an allocation per draw call.
	scratch []ebiten.Vertex
}

// WrapImage wraps an existing ebiten.Image as a render.Surface.
func WrapImage(img *ebiten.Image) *Surface {
	return &Surface{img: img}
}

// Size returns the surface size in pixels.
func (s *Surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Fill fills the whole surface.
func (s *Surface) Fill(clr color.Color) {
	s.img.Fill(clr)
}

// DrawTriangles converts the vertices and draws them with the texture, or
// with a white texel when tex is nil.
func (s *Surface) DrawTriangles(vertices []render.Vertex, indices []uint16, tex render.Texture) {
	if len(vertices) == 0 || len(indices) == 0 {
		return
	}
	src := whiteSubImage
	if tex != nil {
		src = tex.(*Texture).img
	}
	s.scratch = s.scratch[:0]
	for _, v := range vertices {
		ev := ebiten.Vertex{
			DstX:   v.DstX,
			DstY:   v.DstY,
			SrcX:   v.SrcX,
			SrcY:   v.SrcY,
			ColorR: v.ColorR,
			ColorG: v.ColorG,
			ColorB: v.ColorB,
			ColorA: v.ColorA,
		}
		if tex == nil {
			ev.SrcX, ev.SrcY = 1, 1
		}
		s.scratch = append(s.scratch, ev)
	}
	s.img.DrawTriangles(s.scratch, indices, src, &ebiten.DrawTrianglesOptions{})
}

// DrawText draws s with its top-left corner at (x, y).
func (s *Surface) DrawText(str string, font render.Font, x, y float64, clr color.Color) {
	f := font.(*Font)
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(s.img, str, f.face, op)
}

// AssetLoader loads textures from disk and faces from the embedded Go font.
type AssetLoader struct {
	fontSource *text.GoTextFaceSource
}

// NewAssetLoader creates an AssetLoader.
func NewAssetLoader() *AssetLoader {
	return &AssetLoader{}
}

// LoadTexture loads a PNG (or any registered image format) from path.
func (l *AssetLoader) LoadTexture(path string) (render.Texture, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load texture %s: %w", path, err)
	}
	return &Texture{img: img}, nil
}

// LoadFont returns the Go Regular face at the given pixel size.
func (l *AssetLoader) LoadFont(size float64) (render.Font, error) {
	if l.fontSource == nil {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			return nil, fmt.Errorf("load font: %w", err)
		}
		l.fontSource = src
	}
	return &Font{face: &text.GoTextFace{Source: l.fontSource, Size: size}}, nil
}

// Input reads the keyboard through ebiten.
type Input struct{}

// NewInput creates an ebiten-backed Input.
func NewInput() *Input {
	return &Input{}
}

// IsKeyPressed reports whether key is held this tick.
func (Input) IsKeyPressed(key render.Key) bool {
	return ebiten.IsKeyPressed(toEbitenKey(key))
}

func toEbitenKey(key render.Key) ebiten.Key {
	switch key {
	case render.KeyW:
		return ebiten.KeyW
	case render.KeyA:
		return ebiten.KeyA
	case render.KeyS:
		return ebiten.KeyS
	case render.KeyD:
		return ebiten.KeyD
	case render.KeyUp:
		return ebiten.KeyArrowUp
	case render.KeyDown:
		return ebiten.KeyArrowDown
	case render.KeyLeft:
		return ebiten.KeyArrowLeft
	case render.KeyRight:
		return ebiten.KeyArrowRight
	case render.KeyC:
		return ebiten.KeyC
	case render.KeyF:
		return ebiten.KeyF
	case render.KeyF9:
		return ebiten.KeyF9
	case render.KeyEscape:
		return ebiten.KeyEscape
	default:
		return ebiten.KeyMax
	}
}

// Engine runs a render.Game inside an ebiten window.
type Engine struct{}

// NewEngine creates an Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// SetWindowSize sets the window size in pixels.
func (Engine) SetWindowSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

// SetWindowTitle sets the window title.
func (Engine) SetWindowTitle(title string) {
	ebiten.SetWindowTitle(title)
}

// SetWindowResizable enables or disables window resizing.
func (Engine) SetWindowResizable(resizable bool) {
	if resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
}

// SetTPS sets the fixed update rate.
func (Engine) SetTPS(tps int) {
	ebiten.SetTPS(tps)
}

// RunGame runs the loop until the window closes or the game terminates.
func (Engine) RunGame(game render.Game) error {
	err := ebiten.RunGame(&gameAdapter{game: game})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type gameAdapter struct {
	game    render.Game
	surface Surface
}

func (a *gameAdapter) Update() error {
	err := a.game.Update()
	if errors.Is(err, render.ErrTerminated) {
		return ebiten.Termination
	}
	return err
}

func (a *gameAdapter) Draw(screen *ebiten.Image) {
	a.surface.img = screen
	a.game.Draw(&a.surface)
}

func (a *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Layout(outsideWidth, outsideHeight)
}
