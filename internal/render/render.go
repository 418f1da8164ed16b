// Package render holds the drawing contracts the game core renders against.
// The core never imports a graphics engine directly; a backend (see the ebiten
// subpackage) implements these interfaces, and tests use recording fakes.
package render

import (
	"errors"
	"image/color"
)

// ErrTerminated is returned from Game.Update to end the game loop cleanly.
var ErrTerminated = errors.New("render: terminated")

// Vertex is one screen-space vertex of a textured triangle.
// SrcX/SrcY are texel coordinates in the bound texture; the colour fields
// scale the sampled texel (straight alpha).
type Vertex struct {
	DstX   float32
	DstY   float32
	SrcX   float32
	SrcY   float32
	ColorR float32
	ColorG float32
	ColorB float32
	ColorA float32
}

// Texture is a loaded image that triangles can sample from.
type Texture interface {
	Width() int
	Height() int
}

// Font is a loaded face at a fixed pixel size.
type Font interface {
	// Measure returns the rendered size of s in pixels.
	Measure(s string) (width, height float64)
}

// Surface is a render target for one frame.
type Surface interface {
	Size() (width, height int)
	Fill(clr color.Color)
	// DrawTriangles draws indexed triangles. A nil texture draws the vertex
	// colours as a solid fill.
	DrawTriangles(vertices []Vertex, indices []uint16, tex Texture)
	// DrawText draws s with its top-left corner at (x, y).
	DrawText(s string, font Font, x, y float64, clr color.Color)
}

// AssetLoader loads the fixed asset set at startup.
type AssetLoader interface {
	LoadTexture(path string) (Texture, error)
	LoadFont(size float64) (Font, error)
}

// Key identifies a keyboard key independent of the backend.
type Key int

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyC // camera toggle
	KeyF // place mark
	KeyF9
	KeyEscape
)

// Input answers key-state queries for the current tick.
type Input interface {
	IsKeyPressed(key Key) bool
}

// Game is driven by an Engine: Update once per tick, Draw once per frame.
type Game interface {
	Update() error
	Draw(screen Surface)
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine owns the window and the game loop.
type Engine interface {
	SetWindowSize(width, height int)
	SetWindowTitle(title string)
	SetWindowResizable(resizable bool)
	SetTPS(tps int)
	// RunGame blocks until the window closes or the game returns ErrTerminated.
	RunGame(game Game) error
}
