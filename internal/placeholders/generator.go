// Package placeholders draws the fixed Labyrinth texture set procedurally so
// the game runs from a fresh checkout without art assets.
package placeholders

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/colornames"
)

// TileSize is the edge length of every square texture and ghost frame.
const TileSize = 32

// GhostFrames is the number of frames in the ghost strip.
const GhostFrames = 4

var transparent = color.RGBA{}

// Palette holds the colours the placeholders are drawn with.
var Palette = struct {
	Stone    color.RGBA
	Mortar   color.RGBA
	Exit     color.RGBA
	Key      color.RGBA
	Mark     color.RGBA
	Ghost    color.RGBA
	GhostEye color.RGBA
}{
	Stone:    color.RGBA{130, 125, 115, 255},
	Mortar:   color.RGBA{90, 84, 76, 255},
	Exit:     colornames.White,
	Key:      colornames.White,
	Mark:     colornames.White,
	Ghost:    color.RGBA{235, 235, 245, 255},
	GhostEye: colornames.Black,
}

// Texture is one named image of the set.
type Texture struct {
	Name  string
	Image *image.RGBA
}

// Set returns the full texture set keyed by the file names the renderer
// loads: wall.png, exit.png, key.png, mark.png, ghost.png and
// ghost-from-top.png.
func Set() []Texture {
	return []Texture{
		{"wall.png", Wall()},
		{"exit.png", Exit()},
		{"key.png", Key()},
		{"mark.png", Mark()},
		{"ghost.png", GhostStrip(GhostFrames)},
		{"ghost-from-top.png", GhostTop()},
	}
}

func solid(w, h int, col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{col}, image.Point{}, draw.Src)
	return img
}

// Wall is a brick pattern with offset courses.
func Wall() *image.RGBA {
	img := solid(TileSize, TileSize, Palette.Stone)
	const course = TileSize / 4
	for y := 0; y < TileSize; y++ {
		row := y / course
		for x := 0; x < TileSize; x++ {
			shift := 0
			if row%2 == 1 {
				shift = TileSize / 4
			}
			if y%course == 0 || (x+shift)%(TileSize/2) == 0 {
				img.Set(x, y, Palette.Mortar)
			}
		}
	}
	return img
}

// Exit is a door outline; the renderer tints it.
func Exit() *image.RGBA {
	img := solid(TileSize, TileSize, transparent)
	for y := 4; y < TileSize-2; y++ {
		for x := 8; x < TileSize-8; x++ {
			edge := x < 11 || x >= TileSize-11 || y < 7
			if edge {
				img.Set(x, y, Palette.Exit)
			}
		}
	}
	img.Set(TileSize-13, TileSize/2, Palette.Exit)
	img.Set(TileSize-13, TileSize/2+1, Palette.Exit)
	return img
}

// Key is a ring with a toothed shaft.
func Key() *image.RGBA {
	img := solid(TileSize, TileSize, transparent)
	cx, cy := 10.0, 16.0
	for y := 0; y < TileSize; y++ {
		for x := 0; x < TileSize; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			if d >= 3.5 && d <= 7 {
				img.Set(x, y, Palette.Key)
			}
		}
	}
	for x := 17; x < TileSize-3; x++ {
		img.Set(x, 15, Palette.Key)
		img.Set(x, 16, Palette.Key)
	}
	for _, x := range []int{TileSize - 5, TileSize - 9} {
		for y := 17; y < 21; y++ {
			img.Set(x, y, Palette.Key)
			img.Set(x+1, y, Palette.Key)
		}
	}
	return img
}

// Mark is a cross.
func Mark() *image.RGBA {
	img := solid(TileSize, TileSize, transparent)
	for i := 6; i < TileSize-6; i++ {
		for w := -1; w <= 1; w++ {
			img.Set(i, i+w, Palette.Mark)
			img.Set(i, TileSize-1-i+w, Palette.Mark)
		}
	}
	return img
}

func drawGhost(img *image.RGBA, ox int, wobble float64) {
	cx := float64(ox) + TileSize/2
	for y := 0; y < TileSize; y++ {
		for x := ox; x < ox+TileSize; x++ {
			fx, fy := float64(x)+0.5, float64(y)+0.5
			inHead := math.Hypot(fx-cx, fy-12) <= 10
			hem := 28 + 2*math.Sin((fx-float64(ox))/3+wobble)
			inBody := fx >= cx-10 && fx <= cx+10 && fy >= 12 && fy <= hem
			if inHead || inBody {
				img.Set(x, y, Palette.Ghost)
			}
		}
	}
	for _, ex := range []int{-4, 3} {
		for dy := 0; dy < 3; dy++ {
			img.Set(int(cx)+ex, 10+dy, Palette.GhostEye)
			img.Set(int(cx)+ex+1, 10+dy, Palette.GhostEye)
		}
	}
}

// GhostStrip is a horizontal strip of square side-view frames whose hem
// ripples from frame to frame.
func GhostStrip(frames int) *image.RGBA {
	if frames < 1 {
		frames = 1
	}
	img := solid(TileSize*frames, TileSize, transparent)
	for f := 0; f < frames; f++ {
		drawGhost(img, f*TileSize, float64(f)*math.Pi/2)
	}
	return img
}

// GhostTop is the ghost seen from above: a round sheet.
func GhostTop() *image.RGBA {
	img := solid(TileSize, TileSize, transparent)
	c := float64(TileSize) / 2
	for y := 0; y < TileSize; y++ {
		for x := 0; x < TileSize; x++ {
			if math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c) <= c-2 {
				img.Set(x, y, Palette.Ghost)
			}
		}
	}
	return img
}

// SavePNG writes img to path.
func SavePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// GenerateAndSave writes the texture set into dir, creating it if needed.
// It returns the written paths.
func GenerateAndSave(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	var paths []string
	for _, t := range Set() {
		p := filepath.Join(dir, t.Name)
		if err := SavePNG(t.Image, p); err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}
