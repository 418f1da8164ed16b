package game

import (
	"image/color"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// TransparentKind selects the draw routine for a transparent object.
type TransparentKind uint8

const (
	TransparentIcon TransparentKind = iota
	TransparentGhost
)

func (k TransparentKind) String() string {
	switch k {
	case TransparentIcon:
		return "icon"
	case TransparentGhost:
		return "ghost"
	default:
		return "unknown"
	}
}

// IconTexture names one of the billboard icon textures.
type IconTexture uint8

const (
	IconExit IconTexture = iota
	IconCheckpoint
	IconMark
)

// IconPayload is what the icon routine needs to draw one billboard.
type IconPayload struct {
	Texture IconTexture
	Color   color.RGBA
}

// GhostPayload is what the ghost routine needs to draw one ghost.
type GhostPayload struct {
	Index int
}

// TransparentObject is one alpha-blended thing to draw this frame. Position
// is corner-anchored like cells; Kind decides which payload is meaningful.
type TransparentObject struct {
	ID       string
	Position mgl64.Vec2
	Kind     TransparentKind
	Icon     IconPayload
	Ghost    GhostPayload
}

// Compose orders objs for painting: ascending by distance from the player
// with a comparator that never reports equality, then reversed so the
// farthest object is drawn first. Equal distances therefore come out in
// reverse of their input order. objs is not modified.
func Compose(player mgl64.Vec2, objs []TransparentObject) []TransparentObject {
	out := slices.Clone(objs)
	slices.SortStableFunc(out, func(a, b TransparentObject) int {
		if a.Position.Sub(player).Len() < b.Position.Sub(player).Len() {
			return -1
		}
		return 1
	})
	slices.Reverse(out)
	return out
}

// TransparentDrawer draws one kind of transparent object.
type TransparentDrawer interface {
	DrawIcon(obj TransparentObject)
	DrawGhost(obj TransparentObject)
}

// Dispatch hands each object, in order, to the routine its kind selects.
func Dispatch(ordered []TransparentObject, d TransparentDrawer) {
	for _, obj := range ordered {
		switch obj.Kind {
		case TransparentIcon:
			d.DrawIcon(obj)
		case TransparentGhost:
			d.DrawGhost(obj)
		}
	}
}
