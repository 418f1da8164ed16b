package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func ids(objs []TransparentObject) []string {
	out := make([]string, len(objs))
	for i, o := range objs {
		out[i] = o.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCompose_FarthestFirst(t *testing.T) {
	objs := []TransparentObject{
		{ID: "A", Position: mgl64.Vec2{1, 0}},
		{ID: "B", Position: mgl64.Vec2{0, 5}},
		{ID: "C", Position: mgl64.Vec2{-3, 0}},
	}
	got := ids(Compose(mgl64.Vec2{0, 0}, objs))
	want := []string{"B", "C", "A"}
	if !equalIDs(got, want) {
		t.Fatalf("compose order = %v, want %v", got, want)
	}
	if objs[0].ID != "A" || objs[1].ID != "B" || objs[2].ID != "C" {
		t.Fatal("Compose modified its input")
	}
}

func TestCompose_TiesComeOutReversed(t *testing.T) {
	// X, Y and Z are all 2 away; a direct descending stable sort would keep
	// them as X, Y, Z.
	objs := []TransparentObject{
		{ID: "X", Position: mgl64.Vec2{2, 0}},
		{ID: "near", Position: mgl64.Vec2{0, 1}},
		{ID: "Y", Position: mgl64.Vec2{0, 2}},
		{ID: "Z", Position: mgl64.Vec2{-2, 0}},
		{ID: "far", Position: mgl64.Vec2{0, -4}},
	}
	got := ids(Compose(mgl64.Vec2{0, 0}, objs))
	want := []string{"far", "Z", "Y", "X", "near"}
	if !equalIDs(got, want) {
		t.Fatalf("compose order = %v, want %v", got, want)
	}
}

func TestCompose_Empty(t *testing.T) {
	if got := Compose(mgl64.Vec2{}, nil); len(got) != 0 {
		t.Fatalf("expected empty order, got %v", ids(got))
	}
}

type recordingDrawer struct {
	calls []string
}

func (d *recordingDrawer) DrawIcon(obj TransparentObject)  { d.calls = append(d.calls, "icon:"+obj.ID) }
func (d *recordingDrawer) DrawGhost(obj TransparentObject) { d.calls = append(d.calls, "ghost:"+obj.ID) }

func TestDispatch_ByKind(t *testing.T) {
	ordered := []TransparentObject{
		{ID: "g0", Kind: TransparentGhost},
		{ID: "exit", Kind: TransparentIcon},
	}
	d := &recordingDrawer{}
	Dispatch(ordered, d)
	want := []string{"ghost:g0", "icon:exit"}
	if !equalIDs(d.calls, want) {
		t.Fatalf("dispatch calls = %v, want %v", d.calls, want)
	}
}
