package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestJitter_IsPure(t *testing.T) {
	a := JitterXYZ(2, 3, 0)
	JitterXYZ(9, 1, 0.5) // unrelated call in between
	b := JitterXYZ(2, 3, 0)
	if a != b {
		t.Fatalf("jitter(2,3,0) not reproducible: %v vs %v", a, b)
	}
}

func TestJitter_Formula(t *testing.T) {
	// Non-constant operands so the phase is rounded the same way as in Jitter.
	x, y, z := 2.0, 3.0, 0.0
	phase := x + y + z + math.E
	want := mgl64.Vec3{
		x + math.Sin(phase*1.5)*0.1,
		y + math.Sin(phase*2.5)*0.1,
		z + math.Sin(phase*1.0)*0.1,
	}
	if got := JitterXYZ(2, 3, 0); got != want {
		t.Fatalf("jitter(2,3,0) = %v, want %v", got, want)
	}
}

func TestJitter_BoundedDisplacement(t *testing.T) {
	for x := -3.0; x <= 3; x += 0.25 {
		for y := -3.0; y <= 3; y += 0.25 {
			p := mgl64.Vec3{x, y, 0.5}
			d := Jitter(p).Sub(p)
			if math.Abs(d.X()) > 0.1 || math.Abs(d.Y()) > 0.1 || math.Abs(d.Z()) > 0.1 {
				t.Fatalf("jitter of %v moved by %v", p, d)
			}
		}
	}
}

func TestBuildMazeMesh_SharedCornersStayStitched(t *testing.T) {
	m, err := MazeFromRows([]string{
		"####",
		"#SF#",
		"####",
	})
	if err != nil {
		t.Fatal(err)
	}
	quads := BuildMazeMesh(m, mgl64.Vec2{1.5, 1.5}, CameraFirstPerson)
	// Every jittered vertex must be the jitter of a lattice point on the
	// half-cell grid, so neighbouring quads agree exactly.
	for _, q := range quads {
		for _, p := range q.Pos {
			found := false
			for x := 0.0; x <= 4 && !found; x += 0.5 {
				for y := 0.0; y <= 3 && !found; y += 0.5 {
					for _, z := range []float64{0, 0.5, 1} {
						if JitterXYZ(x, y, z) == p {
							found = true
							break
						}
					}
				}
			}
			if !found {
				t.Fatalf("vertex %v is not a jittered lattice point", p)
			}
		}
	}
}
