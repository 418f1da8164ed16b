package game

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/colornames"

	"github.com/Garsondee/Labyrinth/internal/render"
)

const (
	// globalAmbient is the scene brightness with the torch out.
	globalAmbient = 0.04
	// torchGain scales the torch colour into the scene.
	torchGain = 0.2

	maxBatchVertices = 65000
)

// SceneLight returns the per-channel light level for a displayed torch
// value t. The torch tints the scene saddle brown and brightens with t;
// with the torch out only the dim global ambient remains.
func SceneLight(t float64) mgl64.Vec3 {
	if t <= 0 {
		return mgl64.Vec3{globalAmbient, globalAmbient, globalAmbient}
	}
	strength := torchGain * (0.18*t + 1.82)
	tint := rgbVec(colornames.Saddlebrown)
	return mgl64.Vec3{
		min(1, globalAmbient+strength*tint.X()),
		min(1, globalAmbient+strength*tint.Y()),
		min(1, globalAmbient+strength*tint.Z()),
	}
}

// FogFactor is the exponential fog visibility at eye distance d.
func FogFactor(density, d float64) float64 {
	return math.Exp(-density * d)
}

func rgbVec(c color.RGBA) mgl64.Vec3 {
	return mgl64.Vec3{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}

// shader colours a vertex given its distance from the eye.
type shader func(eyeDist float64) [4]float32

func flatShader(c color.RGBA, alpha float64) shader {
	rgb := rgbVec(c)
	col := [4]float32{float32(rgb.X()), float32(rgb.Y()), float32(rgb.Z()), float32(alpha)}
	return func(float64) [4]float32 { return col }
}

func litShader(light mgl64.Vec3, fogDensity float64) shader {
	return func(d float64) [4]float32 {
		f := FogFactor(fogDensity, d)
		return [4]float32{float32(light.X() * f), float32(light.Y() * f), float32(light.Z() * f), 1}
	}
}

func fogShader(c color.RGBA, alpha, fogDensity float64) shader {
	rgb := rgbVec(c)
	return func(d float64) [4]float32 {
		f := FogFactor(fogDensity, d)
		return [4]float32{float32(rgb.X() * f), float32(rgb.Y() * f), float32(rgb.Z() * f), float32(alpha)}
	}
}

type clipVertex struct {
	pos  mgl64.Vec4
	uv   mgl64.Vec2
	dist float64
}

func lerpClip(a, b clipVertex, t float64) clipVertex {
	return clipVertex{
		pos:  a.pos.Add(b.pos.Sub(a.pos).Mul(t)),
		uv:   a.uv.Add(b.uv.Sub(a.uv).Mul(t)),
		dist: a.dist + (b.dist-a.dist)*t,
	}
}

// clipNear cuts a convex polygon against the plane w = near, keeping the
// part in front of the camera.
func clipNear(in []clipVertex, near float64) []clipVertex {
	if len(in) == 0 {
		return nil
	}
	out := make([]clipVertex, 0, len(in)+2)
	prev := in[len(in)-1]
	prevIn := prev.pos.W() >= near
	for _, cur := range in {
		curIn := cur.pos.W() >= near
		if curIn != prevIn {
			t := (near - prev.pos.W()) / (cur.pos.W() - prev.pos.W())
			out = append(out, lerpClip(prev, cur, t))
		}
		if curIn {
			out = append(out, cur)
		}
		prev, prevIn = cur, curIn
	}
	return out
}

// projectPolygon transforms a convex world polygon, clips it to the near
// plane and returns screen vertices. uv is in texels.
func (c Camera) projectPolygon(world []mgl64.Vec3, uv []mgl64.Vec2, shade shader) []render.Vertex {
	poly := make([]clipVertex, len(world))
	for i, p := range world {
		eye := c.View.Mul4x1(p.Vec4(1))
		poly[i] = clipVertex{
			pos:  c.Proj.Mul4x1(eye),
			uv:   uv[i],
			dist: eye.Vec3().Len(),
		}
	}
	poly = clipNear(poly, NearPlane)
	if len(poly) < 3 {
		return nil
	}
	out := make([]render.Vertex, len(poly))
	for i, v := range poly {
		sx, sy := c.ToScreen(v.pos)
		col := shade(v.dist)
		out[i] = render.Vertex{
			DstX:   float32(sx),
			DstY:   float32(sy),
			SrcX:   float32(v.uv.X()),
			SrcY:   float32(v.uv.Y()),
			ColorR: col[0],
			ColorG: col[1],
			ColorB: col[2],
			ColorA: col[3],
		}
	}
	return out
}

// triangleBatch gathers fan-triangulated polygons sharing one texture and
// submits them in a single draw call.
type triangleBatch struct {
	surface render.Surface
	tex     render.Texture
	verts   []render.Vertex
	idx     []uint16
	calls   int
}

func (b *triangleBatch) reset(s render.Surface) {
	b.surface = s
	b.tex = nil
	b.verts = b.verts[:0]
	b.idx = b.idx[:0]
	b.calls = 0
}

// addPolygon queues a convex polygon, flushing first when the texture
// changes or the batch is full.
func (b *triangleBatch) addPolygon(tex render.Texture, vs []render.Vertex) {
	if len(vs) < 3 {
		return
	}
	if len(b.verts) > 0 && (tex != b.tex || len(b.verts)+len(vs) > maxBatchVertices) {
		b.flush()
	}
	b.tex = tex
	base := uint16(len(b.verts))
	b.verts = append(b.verts, vs...)
	for i := 1; i < len(vs)-1; i++ {
		b.idx = append(b.idx, base, base+uint16(i), base+uint16(i+1))
	}
}

func (b *triangleBatch) flush() {
	if len(b.verts) == 0 {
		return
	}
	b.surface.DrawTriangles(b.verts, b.idx, b.tex)
	b.calls++
	b.verts = b.verts[:0]
	b.idx = b.idx[:0]
}
