package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
)

// Shininess is the specular exponent used for every material.
const Shininess = 32

// Stats counts the work done by the last Render call.
type Stats struct {
	Objects   int
	Triangles int // drawn, after culling
	Culled    int
	Cells     int // cells written
}

// TerminalRenderer rasterizes triangle meshes into terminal cells, one depth
// sample per cell.
type TerminalRenderer struct {
	screen     tcell.Screen
	shaders    *ShaderLibrary
	background tcell.Color

	width, height int
	depth         []float32
	stats         Stats
}

// NewTerminalRenderer creates a renderer drawing to screen.
func NewTerminalRenderer(screen tcell.Screen, shaders *ShaderLibrary, background tcell.Color) *TerminalRenderer {
	return &TerminalRenderer{
		screen:     screen,
		shaders:    shaders,
		background: background,
	}
}

// Stats returns the counters of the last frame.
func (r *TerminalRenderer) Stats() Stats { return r.stats }

// Render clears the screen and draws every object in s. It does not call
// Show; the window presents the frame.
func (r *TerminalRenderer) Render(s Submission) {
	r.resize()
	r.stats = Stats{}
	bg := tcell.StyleDefault.Background(r.background)
	r.screen.Fill(' ', bg)
	for i := range r.depth {
		r.depth[i] = math.MaxFloat32
	}

	vp := s.Projection.Projection.Mul4(s.Projection.View)
	for _, obj := range s.Objects {
		if obj == nil || obj.Mesh == nil {
			continue
		}
		r.stats.Objects++
		r.drawObject(obj, vp, s)
	}
}

func (r *TerminalRenderer) resize() {
	w, h := r.screen.Size()
	if w == r.width && h == r.height && r.depth != nil {
		return
	}
	r.width, r.height = w, h
	r.depth = make([]float32, w*h)
}

type screenVertex struct {
	x, y, z float32
}

func (r *TerminalRenderer) drawObject(obj *Object, vp mgl32.Mat4, s Submission) {
	model := obj.Transform.Matrix()
	mvp := vp.Mul4(model)
	normalMat := model.Mat3().Inv().Transpose()
	shader := r.shaders.Get(obj.Shader)
	lit := obj.Lit && !shader.Unlit && s.Lights != nil
	tint := obj.tint()

	m := obj.Mesh
	for i := 0; i+2 < len(m.Indices); i += 3 {
		v0 := m.Vertices[m.Indices[i]]
		v1 := m.Vertices[m.Indices[i+1]]
		v2 := m.Vertices[m.Indices[i+2]]

		a, ok0 := r.project(mvp, v0.Position)
		b, ok1 := r.project(mvp, v1.Position)
		c, ok2 := r.project(mvp, v2.Position)
		if !ok0 || !ok1 || !ok2 {
			continue
		}
		// Screen y grows downward, so front faces come out clockwise.
		area := (b.x-a.x)*(c.y-a.y) - (b.y-a.y)*(c.x-a.x)
		if area >= 0 {
			r.stats.Culled++
			continue
		}
		r.stats.Triangles++

		color := tint
		if lit {
			centroid := v0.Position.Add(v1.Position).Add(v2.Position).Mul(1.0 / 3)
			worldPos := model.Mul4x1(centroid.Vec4(1)).Vec3()
			n := normalMat.Mul3x1(v0.Normal.Add(v1.Normal).Add(v2.Normal))
			intensity := s.Lights.Shade(worldPos, n, s.ViewPos, Shininess)
			color = mgl32.Vec3{intensity.X() * tint.X(), intensity.Y() * tint.Y(), intensity.Z() * tint.Z()}
		}
		brightness := mgl32.Clamp(0.2126*color.X()+0.7152*color.Y()+0.0722*color.Z(), 0, 1)
		style := tcell.StyleDefault.Background(r.background).Foreground(shader.Color(color))
		r.fill(a, b, c, shader.Glyph(brightness), style, !shader.Transparent)
	}
}

// project maps a model-space point to cell coordinates and NDC depth.
// Points behind the near plane are rejected.
func (r *TerminalRenderer) project(mvp mgl32.Mat4, p mgl32.Vec3) (screenVertex, bool) {
	clip := mvp.Mul4x1(p.Vec4(1))
	w := clip.W()
	if w <= 1e-6 {
		return screenVertex{}, false
	}
	ndc := clip.Vec3().Mul(1 / w)
	return screenVertex{
		x: (ndc.X() + 1) / 2 * float32(r.width),
		y: (1 - ndc.Y()) / 2 * float32(r.height),
		z: ndc.Z(),
	}, true
}

func (r *TerminalRenderer) fill(a, b, c screenVertex, glyph rune, style tcell.Style, writeDepth bool) {
	minX := max(int(math.Floor(float64(min(a.x, b.x, c.x)))), 0)
	maxX := min(int(math.Ceil(float64(max(a.x, b.x, c.x)))), r.width-1)
	minY := max(int(math.Floor(float64(min(a.y, b.y, c.y)))), 0)
	maxY := min(int(math.Ceil(float64(max(a.y, b.y, c.y)))), r.height-1)

	area := edge(a, b, c.x, c.y)
	if area == 0 {
		return
	}
	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			w0 := edge(b, c, px, py) / area
			w1 := edge(c, a, px, py) / area
			w2 := edge(a, b, px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*a.z + w1*b.z + w2*c.z
			if z < -1 || z > 1 {
				continue
			}
			idx := y*r.width + x
			if z >= r.depth[idx] {
				continue
			}
			if writeDepth {
				r.depth[idx] = z
			}
			r.screen.SetContent(x, y, glyph, nil, style)
			r.stats.Cells++
		}
	}
}

func edge(a, b screenVertex, px, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}
