package render

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is one mesh corner.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
}

// Mesh is an indexed triangle list. Front faces wind counter-clockwise.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Triangles returns the number of triangles in the mesh.
func (m *Mesh) Triangles() int { return len(m.Indices) / 3 }

// Cube returns an axis-aligned cube of edge size centered on the origin,
// four vertices per face so each face keeps its own normal.
func Cube(size float32) *Mesh {
	h := size / 2
	faces := []struct {
		n       mgl32.Vec3
		corners [4]mgl32.Vec3
	}{
		{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}}},
		{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{h, -h, -h}, {-h, -h, -h}, {-h, h, -h}, {h, h, -h}}},
		{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{h, -h, h}, {h, -h, -h}, {h, h, -h}, {h, h, h}}},
		{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-h, -h, -h}, {-h, -h, h}, {-h, h, h}, {-h, h, -h}}},
		{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-h, h, h}, {h, h, h}, {h, h, -h}, {-h, h, -h}}},
		{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-h, -h, -h}, {h, -h, -h}, {h, -h, h}, {-h, -h, h}}},
	}
	m := &Mesh{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	for _, f := range faces {
		base := uint32(len(m.Vertices))
		for _, c := range f.corners {
			m.Vertices = append(m.Vertices, Vertex{Position: c, Normal: f.n})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// Rock returns a lumpy sphere: an icosahedron subdivided the given number of
// times with each vertex pushed in or out by up to 20% of radius. The same
// seed always yields the same rock.
func Rock(radius float32, subdivisions int, seed int64) *Mesh {
	pos, tris := icosahedron()
	for i := 0; i < subdivisions; i++ {
		pos, tris = subdivide(pos, tris)
	}

	rng := rand.New(rand.NewSource(seed))
	for i := range pos {
		jitter := 1 + (rng.Float32()*2-1)*0.2
		pos[i] = pos[i].Normalize().Mul(radius * jitter)
	}

	m := &Mesh{
		Vertices: make([]Vertex, 0, len(tris)*3),
		Indices:  make([]uint32, 0, len(tris)*3),
	}
	for _, t := range tris {
		a, b, c := pos[t[0]], pos[t[1]], pos[t[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		if n.Dot(a.Add(b).Add(c)) < 0 {
			b, c = c, b
			n = n.Mul(-1)
		}
		if n.Len() > 0 {
			n = n.Normalize()
		}
		base := uint32(len(m.Vertices))
		m.Vertices = append(m.Vertices,
			Vertex{Position: a, Normal: n},
			Vertex{Position: b, Normal: n},
			Vertex{Position: c, Normal: n},
		)
		m.Indices = append(m.Indices, base, base+1, base+2)
	}
	return m
}

func icosahedron() ([]mgl32.Vec3, [][3]uint32) {
	const t = 1.618034
	pos := []mgl32.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	tris := [][3]uint32{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
	for i := range pos {
		pos[i] = pos[i].Normalize()
	}
	return pos, tris
}

// subdivide splits every triangle into four, sharing edge midpoints.
func subdivide(pos []mgl32.Vec3, tris [][3]uint32) ([]mgl32.Vec3, [][3]uint32) {
	mid := make(map[[2]uint32]uint32, len(tris)*3/2)
	midpoint := func(a, b uint32) uint32 {
		key := [2]uint32{min(a, b), max(a, b)}
		if i, ok := mid[key]; ok {
			return i
		}
		pos = append(pos, pos[a].Add(pos[b]).Mul(0.5).Normalize())
		i := uint32(len(pos) - 1)
		mid[key] = i
		return i
	}
	out := make([][3]uint32, 0, len(tris)*4)
	for _, t := range tris {
		ab := midpoint(t[0], t[1])
		bc := midpoint(t[1], t[2])
		ca := midpoint(t[2], t[0])
		out = append(out,
			[3]uint32{t[0], ab, ca},
			[3]uint32{t[1], bc, ab},
			[3]uint32{t[2], ca, bc},
			[3]uint32{ab, bc, ca},
		)
	}
	return pos, out
}
