// Package quadmesh builds flat rectangular grids that are drawn as tiled quads.
//
// A mesh is sampled at (n+1)×(n+1) points spanned by two direction vectors from
// an origin. It carries one material and one normal for the whole surface.
package quadmesh

import (
	"github.com/go-gl/mathgl/mgl64"

	"subscene/quarkgl"
)

// Vec3 is an immutable 3-component value used for points, directions and colors.
type Vec3 struct {
	X, Y, Z float64
}

// V builds a Vec3.
func V(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) mgl() mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }

func fromMgl(v mgl64.Vec3) Vec3 { return Vec3{X: v[0], Y: v[1], Z: v[2]} }

func (v Vec3) Add(o Vec3) Vec3      { return fromMgl(v.mgl().Add(o.mgl())) }
func (v Vec3) Scale(s float64) Vec3 { return fromMgl(v.mgl().Mul(s)) }
func (v Vec3) Cross(o Vec3) Vec3    { return fromMgl(v.mgl().Cross(o.mgl())) }

// Normalize returns the zero vector for zero input.
func (v Vec3) Normalize() Vec3 {
	m := v.mgl()
	if m.Len() == 0 {
		return Vec3{}
	}
	return fromMgl(m.Normalize())
}

func (v Vec3) f32() quarkgl.Vec3 {
	return quarkgl.V3(float32(v.X), float32(v.Y), float32(v.Z))
}

// Material is applied uniformly to every quad of a mesh.
type Material struct {
	Ambient   Vec3
	Diffuse   Vec3
	Specular  Vec3
	Shininess float64
}

// Quad holds the four corner indices of one grid cell, counter-clockwise about
// the mesh normal.
type Quad [4]int

// Mesh is an immutable grid of sample points.
type Mesh struct {
	origin Vec3
	dir1   Vec3
	dir2   Vec3
	width  float64
	height float64
	n      int

	points   []Vec3
	material Material
}

// Build samples a grid of (subdivisions+1)² points in row-major order; point
// (i, j) is origin + (i/n)·width·dir1 + (j/n)·height·dir2.
//
// dir1 and dir2 are expected to be unit length and orthogonal; they are used as
// given. subdivisions below 1 are treated as 1.
func Build(origin, dir1, dir2 Vec3, width, height float64, subdivisions int) *Mesh {
	if subdivisions < 1 {
		subdivisions = 1
	}
	n := subdivisions
	m := &Mesh{
		origin: origin,
		dir1:   dir1,
		dir2:   dir2,
		width:  width,
		height: height,
		n:      n,
		points: make([]Vec3, 0, (n+1)*(n+1)),
	}
	for i := 0; i <= n; i++ {
		a := dir1.Scale(float64(i) / float64(n) * width)
		for j := 0; j <= n; j++ {
			b := dir2.Scale(float64(j) / float64(n) * height)
			m.points = append(m.points, origin.Add(a).Add(b))
		}
	}
	return m
}

// WithMaterial returns a copy of m carrying mat. The point grid is shared.
func (m *Mesh) WithMaterial(mat Material) *Mesh {
	c := *m
	c.material = mat
	return &c
}

// Material returns the material applied to every quad.
func (m *Mesh) Material() Material { return m.material }

// Subdivisions is the cell count along each direction.
func (m *Mesh) Subdivisions() int { return m.n }

// Len returns the number of sample points.
func (m *Mesh) Len() int { return len(m.points) }

// Index returns the row-major index of point (i, j).
func (m *Mesh) Index(i, j int) int { return i*(m.n+1) + j }

// Point returns sample (i, j) for 0 <= i, j <= Subdivisions().
func (m *Mesh) Point(i, j int) Vec3 { return m.points[m.Index(i, j)] }

// Points returns a copy of the samples in row-major order.
func (m *Mesh) Points() []Vec3 {
	out := make([]Vec3, len(m.points))
	copy(out, m.points)
	return out
}

// Normal is perpendicular to the dir1/dir2 plane and constant across the mesh.
func (m *Mesh) Normal() Vec3 { return m.dir1.Cross(m.dir2).Normalize() }

// Quads returns the n² cells in row-major order.
func (m *Mesh) Quads() []Quad {
	quads := make([]Quad, 0, m.n*m.n)
	for i := 0; i < m.n; i++ {
		for j := 0; j < m.n; j++ {
			quads = append(quads, Quad{
				m.Index(i, j),
				m.Index(i+1, j),
				m.Index(i+1, j+1),
				m.Index(i, j+1),
			})
		}
	}
	return quads
}

// Triangulate converts the grid into a renderable mesh: two triangles per quad
// with the quad winding, every vertex carrying Normal().
func (m *Mesh) Triangulate() quarkgl.Mesh {
	normal := m.Normal().f32()
	verts := make([]quarkgl.Vertex, len(m.points))
	for i, p := range m.points {
		verts[i] = quarkgl.Vertex{Pos: p.f32(), Normal: normal}
	}

	quads := m.Quads()
	indices := make([]uint32, 0, len(quads)*6)
	for _, q := range quads {
		indices = append(indices,
			uint32(q[0]), uint32(q[1]), uint32(q[2]),
			uint32(q[0]), uint32(q[2]), uint32(q[3]),
		)
	}

	return quarkgl.Mesh{
		Vertices: verts,
		Indices:  indices,
		Material: m.material.quarkgl(),
	}
}

func (mat Material) quarkgl() quarkgl.Material {
	rgb := func(v Vec3) quarkgl.RGBF {
		return quarkgl.RGBF{R: float32(v.X), G: float32(v.Y), B: float32(v.Z)}
	}
	return quarkgl.Material{
		Ambient:   rgb(mat.Ambient),
		Diffuse:   rgb(mat.Diffuse),
		Specular:  rgb(mat.Specular),
		Shininess: float32(mat.Shininess),
		Opacity:   0xFF,
	}
}
