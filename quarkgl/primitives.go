package quarkgl

import "github.com/chewxy/math32"

// NewSphereMesh builds a UV sphere centered at the origin, like glutSolidSphere.
func NewSphereMesh(radius Scalar, slices, stacks int) Mesh {
	if slices < 3 {
		slices = 3
	}
	if stacks < 2 {
		stacks = 2
	}

	verts := make([]Vertex, 0, (slices+1)*(stacks+1))
	indices := make([]uint32, 0, slices*stacks*6)

	for st := 0; st <= stacks; st++ {
		phi := math32.Pi * Scalar(st) / Scalar(stacks)
		sp, cp := math32.Sincos(phi)
		for sl := 0; sl <= slices; sl++ {
			theta := 2 * math32.Pi * Scalar(sl) / Scalar(slices)
			stt, ct := math32.Sincos(theta)
			n := V3(sp*ct, cp, sp*stt)
			verts = append(verts, Vertex{Pos: n.Mul(radius), Normal: n})
		}
	}

	row := slices + 1
	for st := 0; st < stacks; st++ {
		for sl := 0; sl < slices; sl++ {
			i0 := uint32(st*row + sl)
			i1 := uint32((st+1)*row + sl)
			i2 := uint32((st+1)*row + sl + 1)
			i3 := uint32(st*row + sl + 1)
			// Outward winding as seen from outside the sphere.
			indices = append(indices, i0, i3, i2)
			indices = append(indices, i0, i2, i1)
		}
	}

	return Mesh{Vertices: verts, Indices: indices}
}

// NewCubeMesh builds an axis-aligned cube of edge size centered at the origin,
// like glutSolidCube.
func NewCubeMesh(size Scalar) Mesh {
	h := size / 2
	faces := [6]struct {
		n    Vec3
		u, v Vec3
	}{
		{n: V3(1, 0, 0), u: V3(0, 0, -1), v: V3(0, 1, 0)},
		{n: V3(-1, 0, 0), u: V3(0, 0, 1), v: V3(0, 1, 0)},
		{n: V3(0, 1, 0), u: V3(1, 0, 0), v: V3(0, 0, -1)},
		{n: V3(0, -1, 0), u: V3(1, 0, 0), v: V3(0, 0, 1)},
		{n: V3(0, 0, 1), u: V3(1, 0, 0), v: V3(0, 1, 0)},
		{n: V3(0, 0, -1), u: V3(-1, 0, 0), v: V3(0, 1, 0)},
	}

	verts := make([]Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		c := f.n.Mul(h)
		base := uint32(len(verts))
		verts = append(verts,
			Vertex{Pos: c.Sub(f.u.Mul(h)).Sub(f.v.Mul(h)), Normal: f.n},
			Vertex{Pos: c.Add(f.u.Mul(h)).Sub(f.v.Mul(h)), Normal: f.n},
			Vertex{Pos: c.Add(f.u.Mul(h)).Add(f.v.Mul(h)), Normal: f.n},
			Vertex{Pos: c.Sub(f.u.Mul(h)).Add(f.v.Mul(h)), Normal: f.n},
		)
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return Mesh{Vertices: verts, Indices: indices}
}
