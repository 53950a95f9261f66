package quarkgl

import "github.com/chewxy/math32"

// Renderer is a fixed-pipeline software renderer.
//
// Create it once and reuse it to avoid allocations.
type Renderer struct {
	Mode       RenderMode
	Depth      bool
	ClearColor Color

	depthBuf []float32
	frames   uint64
}

// NewRenderer creates a renderer for a given maximum target size.
//
// If enableDepth is true, a depth buffer of size w*h is allocated.
func NewRenderer(w, h int, enableDepth bool) *Renderer {
	r := &Renderer{
		Mode:       RenderSolidSmooth,
		Depth:      enableDepth,
		ClearColor: RGB(0, 0, 0),
	}
	if enableDepth && w > 0 && h > 0 {
		r.depthBuf = make([]float32, w*h)
	}
	return r
}

func (r *Renderer) SetRenderMode(m RenderMode) { r.Mode = m }

// Frames returns the number of completed Render calls.
func (r *Renderer) Frames() uint64 { return r.frames }

func (r *Renderer) EnableDepth(on bool, w, h int) {
	r.Depth = on
	if !on {
		r.depthBuf = nil
		return
	}
	if w <= 0 || h <= 0 {
		r.depthBuf = nil
		return
	}
	if cap(r.depthBuf) < w*h {
		r.depthBuf = make([]float32, w*h)
	} else {
		r.depthBuf = r.depthBuf[:w*h]
	}
}

func (r *Renderer) clearDepth() {
	for i := range r.depthBuf {
		r.depthBuf[i] = 1e9
	}
}

// Render renders a scene into the target.
func (r *Renderer) Render(t Target, s *Scene) {
	if r == nil || t == nil || s == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	t.Clear(r.ClearColor)

	if r.Depth {
		r.EnableDepth(true, w, h)
		r.clearDepth()
	}

	aspect := Scalar(w) / Scalar(h)
	view := s.Camera.View()
	proj := s.Camera.Projection(aspect)
	vp := Mat4Mul(proj, view)

	s.eachMesh(func(m *Mesh) {
		if m == nil || !m.Enabled {
			return
		}
		r.renderMesh(t, w, h, vp, *m, s)
	})
	r.frames++
}

type screenVertex struct {
	x, y int
	z    float32
	c    Color
}

func (r *Renderer) renderMesh(t Target, w, h int, vp Mat4, m Mesh, s *Scene) {
	if len(m.Vertices) == 0 || len(m.Indices) < 3 {
		return
	}
	if m.Transform == (Mat4{}) {
		m.Transform = Mat4Identity()
	}
	mvp := Mat4Mul(vp, m.Transform)
	eye := s.Camera.Position

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0 := int(m.Indices[i+0])
		i1 := int(m.Indices[i+1])
		i2 := int(m.Indices[i+2])
		if i0 >= len(m.Vertices) || i1 >= len(m.Vertices) || i2 >= len(m.Vertices) {
			continue
		}
		tri := [3]Vertex{m.Vertices[i0], m.Vertices[i1], m.Vertices[i2]}

		var sv [3]screenVertex
		visible := true
		for k := range tri {
			p := Mat4MulV4(mvp, Vec4{X: tri[k].Pos.X, Y: tri[k].Pos.Y, Z: tri[k].Pos.Z, W: 1})
			ndc, ok := clipToNDC(p, s.Camera)
			if !ok {
				visible = false
				break
			}
			sv[k].x, sv[k].y = ndcToScreen(ndc, w, h)
			sv[k].z = ndc.Z
		}
		if !visible {
			continue
		}

		// Lighting happens in world space.
		var wp [3]Vec3
		for k := range tri {
			wp[k] = Mat4MulPoint(m.Transform, tri[k].Pos)
		}
		face := triangleNormal(wp[0], wp[1], wp[2])

		switch r.Mode {
		case RenderWireframe:
			c := shade(s, m.Material, centroid(wp), face, eye)
			r.drawLine(t, sv[0].x, sv[0].y, sv[1].x, sv[1].y, c)
			r.drawLine(t, sv[1].x, sv[1].y, sv[2].x, sv[2].y, c)
			r.drawLine(t, sv[2].x, sv[2].y, sv[0].x, sv[0].y, c)
		case RenderSolidFlat:
			n := face
			if avg := averageNormal(m.Transform, tri); avg != (Vec3{}) {
				n = avg
			}
			c := shade(s, m.Material, centroid(wp), n, eye)
			sv[0].c, sv[1].c, sv[2].c = c, c, c
			r.fillTriangle(t, w, h, sv, false)
		default:
			for k := range tri {
				n := face
				if tri[k].Normal != (Vec3{}) {
					n = Mat4MulNormal(m.Transform, tri[k].Normal)
				}
				sv[k].c = shade(s, m.Material, wp[k], n, eye)
			}
			r.fillTriangle(t, w, h, sv, true)
		}
	}
}

type ndcPoint struct {
	X, Y, Z float32
}

// clipToNDC rejects vertices behind the near plane.
func clipToNDC(p Vec4, cam Camera) (ndcPoint, bool) {
	minW := Scalar(1e-6)
	if cam.Type == CameraPerspective && cam.Near > 0 {
		minW = cam.Near * 0.5
	}
	if p.W < minW {
		return ndcPoint{}, false
	}
	invW := 1 / p.W
	return ndcPoint{X: p.X * invW, Y: p.Y * invW, Z: p.Z * invW}, true
}

func ndcToScreen(p ndcPoint, w, h int) (x, y int) {
	sx := (p.X*0.5 + 0.5) * float32(w-1)
	sy := (1 - (p.Y*0.5 + 0.5)) * float32(h-1)
	return int(math32.Floor(sx + 0.5)), int(math32.Floor(sy + 0.5))
}

func triangleNormal(a, b, c Vec3) Vec3 {
	return Normalize(Cross(b.Sub(a), c.Sub(a)))
}

func centroid(p [3]Vec3) Vec3 {
	return p[0].Add(p[1]).Add(p[2]).Mul(Scalar(1) / 3)
}

func averageNormal(model Mat4, tri [3]Vertex) Vec3 {
	var sum Vec3
	for _, v := range tri {
		if v.Normal == (Vec3{}) {
			return Vec3{}
		}
		sum = sum.Add(v.Normal)
	}
	return Mat4MulNormal(model, sum)
}

// shade evaluates the Phong model at a world-space point for every enabled light.
func shade(s *Scene, mat Material, p, n, eye Vec3) Color {
	var out RGBF
	view := Normalize(eye.Sub(p))
	for _, l := range s.Lights {
		if !l.Enabled {
			continue
		}
		out = out.Add(mat.Ambient.Mul(l.Ambient))

		var ld Vec3
		if l.Positional {
			ld = Normalize(l.Position.Sub(p))
		} else {
			ld = Normalize(l.Position.Mul(-1))
		}
		diff := Dot(n, ld)
		if diff <= 0 {
			continue
		}
		out = out.Add(mat.Diffuse.Mul(l.Diffuse).Scale(diff))

		half := Normalize(ld.Add(view))
		spec := Dot(n, half)
		if spec < 0 {
			spec = 0
		}
		out = out.Add(mat.Specular.Mul(l.Specular).Scale(math32.Pow(spec, mat.Shininess)))
	}
	return out.Color(mat.Opacity)
}

func (r *Renderer) depthTest(w int, x, y int, z float32) bool {
	if !r.Depth || r.depthBuf == nil {
		return true
	}
	if x < 0 || y < 0 || x >= w {
		return false
	}
	idx := y*w + x
	if idx < 0 || idx >= len(r.depthBuf) {
		return false
	}
	// NDC z is in [-1,1]. Map to [0,1].
	d := z*0.5 + 0.5
	if d < 0 || d > 1 {
		return false
	}
	if d >= r.depthBuf[idx] {
		return false
	}
	r.depthBuf[idx] = d
	return true
}

func (r *Renderer) drawLine(t Target, x0, y0, x1, y1 int, c Color) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		t.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// fillTriangle rasterizes with barycentric depth; colors are interpolated when
// smooth is set, otherwise v[0].c is used for the whole face.
func (r *Renderer) fillTriangle(t Target, w, h int, v [3]screenVertex, smooth bool) {
	area := edgeFn(v[0].x, v[0].y, v[1].x, v[1].y, v[2].x, v[2].y)
	if area == 0 {
		return
	}
	if area < 0 {
		v[1], v[2] = v[2], v[1]
		area = -area
	}

	minX, maxX := min3(v[0].x, v[1].x, v[2].x), max3(v[0].x, v[1].x, v[2].x)
	minY, maxY := min3(v[0].y, v[1].y, v[2].y), max3(v[0].y, v[1].y, v[2].y)
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= w {
		maxX = w - 1
	}
	if maxY >= h {
		maxY = h - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	invArea := 1.0 / float32(area)
	c0, c1, c2 := v[0].c.Float(), v[1].c.Float(), v[2].c.Float()
	flat := v[0].c

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			w0 := edgeFn(v[1].x, v[1].y, v[2].x, v[2].y, x, y)
			w1 := edgeFn(v[2].x, v[2].y, v[0].x, v[0].y, x, y)
			w2 := edgeFn(v[0].x, v[0].y, v[1].x, v[1].y, x, y)
			if (w0 | w1 | w2) < 0 {
				continue
			}
			a0 := float32(w0) * invArea
			a1 := float32(w1) * invArea
			a2 := float32(w2) * invArea
			z := a0*v[0].z + a1*v[1].z + a2*v[2].z
			if !r.depthTest(w, x, y, z) {
				continue
			}
			if !smooth {
				t.SetPixel(x, y, flat)
				continue
			}
			c := c0.Scale(a0).Add(c1.Scale(a1)).Add(c2.Scale(a2))
			t.SetPixel(x, y, c.Color(0xFF))
		}
	}
}

func edgeFn(x0, y0, x1, y1, x, y int) int {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func min3(a, b, c int) int {
	if a > b {
		a = b
	}
	if a > c {
		a = c
	}
	return a
}

func max3(a, b, c int) int {
	if a < b {
		a = b
	}
	if a < c {
		a = c
	}
	return a
}
