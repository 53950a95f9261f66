package quarkgl

// Material describes how a surface responds to light.
//
// Colors are linear 0..1 triples. Shininess is the specular exponent; zero
// makes the specular term a constant Specular×light wherever the surface
// faces the light, as in fixed-function GL.
type Material struct {
	Ambient   RGBF
	Diffuse   RGBF
	Specular  RGBF
	Shininess Scalar
	Opacity   uint8 // 0..255. 255 means opaque.
}

// FlatMaterial returns a material that shows c under full ambient light.
func FlatMaterial(c Color) Material {
	f := c.Float()
	return Material{Ambient: f, Diffuse: f, Opacity: 0xFF}
}

// Light is a single light source.
//
// When Positional is set, Position is a point light location in world space;
// otherwise Position is the direction the light travels.
type Light struct {
	Enabled    bool
	Positional bool
	Position   Vec3

	Ambient  RGBF
	Diffuse  RGBF
	Specular RGBF
}

// MaxLights is the number of light slots in a scene.
const MaxLights = 2

// CameraType selects camera projection.
type CameraType uint8

const (
	CameraPerspective CameraType = iota
	CameraOrtho
)

// Camera describes the viewing transform.
type Camera struct {
	Type CameraType

	Position Vec3
	Target   Vec3
	Up       Vec3

	// Perspective.
	FOVYRad Scalar

	// Orthographic (half-height).
	OrthoSize Scalar

	Near Scalar
	Far  Scalar
}

// View returns the camera view matrix.
func (c Camera) View() Mat4 {
	up := c.Up
	if up == (Vec3{}) {
		up = V3(0, 1, 0)
	}
	return Mat4LookAt(c.Position, c.Target, up)
}

// Projection returns the projection matrix for a target aspect.
func (c Camera) Projection(aspect Scalar) Mat4 {
	switch c.Type {
	case CameraOrtho:
		size := c.OrthoSize
		if size == 0 {
			size = 1
		}
		top := size
		bottom := -size
		right := size * aspect
		left := -right
		return Mat4Ortho(left, right, bottom, top, c.Near, c.Far)
	default:
		fov := c.FOVYRad
		if fov == 0 {
			fov = Scalar(1.0)
		}
		return Mat4Perspective(fov, aspect, c.Near, c.Far)
	}
}

// Vertex is a mesh vertex. A zero Normal means "use the face normal".
type Vertex struct {
	Pos    Vec3
	Normal Vec3
	Color  Color
}

// Mesh is a triangle mesh with an object transform.
type Mesh struct {
	Enabled bool

	Vertices []Vertex
	Indices  []uint32 // triangle list

	Transform Mat4
	Material  Material
}

// Scene is a collection of objects to render.
type Scene struct {
	Camera Camera
	Lights [MaxLights]Light

	meshes []Mesh
	alive  []bool
}

// CreateScene allocates a scene with a fixed mesh capacity.
func CreateScene(maxMeshes int) *Scene {
	if maxMeshes < 0 {
		maxMeshes = 0
	}
	s := &Scene{
		Camera: Camera{
			Type:      CameraPerspective,
			Position:  V3(0, 0, 3),
			Target:    V3(0, 0, 0),
			Up:        V3(0, 1, 0),
			FOVYRad:   Scalar(1.0),
			Near:      Scalar(0.05),
			Far:       Scalar(100),
			OrthoSize: Scalar(1),
		},
		meshes: make([]Mesh, maxMeshes),
		alive:  make([]bool, maxMeshes),
	}
	s.Lights[0] = Light{
		Enabled:  true,
		Position: Normalize(V3(-1, -1, -1)),
		Ambient:  RGBF{0.25, 0.25, 0.25},
		Diffuse:  RGBF{0.75, 0.75, 0.75},
	}
	return s
}

// AddMesh adds a mesh to the scene and returns its id or -1 if full.
func (s *Scene) AddMesh(m Mesh) int {
	if s == nil {
		return -1
	}
	for i := range s.meshes {
		if s.alive[i] {
			continue
		}
		if m.Transform == (Mat4{}) {
			m.Transform = Mat4Identity()
		}
		if m.Material.Opacity == 0 {
			m.Material.Opacity = 0xFF
		}
		if m.Material == (Material{Opacity: 0xFF}) {
			m.Material = FlatMaterial(RGB(0xCC, 0xCC, 0xCC))
		}
		m.Enabled = true
		s.meshes[i] = m
		s.alive[i] = true
		return i
	}
	return -1
}

// RemoveMesh removes a mesh by id.
func (s *Scene) RemoveMesh(id int) {
	if !s.valid(id) {
		return
	}
	s.alive[id] = false
	s.meshes[id] = Mesh{}
}

// SetMeshEnabled enables/disables a mesh by id.
func (s *Scene) SetMeshEnabled(id int, enabled bool) {
	if !s.valid(id) {
		return
	}
	s.meshes[id].Enabled = enabled
}

// UpdateMeshTransform updates a mesh transform by id.
func (s *Scene) UpdateMeshTransform(id int, m Mat4) {
	if !s.valid(id) {
		return
	}
	s.meshes[id].Transform = m
}

// UpdateMeshMaterial replaces a mesh material by id.
func (s *Scene) UpdateMeshMaterial(id int, mat Material) {
	if !s.valid(id) {
		return
	}
	if mat.Opacity == 0 {
		mat.Opacity = 0xFF
	}
	s.meshes[id].Material = mat
}

// MeshTransform returns the current transform of a mesh and whether the id is live.
func (s *Scene) MeshTransform(id int) (Mat4, bool) {
	if !s.valid(id) {
		return Mat4{}, false
	}
	return s.meshes[id].Transform, true
}

func (s *Scene) valid(id int) bool {
	return s != nil && id >= 0 && id < len(s.meshes) && s.alive[id]
}

func (s *Scene) eachMesh(fn func(m *Mesh)) {
	for i := range s.meshes {
		if !s.alive[i] {
			continue
		}
		fn(&s.meshes[i])
	}
}
