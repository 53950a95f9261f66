package submarine

import (
	"subscene/motion"
	"subscene/quadmesh"
	"subscene/quarkgl"
)

// Scene layout. The submarine hull is centred four units above the ground
// and points along +X at heading zero.
var (
	cameraEye    = quarkgl.V3(0, 6, 22)
	cameraTarget = quarkgl.V3(0, 0, 0)

	clearColor = quarkgl.RGBf(0.6, 0.6, 0.6)

	groundMaterial = quadmesh.Material{
		Ambient:   quadmesh.V(0, 0.05, 0),
		Diffuse:   quadmesh.V(0.4, 0.8, 0.4),
		Specular:  quadmesh.V(0.04, 0.04, 0.04),
		Shininess: 0.2,
	}

	hullMaterial = quarkgl.Material{
		Ambient:   quarkgl.RGBF{R: 0.4, G: 0.2, B: 0},
		Diffuse:   quarkgl.RGBF{R: 0.9, G: 0.5, B: 0},
		Specular:  quarkgl.RGBF{R: 0.1, G: 0.1, B: 0},
		Shininess: 0,
		Opacity:   0xFF,
	}
)

const (
	fovYDeg = 60
	zNear   = 0.2
	zFar    = 40

	// Propeller hub position in model space.
	propX, propY = -8, 3.95
)

func setupCamera(s *quarkgl.Scene) {
	s.Camera = quarkgl.Camera{
		Type:     quarkgl.CameraPerspective,
		Position: cameraEye,
		Target:   cameraTarget,
		Up:       quarkgl.V3(0, 1, 0),
		FOVYRad:  quarkgl.DegToRad(fovYDeg),
		Near:     zNear,
		Far:      zFar,
	}
}

func setupLights(s *quarkgl.Scene) {
	s.Lights[0] = quarkgl.Light{
		Enabled:    true,
		Positional: true,
		Position:   quarkgl.V3(-6, 12, 0),
		Ambient:    quarkgl.RGBF{R: 0.2, G: 0.2, B: 0.2},
		Diffuse:    quarkgl.RGBF{R: 1, G: 1, B: 1},
		Specular:   quarkgl.RGBF{R: 1, G: 1, B: 1},
	}
	// Second lamp is placed but switched off.
	s.Lights[1] = quarkgl.Light{
		Positional: true,
		Position:   quarkgl.V3(6, 12, 0),
		Ambient:    quarkgl.RGBF{R: 0.2, G: 0.2, B: 0.2},
		Diffuse:    quarkgl.RGBF{R: 1, G: 1, B: 1},
		Specular:   quarkgl.RGBF{R: 1, G: 1, B: 1},
	}
}

// buildGround returns a size x size grid centred on the origin in the XZ plane.
func buildGround(size float64, subdivisions int) *quadmesh.Mesh {
	half := size / 2
	return quadmesh.Build(
		quadmesh.V(-half, 0, half),
		quadmesh.V(1, 0, 0),
		quadmesh.V(0, 0, -1),
		size, size, subdivisions,
	).WithMaterial(groundMaterial)
}

// model is the submarine node tree plus the nodes that move each frame.
type model struct {
	root  *quarkgl.Node
	props [2]*quarkgl.Node
}

// buildModel adds the submarine parts to s and returns the node tree.
func buildModel(s *quarkgl.Scene) model {
	hull := quarkgl.NewSphereMesh(1, 20, 20)
	box := quarkgl.NewCubeMesh(1)
	blade := quarkgl.NewCubeMesh(0.3)

	part := func(name string, m quarkgl.Mesh, local quarkgl.Transform) *quarkgl.Node {
		m.Material = hullMaterial
		return quarkgl.NewMeshNode(name, s.AddMesh(m), local.Mat4())
	}

	var md model
	md.root = quarkgl.NewNode("submarine")
	md.props[0] = part("propeller.0", blade, quarkgl.Identity())
	md.props[1] = part("propeller.1", blade, quarkgl.Identity())
	md.root.Add(
		part("hull", hull, quarkgl.Identity().
			Translate(0, 4, 0).
			Scale(8, 1, 1)),
		part("tower", box, quarkgl.Identity().
			Translate(1.8, 5.3, 0).
			Scale(2, 1, 0.6)),
		part("tower.fin", box, quarkgl.Identity().
			Translate(1.8, 5.1, 0).
			RotateDeg(90, 0, 0, 1).
			RotateDeg(90, 0, 1, 0).
			Scale(1.5, 0.5, 0.2)),
		part("tail.vertical", box, quarkgl.Identity().
			Translate(-7, 4, 0).
			RotateDeg(90, 0, 0, 1).
			RotateDeg(90, 0, 1, 0).
			Scale(1.5, 1, 0.3)),
		part("tail.horizontal", box, quarkgl.Identity().
			Translate(-7, 4, 0).
			Scale(1.5, 1, 0.3)),
		md.props[0],
		md.props[1],
	)
	return md
}

// pose updates the moving transforms from st and pushes world transforms
// into s.
func (md model) pose(s *quarkgl.Scene, st motion.State) {
	md.root.Local = quarkgl.Identity().
		Translate(float32(st.X), float32(st.Y), float32(st.Z)).
		RotateDeg(float32(st.Heading), 0, 1, 0).
		Mat4()

	spin := float32(st.Spin)
	md.props[0].Local = quarkgl.Identity().
		Translate(propX, propY, 0).
		RotateDeg(spin, 1, 0, 0).
		RotateDeg(90, 1, 0, 0).
		RotateDeg(90, 0, 0, 1).
		Scale(4, 1, 0.4).
		Mat4()
	md.props[1].Local = quarkgl.Identity().
		Translate(propX, propY, 0).
		RotateDeg(spin, 1, 0, 0).
		RotateDeg(90, 0, 0, 1).
		Scale(4, 1, 0.4).
		Mat4()

	md.root.Apply(s, quarkgl.Mat4Identity())
}
