package quarkgl

import "github.com/chewxy/math32"

// OrbitController orbits a camera around a target point.
//
// It does not depend on any input system; callers translate pointer drags and
// wheel steps into Rotate and Zoom.
type OrbitController struct {
	Target Vec3
	Yaw    Scalar
	Pitch  Scalar
	Radius Scalar

	MinRadius Scalar
	MaxRadius Scalar
}

// maxPitch keeps the camera off the poles where the up vector degenerates.
const maxPitch = math32.Pi/2 - 0.05

// OrbitFrom returns a controller whose Apply reproduces a camera placed at eye
// looking at target.
func OrbitFrom(eye, target Vec3) OrbitController {
	d := eye.Sub(target)
	r := Len(d)
	c := OrbitController{Target: target, Radius: r}
	if r == 0 {
		return c
	}
	c.Pitch = -math32.Asin(d.Y / r)
	c.Yaw = math32.Atan2(d.X, d.Z)
	return c
}

func (c *OrbitController) Apply(cam *Camera) {
	if cam == nil {
		return
	}
	r := c.Radius
	if r == 0 {
		r = Scalar(3)
	}
	if c.MinRadius != 0 && r < c.MinRadius {
		r = c.MinRadius
	}
	if c.MaxRadius != 0 && r > c.MaxRadius {
		r = c.MaxRadius
	}

	m := Mat4Mul(Mat4RotateY(c.Yaw), Mat4RotateX(c.Pitch))
	p := Mat4MulV4(m, Vec4{X: 0, Y: 0, Z: r, W: 1})

	cam.Position = c.Target.Add(V3(p.X, p.Y, p.Z))
	cam.Target = c.Target
	if cam.Up == (Vec3{}) {
		cam.Up = V3(0, 1, 0)
	}
}

func (c *OrbitController) Rotate(deltaYaw, deltaPitch Scalar) {
	c.Yaw += deltaYaw
	c.Pitch += deltaPitch
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
}

func (c *OrbitController) Zoom(delta Scalar) {
	c.Radius += delta
	if c.MinRadius != 0 && c.Radius < c.MinRadius {
		c.Radius = c.MinRadius
	}
	if c.MaxRadius != 0 && c.Radius > c.MaxRadius {
		c.Radius = c.MaxRadius
	}
}
