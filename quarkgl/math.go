package quarkgl

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Scalar is the numeric type used by QuarkGL math operations.
type Scalar = float32

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z Scalar
}

// Vec4 is a 4D vector.
type Vec4 struct {
	X, Y, Z, W Scalar
}

// Mat4 is a column-major 4x4 matrix.
//
// It matches the conventional OpenGL layout:
// m[col*4+row].
type Mat4 = mgl32.Mat4

func V3(x, y, z Scalar) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3   { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3   { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Mul(s Scalar) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) mgl() mgl32.Vec3 { return mgl32.Vec3{v.X, v.Y, v.Z} }

func fromMgl3(v mgl32.Vec3) Vec3 { return Vec3{X: v[0], Y: v[1], Z: v[2]} }

func Dot(a, b Vec3) Scalar { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func Cross(a, b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func Len(v Vec3) Scalar {
	return math32.Sqrt(Dot(v, v))
}

func Normalize(v Vec3) Vec3 {
	l := Len(v)
	if l == 0 {
		return Vec3{}
	}
	return v.Mul(1 / l)
}

func Clamp01(v Scalar) Scalar {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func Mat4Identity() Mat4 { return mgl32.Ident4() }

func Mat4Mul(a, b Mat4) Mat4 { return a.Mul4(b) }

func Mat4MulV4(m Mat4, v Vec4) Vec4 {
	r := m.Mul4x1(mgl32.Vec4{v.X, v.Y, v.Z, v.W})
	return Vec4{X: r[0], Y: r[1], Z: r[2], W: r[3]}
}

// Mat4MulPoint transforms a point (w=1) and drops the w component.
func Mat4MulPoint(m Mat4, p Vec3) Vec3 {
	return fromMgl3(mgl32.TransformCoordinate(p.mgl(), m))
}

// Mat4MulNormal transforms a direction by the inverse transpose of the upper 3x3.
func Mat4MulNormal(m Mat4, n Vec3) Vec3 {
	m3 := m.Mat3()
	if m3.Det() == 0 {
		return Normalize(n)
	}
	return Normalize(fromMgl3(m3.Inv().Transpose().Mul3x1(n.mgl())))
}

func Mat4Translate(v Vec3) Mat4 { return mgl32.Translate3D(v.X, v.Y, v.Z) }

func Mat4Scale(v Vec3) Mat4 { return mgl32.Scale3D(v.X, v.Y, v.Z) }

func Mat4RotateX(rad Scalar) Mat4 { return mgl32.HomogRotate3DX(rad) }

func Mat4RotateY(rad Scalar) Mat4 { return mgl32.HomogRotate3DY(rad) }

// Mat4RotateDeg rotates by deg degrees about an arbitrary axis, like glRotatef.
func Mat4RotateDeg(deg Scalar, axis Vec3) Mat4 {
	a := Normalize(axis)
	if a == (Vec3{}) {
		return Mat4Identity()
	}
	return mgl32.HomogRotate3D(mgl32.DegToRad(deg), a.mgl())
}

func Mat4LookAt(eye, target, up Vec3) Mat4 {
	return mgl32.LookAtV(eye.mgl(), target.mgl(), up.mgl())
}

func Mat4Perspective(fovYRad Scalar, aspect Scalar, zNear, zFar Scalar) Mat4 {
	if aspect == 0 {
		aspect = 1
	}
	return mgl32.Perspective(fovYRad, aspect, zNear, zFar)
}

func Mat4Ortho(left, right, bottom, top, zNear, zFar Scalar) Mat4 {
	if right == left {
		right = left + 1
	}
	if top == bottom {
		top = bottom + 1
	}
	if zFar == zNear {
		zFar = zNear + 1
	}
	return mgl32.Ortho(left, right, bottom, top, zNear, zFar)
}

// DegToRad converts degrees to radians.
func DegToRad(deg Scalar) Scalar { return mgl32.DegToRad(deg) }
