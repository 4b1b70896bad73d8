package scene

import (
	"github.com/Carmen-Shannon/oxy-demo/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is a position, rotation and scale in world space.
// It is a plain value: the With* methods return modified copies.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// NewTransform returns the identity transform: origin, no rotation, unit scale.
func NewTransform() Transform {
	return Transform{
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// WithPosition returns a copy of t moved to position.
func (t Transform) WithPosition(position mgl32.Vec3) Transform {
	t.Position = position
	return t
}

// WithRotation returns a copy of t with the given orientation.
func (t Transform) WithRotation(rotation mgl32.Quat) Transform {
	t.Rotation = rotation
	return t
}

// WithScale returns a copy of t with the given per-axis scale.
func (t Transform) WithScale(scale mgl32.Vec3) Transform {
	t.Scale = scale
	return t
}

// SetPosition moves t in place.
func (t *Transform) SetPosition(position mgl32.Vec3) {
	t.Position = position
}

// Matrix returns the model matrix T·R·S. It is computed on every call.
//
// Returns:
//   - mgl32.Mat4: the column-major model matrix
func (t Transform) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(t.Rotation.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

// Forward returns the local -Z axis in world space.
func (t Transform) Forward() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
}

// Right returns the local +X axis in world space.
func (t Transform) Right() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{1, 0, 0})
}

// Up returns the local +Y axis in world space.
func (t Transform) Up() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{0, 1, 0})
}

// Decompose splits an affine T·R·S matrix back into a Transform.
// A negative determinant is folded into the X scale. Matrices with a zero scale axis get an identity rotation.
//
// Parameters:
//   - m: an affine matrix without shear
//
// Returns:
//   - Transform: the transform whose Matrix reproduces m
func Decompose(m mgl32.Mat4) Transform {
	t := NewTransform()
	t.Position = m.Col(3).Vec3()

	x, y, z := m.Col(0).Vec3(), m.Col(1).Vec3(), m.Col(2).Vec3()
	sx, sy, sz := x.Len(), y.Len(), z.Len()
	if m.Det() < 0 {
		sx = -sx
	}
	t.Scale = mgl32.Vec3{sx, sy, sz}

	if abs32(sx) < common.Epsilon || sy < common.Epsilon || sz < common.Epsilon {
		return t
	}

	rot := mgl32.Ident4()
	rot.SetCol(0, x.Mul(1/sx).Vec4(0))
	rot.SetCol(1, y.Mul(1/sy).Vec4(0))
	rot.SetCol(2, z.Mul(1/sz).Vec4(0))
	t.Rotation = mgl32.Mat4ToQuat(rot).Normalize()
	return t
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
