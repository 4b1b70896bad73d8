package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the length below which a direction vector is treated as zero.
const Epsilon = 1e-8

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// Perspective creates a right-handed perspective projection matrix.
// Depth is mapped to the WebGPU clip space range [0, 1] with a finite far plane.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// PerspectiveMat is Perspective returning an mgl32.Mat4 instead of writing into a slice.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance
//   - far: far clipping plane distance
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func PerspectiveMat(fovY, aspect, near, far float32) mgl32.Mat4 {
	var m mgl32.Mat4
	Perspective(m[:], fovY, aspect, near, far)
	return m
}

// IsFinite reports whether every element of the matrix is a finite number.
//
// Parameters:
//   - m: the matrix to check
//
// Returns:
//   - bool: false if any element is NaN or infinite
func IsFinite(m mgl32.Mat4) bool {
	for _, v := range m {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
