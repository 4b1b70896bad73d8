package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

type CameraBuilderOption func(*cameraImpl)

// WithEye sets the camera's starting position.
//
// Parameters:
//   - eye: world-space position
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's eye
func WithEye(eye mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.eye = eye
	}
}

// WithTarget sets the look-at point.
//
// Parameters:
//   - target: world-space point the camera faces
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's target
func WithTarget(target mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = target
	}
}

// WithUp sets the world up vector.
//
// Parameters:
//   - up: the up direction, need not be normalized
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(up mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = up
	}
}

// WithFov sets the camera's vertical field of view in radians.
//
// Parameters:
//   - fovy: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fovy float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fovy = fovy
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - znear: near plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the near plane
func WithNear(znear float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.znear = znear
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - zfar: far plane distance
//
// Returns:
//   - CameraBuilderOption: functional option to set the far plane
func WithFar(zfar float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.zfar = zfar
	}
}
