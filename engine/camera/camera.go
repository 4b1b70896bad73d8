package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-demo/common"
	"github.com/go-gl/mathgl/mgl32"
)

// maxPitch keeps the view direction just short of the up axis so the right vector stays defined.
const maxPitch = math.Pi/2 - 0.01

type cameraImpl struct {
	eye    mgl32.Vec3
	target mgl32.Vec3
	up     mgl32.Vec3

	aspect float32
	fovy   float32
	znear  float32
	zfar   float32
}

// Camera is a look-at perspective camera.
// Eye and target move together for translation; rotation pivots the target around the eye.
type Camera interface {
	// Eye returns the camera position.
	Eye() mgl32.Vec3

	// Target returns the look-at point.
	Target() mgl32.Vec3

	// Up returns the world up vector.
	Up() mgl32.Vec3

	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// Forward returns the normalized view direction, or the zero vector if eye and target coincide.
	Forward() mgl32.Vec3

	// Right returns normalize(forward × up), or the zero vector if it is undefined.
	Right() mgl32.Vec3

	// ViewMatrix returns the right-handed look-at matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the perspective matrix with WebGPU [0, 1] clip depth.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// BuildViewProjectionMatrix returns projection × view.
	//
	// Returns:
	//   - mgl32.Mat4: the combined view-projection matrix
	BuildViewProjectionMatrix() mgl32.Mat4

	// MoveForward translates eye and target along the view direction.
	// Does nothing if eye and target coincide.
	//
	// Parameters:
	//   - distance: world units, negative moves backward
	MoveForward(distance float32)

	// MoveRight translates eye and target along the camera's right axis.
	// Does nothing if the right axis is undefined.
	//
	// Parameters:
	//   - distance: world units, negative moves left
	MoveRight(distance float32)

	// MoveUp translates eye and target along the world up vector.
	//
	// Parameters:
	//   - distance: world units, negative moves down
	MoveUp(distance float32)

	// RotateHorizontal turns the view direction around world up, keeping the eye fixed.
	// Positive angles turn left.
	//
	// Parameters:
	//   - angle: radians
	RotateHorizontal(angle float32)

	// RotateVertical tilts the view direction around the camera's right axis, keeping the eye fixed.
	// Positive angles look up. The resulting pitch is clamped short of straight up or down.
	//
	// Parameters:
	//   - angle: radians
	RotateVertical(angle float32)

	// SetEye moves the camera without changing the target.
	SetEye(eye mgl32.Vec3)

	// SetTarget changes the look-at point.
	SetTarget(target mgl32.Vec3)

	// SetAspect sets the aspect ratio (width / height).
	SetAspect(aspect float32)

	// SetFov sets the vertical field of view in radians.
	SetFov(fovy float32)

	// SetNear sets the near clipping plane distance.
	SetNear(znear float32)

	// SetFar sets the far clipping plane distance.
	SetFar(zfar float32)

	// Validate checks that the projection parameters are usable.
	//
	// Returns:
	//   - error: a ConfigError describing the first invalid parameter, or nil
	Validate() error
}

var _ Camera = &cameraImpl{}

// NewCamera creates a camera at (0, 0, 3) looking at the origin with +Y up,
// a 45° vertical field of view and clip planes at 0.1 and 100.
//
// Parameters:
//   - aspect: the initial aspect ratio (width / height)
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(aspect float32, options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		eye:    mgl32.Vec3{0, 0, 3},
		target: mgl32.Vec3{0, 0, 0},
		up:     mgl32.Vec3{0, 1, 0},
		aspect: aspect,
		fovy:   mgl32.DegToRad(45),
		znear:  0.1,
		zfar:   100,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *cameraImpl) Eye() mgl32.Vec3 {
	return c.eye
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	return c.target
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	return c.up
}

func (c *cameraImpl) Fov() float32 {
	return c.fovy
}

func (c *cameraImpl) Aspect() float32 {
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	return c.znear
}

func (c *cameraImpl) Far() float32 {
	return c.zfar
}

func (c *cameraImpl) Forward() mgl32.Vec3 {
	dir := c.target.Sub(c.eye)
	if dir.Len() < common.Epsilon {
		return mgl32.Vec3{}
	}
	return dir.Normalize()
}

func (c *cameraImpl) Right() mgl32.Vec3 {
	right := c.Forward().Cross(c.up)
	if right.Len() < common.Epsilon {
		return mgl32.Vec3{}
	}
	return right.Normalize()
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.eye, c.target, c.up)
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	return common.PerspectiveMat(c.fovy, c.aspect, c.znear, c.zfar)
}

func (c *cameraImpl) BuildViewProjectionMatrix() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

func (c *cameraImpl) translate(offset mgl32.Vec3) {
	c.eye = c.eye.Add(offset)
	c.target = c.target.Add(offset)
}

func (c *cameraImpl) MoveForward(distance float32) {
	forward := c.Forward()
	if forward.Len() == 0 {
		return
	}
	c.translate(forward.Mul(distance))
}

func (c *cameraImpl) MoveRight(distance float32) {
	right := c.Right()
	if right.Len() == 0 {
		return
	}
	c.translate(right.Mul(distance))
}

func (c *cameraImpl) MoveUp(distance float32) {
	if c.up.Len() < common.Epsilon {
		return
	}
	c.translate(c.up.Normalize().Mul(distance))
}

func (c *cameraImpl) RotateHorizontal(angle float32) {
	dir := c.target.Sub(c.eye)
	if dir.Len() < common.Epsilon || c.up.Len() < common.Epsilon {
		return
	}
	rotated := mgl32.QuatRotate(angle, c.up.Normalize()).Rotate(dir)
	c.target = c.eye.Add(rotated)
}

func (c *cameraImpl) RotateVertical(angle float32) {
	dir := c.target.Sub(c.eye)
	right := c.Right()
	if dir.Len() < common.Epsilon || right.Len() == 0 {
		return
	}

	// Clamp the resulting pitch rather than the step, so repeated input settles at the limit.
	pitch := float32(math.Asin(float64(common.Clamp(dir.Normalize().Dot(c.up.Normalize()), -1, 1))))
	next := common.Clamp(pitch+angle, -maxPitch, maxPitch)
	if step := next - pitch; step != 0 {
		rotated := mgl32.QuatRotate(step, right).Rotate(dir)
		c.target = c.eye.Add(rotated)
	}
}

func (c *cameraImpl) SetEye(eye mgl32.Vec3) {
	c.eye = eye
}

func (c *cameraImpl) SetTarget(target mgl32.Vec3) {
	c.target = target
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.aspect = aspect
}

func (c *cameraImpl) SetFov(fovy float32) {
	c.fovy = fovy
}

func (c *cameraImpl) SetNear(znear float32) {
	c.znear = znear
}

func (c *cameraImpl) SetFar(zfar float32) {
	c.zfar = zfar
}

func (c *cameraImpl) Validate() error {
	switch {
	case c.znear <= 0:
		return common.NewError(common.ErrConfig, "camera znear must be positive, got %v", c.znear)
	case c.zfar <= c.znear:
		return common.NewError(common.ErrConfig, "camera zfar (%v) must exceed znear (%v)", c.zfar, c.znear)
	case c.aspect <= 0:
		return common.NewError(common.ErrConfig, "camera aspect must be positive, got %v", c.aspect)
	case c.fovy <= 0 || c.fovy >= math.Pi:
		return common.NewError(common.ErrConfig, "camera fov must be in (0, pi), got %v", c.fovy)
	}
	return nil
}
