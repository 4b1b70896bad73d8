package camera

import (
	"github.com/Carmen-Shannon/oxy-demo/common"
	"github.com/Carmen-Shannon/oxy-demo/engine/input"
)

// cameraControllerImpl is the single implementation of CameraController.
type cameraControllerImpl struct {
	moveSpeed        float32
	rotationSpeed    float32
	mouseSensitivity float32

	// mouseLookButton must be held for mouse movement to rotate the camera.
	mouseLookButton uint32
	mouseLook       bool
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a first-person controller moving at 5 units/s,
// turning at 1 rad/s and looking 0.001 rad per pixel while the right mouse button is held.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		moveSpeed:        5.0,
		rotationSpeed:    1.0,
		mouseSensitivity: 0.001,
		mouseLookButton:  common.MouseButtonRight,
		mouseLook:        true,
	}
	for _, option := range options {
		option(cc)
	}
	return cc
}

// axis returns +1, -1 or 0 depending on which of the two keys is held.
func axis(state *input.State, positive, negative uint32) float32 {
	var v float32
	if state.IsKeyPressed(positive) {
		v++
	}
	if state.IsKeyPressed(negative) {
		v--
	}
	return v
}

func (cc *cameraControllerImpl) Update(cam Camera, dt float32, state *input.State) {
	if cam == nil || state == nil {
		return
	}

	step := cc.moveSpeed * dt
	if v := axis(state, common.KeyW, common.KeyS); v != 0 {
		cam.MoveForward(v * step)
	}
	if v := axis(state, common.KeyD, common.KeyA); v != 0 {
		cam.MoveRight(v * step)
	}
	if v := axis(state, common.KeyE, common.KeyQ); v != 0 {
		cam.MoveUp(v * step)
	}

	turn := cc.rotationSpeed * dt
	if v := axis(state, common.KeyLeft, common.KeyRight); v != 0 {
		cam.RotateHorizontal(v * turn)
	}
	if v := axis(state, common.KeyUp, common.KeyDown); v != 0 {
		cam.RotateVertical(v * turn)
	}

	if cc.mouseLook && state.IsMouseButtonPressed(cc.mouseLookButton) {
		dx, dy := state.MouseDelta()
		// Screen y grows downward, so dragging up looks up.
		if dx != 0 {
			cam.RotateHorizontal(-dx * cc.mouseSensitivity)
		}
		if dy != 0 {
			cam.RotateVertical(-dy * cc.mouseSensitivity)
		}
	}
}

func (cc *cameraControllerImpl) MoveSpeed() float32 {
	return cc.moveSpeed
}

func (cc *cameraControllerImpl) RotationSpeed() float32 {
	return cc.rotationSpeed
}

func (cc *cameraControllerImpl) MouseSensitivity() float32 {
	return cc.mouseSensitivity
}

func (cc *cameraControllerImpl) SetMoveSpeed(speed float32) {
	cc.moveSpeed = speed
}

func (cc *cameraControllerImpl) SetRotationSpeed(speed float32) {
	cc.rotationSpeed = speed
}

func (cc *cameraControllerImpl) SetMouseSensitivity(sensitivity float32) {
	cc.mouseSensitivity = sensitivity
}
