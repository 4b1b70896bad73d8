package camera

import (
	"github.com/Carmen-Shannon/oxy-demo/engine/input"
)

// CameraController turns an input snapshot into camera motion once per frame.
//
// Key mapping:
//   - W/S move forward and backward, A/D move left and right, Q/E move down and up
//   - Left/Right arrows turn, Up/Down arrows tilt
//   - holding the mouse-look button rotates the camera by the mouse delta
type CameraController interface {
	// Update applies the held keys and mouse movement of state to cam.
	// Translation is MoveSpeed × dt and keyboard rotation is RotationSpeed × dt.
	//
	// Parameters:
	//   - cam: the camera to move
	//   - dt: seconds since the previous frame
	//   - state: the current input snapshot
	Update(cam Camera, dt float32, state *input.State)

	// MoveSpeed returns the translation speed in world units per second.
	//
	// Returns:
	//   - float32: units per second
	MoveSpeed() float32

	// RotationSpeed returns the keyboard rotation speed in radians per second.
	//
	// Returns:
	//   - float32: radians per second
	RotationSpeed() float32

	// MouseSensitivity returns the radians of rotation per pixel of mouse movement.
	//
	// Returns:
	//   - float32: radians per pixel
	MouseSensitivity() float32

	// SetMoveSpeed sets the translation speed.
	//
	// Parameters:
	//   - speed: units per second
	SetMoveSpeed(speed float32)

	// SetRotationSpeed sets the keyboard rotation speed.
	//
	// Parameters:
	//   - speed: radians per second
	SetRotationSpeed(speed float32)

	// SetMouseSensitivity sets the mouse look sensitivity.
	//
	// Parameters:
	//   - sensitivity: radians per pixel
	SetMouseSensitivity(sensitivity float32)
}
