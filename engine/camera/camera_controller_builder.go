package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithMoveSpeed sets the translation speed.
//
// Parameters:
//   - speed: world units per second
//
// Returns:
//   - CameraControllerOption: functional option to set the move speed
func WithMoveSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.moveSpeed = speed
	}
}

// WithRotationSpeed sets the keyboard rotation speed.
//
// Parameters:
//   - speed: radians per second
//
// Returns:
//   - CameraControllerOption: functional option to set the rotation speed
func WithRotationSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.rotationSpeed = speed
	}
}

// WithMouseSensitivity sets the mouse look sensitivity.
//
// Parameters:
//   - sensitivity: radians per pixel of mouse movement
//
// Returns:
//   - CameraControllerOption: functional option to set mouse sensitivity
func WithMouseSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.mouseSensitivity = sensitivity
	}
}

// WithMouseLook selects the button that enables mouse look, or disables mouse look entirely.
//
// Parameters:
//   - enabled: false to ignore mouse movement
//   - button: the mouse button that must be held, e.g. common.MouseButtonRight
//
// Returns:
//   - CameraControllerOption: functional option to configure mouse look
func WithMouseLook(enabled bool, button uint32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.mouseLook = enabled
		cc.mouseLookButton = button
	}
}
