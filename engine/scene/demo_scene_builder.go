package scene

import (
	"github.com/Carmen-Shannon/oxy-demo/engine/camera"
	"github.com/Carmen-Shannon/oxy-demo/engine/resource"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// InitialObject is a primitive added when the scene initializes.
type InitialObject struct {
	Kind     resource.PrimitiveKind
	Position mgl32.Vec3
}

// DemoSceneBuilderOption is a functional option for configuring a DemoScene.
// Use the With* functions to create options.
type DemoSceneBuilderOption func(s *demoScene)

// WithName sets the scene's identifier.
//
// Parameters:
//   - name: the scene name
//
// Returns:
//   - DemoSceneBuilderOption: option function to apply
func WithName(name string) DemoSceneBuilderOption {
	return func(s *demoScene) {
		s.name = name
	}
}

// WithCamera replaces the default camera.
//
// Parameters:
//   - cam: the camera to use
//
// Returns:
//   - DemoSceneBuilderOption: option function to apply
func WithCamera(cam camera.Camera) DemoSceneBuilderOption {
	return func(s *demoScene) {
		s.camera = cam
	}
}

// WithController replaces the default camera controller.
//
// Parameters:
//   - controller: the controller that turns input into camera motion
//
// Returns:
//   - DemoSceneBuilderOption: option function to apply
func WithController(controller camera.CameraController) DemoSceneBuilderOption {
	return func(s *demoScene) {
		s.controller = controller
	}
}

// WithMoveSpeed sets the camera translation speed in units per second.
//
// Parameters:
//   - speed: units per second
//
// Returns:
//   - DemoSceneBuilderOption: option function to apply
func WithMoveSpeed(speed float32) DemoSceneBuilderOption {
	return func(s *demoScene) {
		s.controllerOptions = append(s.controllerOptions, camera.WithMoveSpeed(speed))
	}
}

// WithRotationSpeed sets the keyboard rotation speed in radians per second.
//
// Parameters:
//   - speed: radians per second
//
// Returns:
//   - DemoSceneBuilderOption: option function to apply
func WithRotationSpeed(speed float32) DemoSceneBuilderOption {
	return func(s *demoScene) {
		s.controllerOptions = append(s.controllerOptions, camera.WithRotationSpeed(speed))
	}
}

// WithMouseSensitivity sets the mouse look sensitivity in radians per pixel.
//
// Parameters:
//   - sensitivity: radians per pixel
//
// Returns:
//   - DemoSceneBuilderOption: option function to apply
func WithMouseSensitivity(sensitivity float32) DemoSceneBuilderOption {
	return func(s *demoScene) {
		s.controllerOptions = append(s.controllerOptions, camera.WithMouseSensitivity(sensitivity))
	}
}

// WithSurfaceFormat sets the color target format the pipeline is built for.
// It must match the format negotiated by the surface.
//
// Parameters:
//   - format: the surface texture format
//
// Returns:
//   - DemoSceneBuilderOption: option function to apply
func WithSurfaceFormat(format wgpu.TextureFormat) DemoSceneBuilderOption {
	return func(s *demoScene) {
		s.surfaceFormat = format
	}
}

// WithInitialObjects replaces the objects added during Initialize.
// Pass no objects to start with an empty scene.
//
// Parameters:
//   - objects: the primitives to add, in draw order
//
// Returns:
//   - DemoSceneBuilderOption: option function to apply
func WithInitialObjects(objects ...InitialObject) DemoSceneBuilderOption {
	return func(s *demoScene) {
		s.initialObjects = objects
	}
}

