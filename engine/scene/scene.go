package scene

import (
	"github.com/Carmen-Shannon/oxy-demo/engine/camera"
	"github.com/Carmen-Shannon/oxy-demo/engine/input"
	"github.com/Carmen-Shannon/oxy-demo/engine/resource"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Scene owns a camera and a flat, ordered list of RenderObjects.
// All methods are called from the render thread; none of them lock.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Initialize creates the scene's GPU resources through rm and adds its initial objects.
	// Calling it again after a success does nothing. After a failure the scene stays
	// uninitialized and Initialize may be retried.
	//
	// Parameters:
	//   - rm: the resource manager to create resources in
	//
	// Returns:
	//   - error: the first shader, pipeline or buffer error encountered
	Initialize(rm resource.ResourceManager) error

	// Initialized reports whether Initialize has succeeded.
	Initialized() bool

	// SetSurfaceFormat sets the color target format pipelines are built for.
	// It only takes effect if called before Initialize.
	//
	// Parameters:
	//   - format: the negotiated surface format
	SetSurfaceFormat(format wgpu.TextureFormat)

	// Update advances the scene by dt seconds using the current input.
	//
	// Parameters:
	//   - dt: seconds since the previous frame
	//   - state: the current input snapshot
	Update(dt float32, state *input.State)

	// UpdateCameraUniform recomputes the view-projection matrix and writes it to the camera buffer.
	//
	// Parameters:
	//   - rm: the resource manager holding the camera buffer
	//
	// Returns:
	//   - error: ResourceNotFound if the camera buffer is missing, or the write error
	UpdateCameraUniform(rm resource.ResourceManager) error

	// SyncObjectUniforms writes the model matrix of every dirty object to its model buffer.
	//
	// Parameters:
	//   - rm: the resource manager used for the writes
	//
	// Returns:
	//   - error: the first write error
	SyncObjectUniforms(rm resource.ResourceManager) error

	// RenderObjects returns the objects in draw order. The slice must not be modified.
	RenderObjects() []*RenderObject

	// CameraBindGroup returns the bind group holding the camera uniform, if it has been created.
	CameraBindGroup() (*wgpu.BindGroup, bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Resize updates the camera aspect ratio. Zero dimensions are ignored.
	//
	// Parameters:
	//   - width, height: the new surface size in pixels
	Resize(width, height uint32)

	// AddObject adds a primitive at position and returns its id.
	//
	// Parameters:
	//   - kind: the primitive to add
	//   - position: world-space position
	//
	// Returns:
	//   - ObjectId: the new object's id
	//   - error: an error if the scene is not initialized or a resource could not be created
	AddObject(kind resource.PrimitiveKind, position mgl32.Vec3) (ObjectId, error)

	// MoveObject sets an object's position.
	//
	// Returns:
	//   - bool: false if no object has the id
	MoveObject(id ObjectId, position mgl32.Vec3) bool

	// RemoveObject removes an object and releases its per-object resources.
	//
	// Returns:
	//   - bool: false if no object has the id
	RemoveObject(id ObjectId) bool

	// SetObjectVisible shows or hides an object without removing it.
	//
	// Returns:
	//   - bool: false if no object has the id
	SetObjectVisible(id ObjectId, visible bool) bool

	// Object returns the object with the given id.
	Object(id ObjectId) (*RenderObject, bool)
}
