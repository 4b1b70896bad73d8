package scene

import (
	"github.com/Carmen-Shannon/oxy-demo/common"
	"github.com/Carmen-Shannon/oxy-demo/engine/input"
	"github.com/Carmen-Shannon/oxy-demo/engine/logger"
	"github.com/google/uuid"
)

type sceneEntry struct {
	handle uuid.UUID
	scene  Scene
}

type sceneManager struct {
	scenes  map[string]sceneEntry
	order   []string
	current string
}

// SceneManager keeps named scenes and tracks which one is current.
// Each registration is tagged with a uuid handle that identifies it in logs.
type SceneManager interface {
	// RegisterScene adds or replaces a scene under name.
	//
	// Parameters:
	//   - name: the scene name
	//   - s: the scene
	//
	// Returns:
	//   - uuid.UUID: the handle of this registration
	RegisterScene(name string, s Scene) uuid.UUID

	// UnregisterScene removes a scene. Removing the current scene leaves no scene current.
	//
	// Returns:
	//   - bool: false if no scene has the name
	UnregisterScene(name string) bool

	// SetCurrentScene makes the named scene current.
	//
	// Returns:
	//   - error: a SceneNotFound error if no scene has the name
	SetCurrentScene(name string) error

	// CurrentScene returns the current scene.
	CurrentScene() (Scene, bool)

	// CurrentName returns the name of the current scene, or "" if there is none.
	CurrentName() string

	// Scene returns a scene by name.
	Scene(name string) (Scene, bool)

	// SceneByHandle returns the scene registered with handle, and its name.
	SceneByHandle(handle uuid.UUID) (Scene, string, bool)

	// Handle returns the registration handle of the named scene.
	Handle(name string) (uuid.UUID, bool)

	// Scenes returns the registered names in registration order.
	Scenes() []string

	// Update forwards to the current scene. Does nothing if there is none.
	//
	// Parameters:
	//   - dt: seconds since the previous frame
	//   - state: the current input snapshot
	Update(dt float32, state *input.State)

	// TakeCurrentScene unregisters the current scene and returns it.
	TakeCurrentScene() (Scene, bool)
}

var _ SceneManager = &sceneManager{}

// NewSceneManager creates an empty SceneManager with no current scene.
func NewSceneManager() SceneManager {
	return &sceneManager{
		scenes: make(map[string]sceneEntry),
	}
}

func (m *sceneManager) RegisterScene(name string, s Scene) uuid.UUID {
	if _, ok := m.scenes[name]; !ok {
		m.order = append(m.order, name)
	}
	handle := uuid.New()
	m.scenes[name] = sceneEntry{handle: handle, scene: s}
	logger.Debug("registered scene %s (%s)", name, handle)
	return handle
}

func (m *sceneManager) UnregisterScene(name string) bool {
	if _, ok := m.scenes[name]; !ok {
		return false
	}
	delete(m.scenes, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	if m.current == name {
		m.current = ""
	}
	return true
}

func (m *sceneManager) SetCurrentScene(name string) error {
	entry, ok := m.scenes[name]
	if !ok {
		return common.NewError(common.ErrSceneNotFound, "%s", name)
	}
	m.current = name
	logger.Info("current scene is now %s (%s)", name, entry.handle)
	return nil
}

func (m *sceneManager) CurrentScene() (Scene, bool) {
	if m.current == "" {
		return nil, false
	}
	entry, ok := m.scenes[m.current]
	return entry.scene, ok
}

func (m *sceneManager) CurrentName() string {
	return m.current
}

func (m *sceneManager) Scene(name string) (Scene, bool) {
	entry, ok := m.scenes[name]
	return entry.scene, ok
}

func (m *sceneManager) SceneByHandle(handle uuid.UUID) (Scene, string, bool) {
	for name, entry := range m.scenes {
		if entry.handle == handle {
			return entry.scene, name, true
		}
	}
	return nil, "", false
}

func (m *sceneManager) Handle(name string) (uuid.UUID, bool) {
	entry, ok := m.scenes[name]
	return entry.handle, ok
}

func (m *sceneManager) Scenes() []string {
	return append([]string(nil), m.order...)
}

func (m *sceneManager) Update(dt float32, state *input.State) {
	if s, ok := m.CurrentScene(); ok {
		s.Update(dt, state)
	}
}

func (m *sceneManager) TakeCurrentScene() (Scene, bool) {
	s, ok := m.CurrentScene()
	if !ok {
		return nil, false
	}
	m.UnregisterScene(m.current)
	return s, true
}
