// Package input holds the per-frame snapshot of keyboard and mouse state fed to scenes.
package input

// State is the keyboard and mouse snapshot for the current frame.
// Window callbacks write into it; scenes read from it during Update.
type State struct {
	keys    map[uint32]bool
	buttons map[uint32]bool

	mouseX, mouseY   float32
	deltaX, deltaY   float32
	hasMousePosition bool
}

// NewState returns an empty input state with no keys or buttons held.
func NewState() *State {
	return &State{
		keys:    make(map[uint32]bool),
		buttons: make(map[uint32]bool),
	}
}

// IsKeyPressed reports whether the key with the given GLFW code is held.
//
// Parameters:
//   - code: a key code such as common.KeyW
//
// Returns:
//   - bool: true while the key is held
func (s *State) IsKeyPressed(code uint32) bool {
	return s.keys[code]
}

// SetKey records a key press or release.
//
// Parameters:
//   - code: the key code
//   - pressed: true on press, false on release
func (s *State) SetKey(code uint32, pressed bool) {
	if pressed {
		s.keys[code] = true
		return
	}
	delete(s.keys, code)
}

// IsMouseButtonPressed reports whether a mouse button is held.
//
// Parameters:
//   - button: a button such as common.MouseButtonRight
//
// Returns:
//   - bool: true while the button is held
func (s *State) IsMouseButtonPressed(button uint32) bool {
	return s.buttons[button]
}

// SetMouseButton records a mouse button press or release.
//
// Parameters:
//   - button: the mouse button
//   - pressed: true on press, false on release
func (s *State) SetMouseButton(button uint32, pressed bool) {
	if pressed {
		s.buttons[button] = true
		return
	}
	delete(s.buttons, button)
}

// SetMousePosition records the cursor position and accumulates the movement since the last sample.
// The first sample only establishes the position and contributes no delta.
//
// Parameters:
//   - x, y: cursor position in window pixels
func (s *State) SetMousePosition(x, y float32) {
	if s.hasMousePosition {
		s.deltaX += x - s.mouseX
		s.deltaY += y - s.mouseY
	}
	s.mouseX, s.mouseY = x, y
	s.hasMousePosition = true
}

// MousePosition returns the last recorded cursor position.
func (s *State) MousePosition() (x, y float32) {
	return s.mouseX, s.mouseY
}

// MouseDelta returns the cursor movement accumulated since the last ResetMouseDelta.
func (s *State) MouseDelta() (dx, dy float32) {
	return s.deltaX, s.deltaY
}

// ResetMouseDelta clears the accumulated movement. Called once at the end of every frame.
func (s *State) ResetMouseDelta() {
	s.deltaX, s.deltaY = 0, 0
}

// Clear releases every key and button, e.g. when the window loses focus.
func (s *State) Clear() {
	clear(s.keys)
	clear(s.buttons)
	s.ResetMouseDelta()
}
