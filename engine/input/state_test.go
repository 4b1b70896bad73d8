package input

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-demo/common"
)

func TestState_Keys(t *testing.T) {
	s := NewState()
	if s.IsKeyPressed(common.KeyW) {
		t.Fatal("fresh state reports W pressed")
	}
	s.SetKey(common.KeyW, true)
	if !s.IsKeyPressed(common.KeyW) {
		t.Error("W not pressed after SetKey(true)")
	}
	s.SetKey(common.KeyW, false)
	if s.IsKeyPressed(common.KeyW) {
		t.Error("W still pressed after SetKey(false)")
	}
}

func TestState_MouseButtons(t *testing.T) {
	s := NewState()
	s.SetMouseButton(common.MouseButtonRight, true)
	if !s.IsMouseButtonPressed(common.MouseButtonRight) {
		t.Error("right button not pressed")
	}
	if s.IsMouseButtonPressed(common.MouseButtonLeft) {
		t.Error("left button reported pressed")
	}
	s.Clear()
	if s.IsMouseButtonPressed(common.MouseButtonRight) {
		t.Error("right button pressed after Clear")
	}
}

func TestState_MouseDelta(t *testing.T) {
	s := NewState()

	s.SetMousePosition(100, 50)
	if dx, dy := s.MouseDelta(); dx != 0 || dy != 0 {
		t.Errorf("first sample delta = (%v, %v), want zero", dx, dy)
	}

	s.SetMousePosition(110, 45)
	s.SetMousePosition(115, 40)
	if dx, dy := s.MouseDelta(); dx != 15 || dy != -10 {
		t.Errorf("accumulated delta = (%v, %v), want (15, -10)", dx, dy)
	}
	if x, y := s.MousePosition(); x != 115 || y != 40 {
		t.Errorf("position = (%v, %v), want (115, 40)", x, y)
	}

	s.ResetMouseDelta()
	if dx, dy := s.MouseDelta(); dx != 0 || dy != 0 {
		t.Errorf("delta after reset = (%v, %v), want zero", dx, dy)
	}
}
