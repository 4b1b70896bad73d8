package common

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float32
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
	if got := Clamp(10, 1, 4); got != 4 {
		t.Errorf("Clamp(int) = %d, want 4", got)
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce("", "", "title"); got != "title" {
		t.Errorf("Coalesce() = %q, want %q", got, "title")
	}
	if got := Coalesce(0, 0); got != 0 {
		t.Errorf("Coalesce() = %d, want 0", got)
	}
}

func TestSliceToBytes(t *testing.T) {
	if SliceToBytes([]float32{}) != nil {
		t.Error("SliceToBytes(empty) != nil")
	}
	if got := len(SliceToBytes([]uint16{1, 2, 3})); got != 6 {
		t.Errorf("len(SliceToBytes(3 x uint16)) = %d, want 6", got)
	}
}
