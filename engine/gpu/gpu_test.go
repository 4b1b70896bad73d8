package gpu

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestIsSRGB(t *testing.T) {
	tests := []struct {
		format wgpu.TextureFormat
		want   bool
	}{
		{wgpu.TextureFormatBGRA8UnormSrgb, true},
		{wgpu.TextureFormatRGBA8UnormSrgb, true},
		{wgpu.TextureFormatBGRA8Unorm, false},
		{wgpu.TextureFormatRGBA16Float, false},
	}
	for _, tt := range tests {
		if got := IsSRGB(tt.format); got != tt.want {
			t.Errorf("IsSRGB(%v) = %t, want %t", tt.format, got, tt.want)
		}
	}
}

func TestContext_ReleaseOnce(t *testing.T) {
	calls := 0
	ctx := NewContext(nil, nil, nil, func() { calls++ })
	ctx.Release()
	ctx.Release()
	if calls != 1 {
		t.Errorf("release called %d times, want 1", calls)
	}
}

func TestRequestContext_NilDescriptor(t *testing.T) {
	if _, err := RequestContext(nil, DefaultContextOptions()); err == nil {
		t.Error("RequestContext(nil) error = nil, want surface creation error")
	}
}

func TestDefaultContextOptions(t *testing.T) {
	opts := DefaultContextOptions()
	if opts.ForceFallbackAdapter {
		t.Error("ForceFallbackAdapter = true, want false")
	}
	if opts.PowerPreference != wgpu.PowerPreferenceHighPerformance {
		t.Errorf("PowerPreference = %v, want high performance", opts.PowerPreference)
	}
}
