package profiler

import (
	"bytes"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-demo/engine/logger"
	"github.com/charmbracelet/log"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetLevel(log.DebugLevel)
	t.Cleanup(func() {
		logger.SetOutput(os.Stderr)
		logger.SetLevel(log.InfoLevel)
	})
	return &buf
}

func TestProfiler_Empty(t *testing.T) {
	p := NewProfiler()
	if p.FPS() != 0 || p.AverageFrameTime() != 0 {
		t.Errorf("empty profiler FPS=%v avg=%v, want 0", p.FPS(), p.AverageFrameTime())
	}
	if w := p.CheckPerformance(); len(w) != 0 {
		t.Errorf("CheckPerformance() on empty profiler = %v", w)
	}
}

func TestProfiler_AverageAndFPS(t *testing.T) {
	p := NewProfiler()
	for i := 0; i < 10; i++ {
		p.RecordFrame(0.02)
	}
	if !approx(p.AverageFrameTime(), 0.02) {
		t.Errorf("AverageFrameTime() = %v, want 0.02", p.AverageFrameTime())
	}
	if !approx(p.FPS(), 50) {
		t.Errorf("FPS() = %v, want 50", p.FPS())
	}
}

func TestProfiler_RingEvictsOldest(t *testing.T) {
	p := NewProfiler()
	for i := 0; i < FrameWindow; i++ {
		p.RecordFrame(0.1)
	}
	for i := 0; i < FrameWindow; i++ {
		p.RecordFrame(0.01)
	}
	if p.Samples() != FrameWindow {
		t.Errorf("Samples() = %d, want %d", p.Samples(), FrameWindow)
	}
	if p.TotalFrames() != 2*FrameWindow {
		t.Errorf("TotalFrames() = %d, want %d", p.TotalFrames(), 2*FrameWindow)
	}
	if !approx(p.AverageFrameTime(), 0.01) {
		t.Errorf("AverageFrameTime() = %v, want 0.01 once the slow frames are evicted", p.AverageFrameTime())
	}
}

func TestProfiler_IgnoresNonPositive(t *testing.T) {
	p := NewProfiler()
	p.RecordFrame(0)
	p.RecordFrame(-1)
	if p.Samples() != 0 {
		t.Errorf("Samples() = %d, want 0", p.Samples())
	}
}

func TestProfiler_CheckPerformance(t *testing.T) {
	tests := []struct {
		name string
		dt   float32
		want []string
	}{
		{"healthy", 1.0 / 60, nil},
		{"slow", 0.05, []string{"Low FPS: 20.0 fps", "High frame time: 50.0ms"}},
		{"borderline", 0.0335, []string{"Low FPS: 29.9 fps", "High frame time: 33.5ms"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)
			p := NewProfiler()
			for i := 0; i < 5; i++ {
				p.RecordFrame(tt.dt)
			}
			got := p.CheckPerformance()
			if len(got) != len(tt.want) {
				t.Fatalf("CheckPerformance() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("warning %d = %q, want %q", i, got[i], tt.want[i])
				}
				if !strings.Contains(buf.String(), tt.want[i]) {
					t.Errorf("warning %q not logged", tt.want[i])
				}
			}
		})
	}
}

func TestProfiler_RenderObjectsCount(t *testing.T) {
	p := NewProfiler()
	p.SetRenderObjectsCount(7)
	if p.RenderObjectsCount() != 7 {
		t.Errorf("RenderObjectsCount() = %d, want 7", p.RenderObjectsCount())
	}
}

func TestProfiler_TickInterval(t *testing.T) {
	buf := captureLogs(t)
	p := NewProfiler()
	p.SetUpdateInterval(0)
	if !p.Tick() {
		t.Fatal("Tick() = false with zero interval")
	}
	if !strings.Contains(buf.String(), "frame stats") {
		t.Errorf("Tick() output = %q, want frame stats line", buf.String())
	}

	p.SetUpdateInterval(1 << 62)
	if p.Tick() {
		t.Error("Tick() = true before interval elapsed")
	}
}
