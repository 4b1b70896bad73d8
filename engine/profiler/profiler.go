// Package profiler tracks frame timing for the engine metrics and periodically logs memory statistics.
package profiler

import (
	"fmt"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-demo/engine/logger"
)

const (
	// FrameWindow is the number of frame times averaged by FPS and AverageFrameTime.
	FrameWindow = 60

	// LowFPSThreshold triggers a "Low FPS" warning in CheckPerformance.
	LowFPSThreshold = 30.0

	// HighFrameTimeThreshold triggers a "High frame time" warning in CheckPerformance.
	HighFrameTimeThreshold = 33 * time.Millisecond
)

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Frame times are kept in a fixed ring of FrameWindow samples; memory stats are logged at a configurable interval.
type Profiler struct {
	frameTimes  [FrameWindow]float32
	next        int
	samples     int
	totalFrames uint64

	renderObjects int

	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
}

// SetUpdateInterval changes how often Tick logs memory statistics.
//
// Parameters:
//   - interval: the minimum time between two log lines
func (p *Profiler) SetUpdateInterval(interval time.Duration) {
	p.updateInterval = interval
}

// RecordFrame adds one frame time to the ring, evicting the oldest sample once FrameWindow frames are held.
// Non-positive durations are ignored.
//
// Parameters:
//   - dt: the frame duration in seconds
func (p *Profiler) RecordFrame(dt float32) {
	if dt <= 0 {
		return
	}
	p.frameTimes[p.next] = dt
	p.next = (p.next + 1) % FrameWindow
	if p.samples < FrameWindow {
		p.samples++
	}
	p.totalFrames++
}

// Samples returns how many frame times are currently held, at most FrameWindow.
func (p *Profiler) Samples() int {
	return p.samples
}

// TotalFrames returns the number of frames recorded since creation.
func (p *Profiler) TotalFrames() uint64 {
	return p.totalFrames
}

// AverageFrameTime returns the mean of the held frame times in seconds, or 0 with no samples.
func (p *Profiler) AverageFrameTime() float32 {
	if p.samples == 0 {
		return 0
	}
	var sum float32
	for i := 0; i < p.samples; i++ {
		sum += p.frameTimes[i]
	}
	return sum / float32(p.samples)
}

// FPS returns 1 / AverageFrameTime, or 0 with no samples.
func (p *Profiler) FPS() float32 {
	avg := p.AverageFrameTime()
	if avg == 0 {
		return 0
	}
	return 1 / avg
}

// SetRenderObjectsCount stores the number of objects drawn in the last frame.
func (p *Profiler) SetRenderObjectsCount(n int) {
	p.renderObjects = n
}

// RenderObjectsCount returns the value last passed to SetRenderObjectsCount.
func (p *Profiler) RenderObjectsCount() int {
	return p.renderObjects
}

// CheckPerformance logs a warning for each threshold the current averages cross.
// Nothing is reported until at least one frame is recorded.
//
// Returns:
//   - []string: the warnings that were logged, empty when performance is fine
func (p *Profiler) CheckPerformance() []string {
	if p.samples == 0 {
		return nil
	}
	var warnings []string
	if fps := p.FPS(); fps < LowFPSThreshold {
		warnings = append(warnings, fmt.Sprintf("Low FPS: %.1f fps", fps))
	}
	if ms := p.AverageFrameTime() * 1000; ms > float32(HighFrameTimeThreshold.Milliseconds()) {
		warnings = append(warnings, fmt.Sprintf("High frame time: %.1fms", ms))
	}
	for _, w := range warnings {
		logger.Warn("%s", w)
	}
	return warnings
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, heap usage, allocation rate, GC count/pause times, total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	// Alloc: live heap, TotalAlloc: cumulative (tracks churn), Sys: obtained from the OS
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	logger.With("component", "profiler").Info("frame stats",
		"fps", fmt.Sprintf("%.2f", fps),
		"objects", p.renderObjects,
		"heap_mb", fmt.Sprintf("%.2f", allocMB),
		"alloc_mb_s", fmt.Sprintf("%.2f", allocRateMB),
		"gc", gcCount,
		"gc_last_us", lastPauseUs,
		"gc_max_us", maxPauseUs,
		"sys_mb", fmt.Sprintf("%.2f", sysMB),
	)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
