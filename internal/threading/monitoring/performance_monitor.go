package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// smoothing is the weight of the newest sample in the running averages
const smoothing = 0.1

// PerformanceMonitor tracks frame, raycast and worker pool metrics. It
// implements core.Observer, so a render pool can report every chunk to it.
type PerformanceMonitor struct {
	// Frame metrics
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds

	// Rendering metrics
	raycastTime atomic.Uint64
	updateTime  atomic.Uint64

	// Threading metrics
	activeWorkers   atomic.Int32
	queuedChunks    atomic.Int32
	completedChunks atomic.Uint64
	chunkTime       atomic.Uint64 // nanoseconds, summed over all chunks

	// Scene metrics
	spritesActive  atomic.Int32
	entitiesActive atomic.Int32

	// Statistics
	mutex          sync.RWMutex
	avgFrameTime   float64
	avgRaycastTime float64
	startTime      time.Time

	// Configuration
	enableDetailed bool
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime:      time.Now(),
		enableDetailed: true,
	}
}

// FrameTimer helps measure frame timing
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	frameTime := time.Since(ft.startTime)
	ft.monitor.frameTime.Store(uint64(frameTime.Nanoseconds()))
	ft.monitor.frameCount.Add(1)

	ft.monitor.mutex.Lock()
	if ft.monitor.enableDetailed {
		ft.monitor.avgFrameTime = average(ft.monitor.avgFrameTime, float64(frameTime.Nanoseconds()))
	}
	ft.monitor.mutex.Unlock()
}

// RaycastTimer helps measure raycasting performance
type RaycastTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartRaycast begins raycast timing
func (pm *PerformanceMonitor) StartRaycast() *RaycastTimer {
	return &RaycastTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndRaycast completes raycast timing
func (rt *RaycastTimer) EndRaycast() {
	raycastTime := time.Since(rt.startTime)
	rt.monitor.raycastTime.Store(uint64(raycastTime.Nanoseconds()))

	rt.monitor.mutex.Lock()
	if rt.monitor.enableDetailed {
		rt.monitor.avgRaycastTime = average(rt.monitor.avgRaycastTime, float64(raycastTime.Nanoseconds()))
	}
	rt.monitor.mutex.Unlock()
}

func average(avg, sample float64) float64 {
	if avg == 0 {
		return sample
	}
	return avg + smoothing*(sample-avg)
}

// ChunkStarted marks a worker as busy with one column chunk
func (pm *PerformanceMonitor) ChunkStarted() {
	pm.activeWorkers.Add(1)
}

// ChunkFinished records a finished chunk and its duration
func (pm *PerformanceMonitor) ChunkFinished(d time.Duration) {
	pm.activeWorkers.Add(-1)
	pm.completedChunks.Add(1)
	pm.chunkTime.Add(uint64(d.Nanoseconds()))
}

// UpdateWorkerMetrics stores a snapshot of pool state
func (pm *PerformanceMonitor) UpdateWorkerMetrics(queued int32, completed uint64) {
	pm.queuedChunks.Store(queued)
	pm.completedChunks.Store(completed)
}

// UpdateSceneMetrics stores the current sprite and entity counts
func (pm *PerformanceMonitor) UpdateSceneMetrics(sprites, entities int32) {
	pm.spritesActive.Store(sprites)
	pm.entitiesActive.Store(entities)
}

// ProfiledUpdate runs fn and records its duration as the world update time
func (pm *PerformanceMonitor) ProfiledUpdate(fn func()) time.Duration {
	start := time.Now()
	fn()
	duration := time.Since(start)
	pm.updateTime.Store(uint64(duration.Nanoseconds()))
	return duration
}

// RenderMetrics is a summary for on-screen display
type RenderMetrics struct {
	FramesPerSecond float64
	RaycastMs       float64
	UpdateMs        float64
	ActiveWorkers   int32
	CompletedChunks uint64
	Sprites         int32
	Entities        int32
	MemoryUsageMB   uint64
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() RenderMetrics {
	pm.mutex.RLock()
	avgFrame := pm.avgFrameTime
	avgRaycast := pm.avgRaycastTime
	pm.mutex.RUnlock()

	frameTime := avgFrame
	if frameTime == 0 {
		frameTime = float64(pm.frameTime.Load())
	}
	fps := 0.0
	if frameTime > 0 {
		fps = 1e9 / frameTime
	}
	if avgRaycast == 0 {
		avgRaycast = float64(pm.raycastTime.Load())
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return RenderMetrics{
		FramesPerSecond: fps,
		RaycastMs:       avgRaycast / 1e6,
		UpdateMs:        float64(pm.updateTime.Load()) / 1e6,
		ActiveWorkers:   pm.activeWorkers.Load(),
		CompletedChunks: pm.completedChunks.Load(),
		Sprites:         pm.spritesActive.Load(),
		Entities:        pm.entitiesActive.Load(),
		MemoryUsageMB:   memStats.Alloc / 1024 / 1024,
	}
}

// GetDetailedStats returns detailed performance statistics
func (pm *PerformanceMonitor) GetDetailedStats() map[string]interface{} {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	fps := 0.0
	if ft := pm.frameTime.Load(); ft > 0 {
		fps = 1e9 / float64(ft)
	}

	return map[string]interface{}{
		"uptime_seconds":      time.Since(pm.startTime).Seconds(),
		"frame_count":         pm.frameCount.Load(),
		"avg_frame_time_ms":   pm.avgFrameTime / 1e6,
		"avg_raycast_time_ms": pm.avgRaycastTime / 1e6,
		"current_fps":         fps,
		"active_workers":      pm.activeWorkers.Load(),
		"queued_chunks":       pm.queuedChunks.Load(),
		"completed_chunks":    pm.completedChunks.Load(),
		"avg_chunk_time_us":   float64(pm.GetAverageChunkTime().Nanoseconds()) / 1e3,
		"sprites":             pm.spritesActive.Load(),
		"entities":            pm.entitiesActive.Load(),
		"memory_alloc_mb":     memStats.Alloc / 1024 / 1024,
		"gc_cycles":           memStats.NumGC,
		"cpu_cores":           runtime.NumCPU(),
		"goroutines":          runtime.NumGoroutine(),
	}
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckPerformanceAlerts checks for performance issues and returns alerts
func (pm *PerformanceMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)
	currentTime := time.Now()

	// Check frame rate
	if frameTime := pm.frameTime.Load(); frameTime > 0 {
		fps := 1e9 / float64(frameTime)
		if fps < 30 {
			alerts = append(alerts, PerformanceAlert{
				Type:      "low_fps",
				Message:   "Frame rate is below 30 FPS",
				Value:     fps,
				Threshold: 30,
				Timestamp: currentTime,
			})
		}
	}

	// A frame should take a small share of the frame budget to raycast
	if raycastTime := pm.raycastTime.Load(); raycastTime > uint64(12*time.Millisecond) {
		alerts = append(alerts, PerformanceAlert{
			Type:      "slow_raycast",
			Message:   "Raycasting takes longer than 12ms",
			Value:     float64(raycastTime) / 1e6,
			Threshold: 12,
			Timestamp: currentTime,
		})
	}

	// Queued chunks after a frame mean the pool did not drain
	if queued := pm.queuedChunks.Load(); queued > 0 {
		alerts = append(alerts, PerformanceAlert{
			Type:      "queue_backlog",
			Message:   "Render queue was not drained",
			Value:     float64(queued),
			Threshold: 0,
			Timestamp: currentTime,
		})
	}

	return alerts
}

// EnableDetailedLogging enables/disables running averages
func (pm *PerformanceMonitor) EnableDetailedLogging(enabled bool) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	pm.enableDetailed = enabled
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.raycastTime.Store(0)
	pm.updateTime.Store(0)
	pm.activeWorkers.Store(0)
	pm.queuedChunks.Store(0)
	pm.completedChunks.Store(0)
	pm.chunkTime.Store(0)
	pm.spritesActive.Store(0)
	pm.entitiesActive.Store(0)

	pm.mutex.Lock()
	pm.avgFrameTime = 0
	pm.avgRaycastTime = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}

// GetAverageChunkTime calculates the mean time spent on one chunk
func (pm *PerformanceMonitor) GetAverageChunkTime() time.Duration {
	completed := pm.completedChunks.Load()
	if completed == 0 {
		return 0
	}
	return time.Duration(pm.chunkTime.Load() / completed)
}
