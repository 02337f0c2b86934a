package threading

import (
	"github.com/TrolledWoods/raycaster/internal/config"
	"github.com/TrolledWoods/raycaster/internal/threading/monitoring"
	"github.com/TrolledWoods/raycaster/internal/threading/rendering"
)

// ThreadingComponents holds all threading-related components
type ThreadingComponents struct {
	SceneRenderer      *rendering.SceneRenderer
	PerformanceMonitor *monitoring.PerformanceMonitor
}

// NewThreadingComponents creates the renderer and monitor described by cfg
// and connects them
func NewThreadingComponents(cfg *config.Config) *ThreadingComponents {
	sr := rendering.NewSceneRenderer(cfg.GetRenderThreads(), cfg.GetChunkWidth())
	sr.SetBackground(cfg.GetBackground())
	sr.SetFalloff(cfg.GetDimFalloff())
	sr.SetMaxDistance(cfg.GetMaxDistance())

	pm := monitoring.NewPerformanceMonitor()
	pm.EnableDetailedLogging(cfg.Debug.PerfLog)
	sr.SetObserver(pm)

	return &ThreadingComponents{
		SceneRenderer:      sr,
		PerformanceMonitor: pm,
	}
}

// SyncPoolMetrics copies the renderer's pool state into the monitor
func (tc *ThreadingComponents) SyncPoolMetrics() {
	stats := tc.SceneRenderer.Stats()
	tc.PerformanceMonitor.UpdateWorkerMetrics(int32(stats.Queued), stats.Completed)
}

// Shutdown gracefully shuts down all threading components
func (tc *ThreadingComponents) Shutdown() {
	if tc.SceneRenderer != nil {
		tc.SceneRenderer.Close()
	}
	if tc.PerformanceMonitor != nil {
		tc.PerformanceMonitor.Reset()
	}
}

// GetPerformanceMetrics returns current performance metrics
func (tc *ThreadingComponents) GetPerformanceMetrics() monitoring.RenderMetrics {
	return tc.PerformanceMonitor.GetCurrentMetrics()
}

// GetDetailedPerformanceStats returns detailed performance statistics
func (tc *ThreadingComponents) GetDetailedPerformanceStats() map[string]interface{} {
	return tc.PerformanceMonitor.GetDetailedStats()
}

// CheckPerformanceAlerts returns any performance warnings
func (tc *ThreadingComponents) CheckPerformanceAlerts() []monitoring.PerformanceAlert {
	return tc.PerformanceMonitor.CheckPerformanceAlerts()
}
