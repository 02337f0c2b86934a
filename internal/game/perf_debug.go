package game

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/TrolledWoods/raycaster/internal/threading/monitoring"
)

const (
	perfLowFpsThreshold = 50.0
	perfLowFpsDuration  = 3 * time.Second
	perfLogInterval     = 3 * time.Second
)

func (gl *GameLoop) maybeLogPerfDrop() {
	if !gl.game.perfDebugEnabled {
		return
	}

	fps := ebiten.ActualFPS()
	if fps >= perfLowFpsThreshold {
		gl.game.perfLowFpsSince = time.Time{}
		gl.game.perfLastPerfLog = time.Time{}
		return
	}

	now := time.Now()
	if gl.game.perfLowFpsSince.IsZero() {
		gl.game.perfLowFpsSince = now
		return
	}

	if now.Sub(gl.game.perfLowFpsSince) < perfLowFpsDuration {
		return
	}

	if !gl.game.perfLastPerfLog.IsZero() && now.Sub(gl.game.perfLastPerfLog) < perfLogInterval {
		return
	}

	gl.game.perfLastPerfLog = now
	gl.logPerfSnapshot(os.Stdout, fps)
}

func (gl *GameLoop) logPerfSnapshot(out io.Writer, fps float64) {
	g := gl.game
	stats := g.threading.GetDetailedPerformanceStats()
	alerts := g.threading.CheckPerformanceAlerts()

	fmt.Fprintf(out,
		"[PERF] FPS<%.0f for >=%s | fps=%.1f tps=%.1f causes=%s\n",
		perfLowFpsThreshold,
		perfLowFpsDuration,
		fps,
		ebiten.ActualTPS(),
		perfCauses(alerts),
	)
	fmt.Fprintf(out,
		"[PERF] screen=%dx%d map=%dx%d sprites=%d entities=%d threads=%d\n",
		g.frame.Width,
		g.frame.Height,
		g.world.Tiles.Width(),
		g.world.Tiles.Height(),
		getPerfInt(stats, "sprites"),
		getPerfInt(stats, "entities"),
		g.threading.SceneRenderer.Threads(),
	)
	fmt.Fprintf(out,
		"[PERF] update=%.2fms draw=%.2fms budget=%.2fms idle=%.2fms frame=%.2fms raycast=%.2fms chunk=%.1fus chunks=%d queued=%d goroutines=%d\n",
		float64(gl.lastUpdateDuration.Microseconds())/1000.0,
		float64(gl.lastDrawDuration.Microseconds())/1000.0,
		frameBudgetMs(fps),
		idleBudgetMs(fps, gl.lastUpdateDuration, gl.lastDrawDuration),
		getPerfFloat(stats, "avg_frame_time_ms"),
		getPerfFloat(stats, "avg_raycast_time_ms"),
		getPerfFloat(stats, "avg_chunk_time_us"),
		getPerfUint(stats, "completed_chunks"),
		getPerfInt(stats, "queued_chunks"),
		getPerfInt(stats, "goroutines"),
	)
	fmt.Fprintf(out,
		"[PERF] mem_alloc=%dMB gc_cycles=%d\n",
		getPerfUint(stats, "memory_alloc_mb"),
		getPerfUint(stats, "gc_cycles"),
	)
}

// perfCauses summarises alerts for the first snapshot line
func perfCauses(alerts []monitoring.PerformanceAlert) string {
	causes := make([]string, 0, len(alerts))
	for _, a := range alerts {
		if a.Type == "low_fps" {
			continue
		}
		causes = append(causes, fmt.Sprintf("%s (%.1f)", a.Type, a.Value))
	}
	if len(causes) == 0 {
		return "none obvious"
	}
	return strings.Join(causes, ", ")
}

func frameBudgetMs(fps float64) float64 {
	if fps <= 0 {
		return 0
	}
	return 1000.0 / fps
}

func idleBudgetMs(fps float64, updateDur, drawDur time.Duration) float64 {
	budget := frameBudgetMs(fps)
	busy := float64(updateDur.Microseconds()+drawDur.Microseconds()) / 1000.0
	idle := budget - busy
	if idle < 0 {
		return 0
	}
	return idle
}

func getPerfFloat(stats map[string]interface{}, key string) float64 {
	if val, ok := stats[key]; ok {
		switch v := val.(type) {
		case float64:
			return v
		case float32:
			return float64(v)
		case int:
			return float64(v)
		case int32:
			return float64(v)
		case int64:
			return float64(v)
		case uint64:
			return float64(v)
		}
	}
	return 0
}

func getPerfInt(stats map[string]interface{}, key string) int {
	if val, ok := stats[key]; ok {
		switch v := val.(type) {
		case int:
			return v
		case int32:
			return int(v)
		case int64:
			return int(v)
		case uint32:
			return int(v)
		case uint64:
			return int(v)
		case float64:
			return int(v)
		}
	}
	return 0
}

func getPerfUint(stats map[string]interface{}, key string) uint64 {
	if val, ok := stats[key]; ok {
		switch v := val.(type) {
		case uint64:
			return v
		case uint32:
			return uint64(v)
		case int64:
			return uint64(v)
		case int32:
			return uint64(v)
		case int:
			return uint64(v)
		case float64:
			return uint64(v)
		}
	}
	return 0
}
