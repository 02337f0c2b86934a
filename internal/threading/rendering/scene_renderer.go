// Package rendering drives the column renderer across a worker pool.
package rendering

import (
	"fmt"
	"runtime"

	"seehuhn.de/go/geom/vec"

	"github.com/TrolledWoods/raycaster/internal/mathutil"
	"github.com/TrolledWoods/raycaster/internal/render"
	"github.com/TrolledWoods/raycaster/internal/texture"
	"github.com/TrolledWoods/raycaster/internal/threading/core"
	"github.com/TrolledWoods/raycaster/internal/world"
)

const (
	// DefaultChunkWidth is the number of columns in one work item
	DefaultChunkWidth = 64
	// DefaultBackground is the colour of pixels no hit covers
	DefaultBackground = 0xff000000
)

// chunk is one work item: a column region and the scene it shows
type chunk struct {
	scene  *render.Scene
	region render.Region
}

// SceneRenderer renders whole frames by splitting them into column chunks
// and running them on a fork-join pool. The calling goroutine works on
// chunks too, so a renderer with zero threads renders single-threaded.
type SceneRenderer struct {
	pool       *core.Pool[chunk, render.Collector]
	collector  *render.Collector // Scratch of the calling goroutine
	chunkWidth int

	background  uint32
	falloff     float64
	maxDistance float64

	items []chunk
}

// NewSceneRenderer starts a renderer with threads extra workers. A negative
// thread count uses one worker per CPU beyond the caller.
func NewSceneRenderer(threads, chunkWidth int) *SceneRenderer {
	if threads < 0 {
		threads = max(runtime.NumCPU()-1, 0)
	}
	if chunkWidth < 1 {
		Logger().Warn("invalid chunk width, using default", "chunk_width", chunkWidth, "default", DefaultChunkWidth)
		chunkWidth = DefaultChunkWidth
	}

	sr := &SceneRenderer{
		pool:        core.NewPool(threads, render.NewCollector, renderChunk),
		collector:   render.NewCollector(),
		chunkWidth:  chunkWidth,
		background:  DefaultBackground,
		falloff:     render.DefaultFalloff,
		maxDistance: 100,
	}
	Logger().Info("scene renderer started", "threads", threads, "chunk_width", chunkWidth)
	return sr
}

func renderChunk(c chunk, collector *render.Collector) {
	render.RenderRegion(c.scene, c.region, collector)
}

// SetBackground sets the colour every frame starts from
func (sr *SceneRenderer) SetBackground(px uint32) {
	sr.background = px
}

// SetFalloff sets the distance dimming falloff. Zero disables dimming.
func (sr *SceneRenderer) SetFalloff(falloff float64) {
	sr.falloff = max(falloff, 0)
}

// SetMaxDistance limits how far rays travel
func (sr *SceneRenderer) SetMaxDistance(d float64) {
	if d <= 0 {
		Logger().Warn("invalid max distance, keeping current", "max_distance", d, "current", sr.maxDistance)
		return
	}
	sr.maxDistance = d
}

// SetObserver reports every rendered chunk to obs
func (sr *SceneRenderer) SetObserver(obs core.Observer) {
	sr.pool.SetObserver(obs)
}

// Stats returns the pool state
func (sr *SceneRenderer) Stats() core.Stats {
	return sr.pool.Stats()
}

// Threads returns the number of workers besides the caller
func (sr *SceneRenderer) Threads() int {
	return sr.pool.GetNumWorkers()
}

// RaycastScene renders w as seen from camPos into buf, a row-major
// width x height buffer of 0xAARRGGBB pixels. camBasis holds the camera's
// left vector in column 0 and its forward vector in column 1. Animated
// textures are sampled at elapsed seconds.
//
// RaycastScene returns once every column is written. It panics when buf does
// not hold exactly width*height pixels. The world must not change while it
// runs.
func (sr *SceneRenderer) RaycastScene(w *world.World, textures *texture.Store, camPos vec.Vec2, camBasis mathutil.Mat2, width, height int, buf []uint32, aspect, elapsed float64) {
	if len(buf) != width*height {
		panic(fmt.Sprintf("rendering: buffer holds %d pixels, want %dx%d", len(buf), width, height))
	}
	if width == 0 || height == 0 {
		return
	}

	for i := range buf {
		buf[i] = sr.background
	}

	scene := &render.Scene{
		World:    w,
		Textures: textures,
		Camera: render.Camera{
			Pos:   camPos,
			Basis: camBasis,
		},
		Width:       width,
		Aspect:      aspect,
		Elapsed:     elapsed,
		MaxDistance: sr.maxDistance,
		Falloff:     sr.falloff,
	}

	regions := render.SplitColumns(buf, width, height, sr.chunkWidth)
	sr.items = sr.items[:0]
	for _, region := range regions {
		sr.items = append(sr.items, chunk{scene: scene, region: region})
	}
	sr.pool.Run(sr.items, sr.collector)

	Logger().Debug("frame rendered", "width", width, "height", height, "chunks", len(regions))
}

// Close stops the workers. The renderer must not be used afterwards.
func (sr *SceneRenderer) Close() {
	sr.pool.Join()
	Logger().Info("scene renderer closed")
}
