package render

import (
	"github.com/TrolledWoods/raycaster/internal/mathutil"
	"github.com/TrolledWoods/raycaster/internal/texture"
	"github.com/TrolledWoods/raycaster/internal/world"
)

// Scene is everything a worker needs to render its columns. It is shared by
// every worker of a frame and only read.
type Scene struct {
	World       *world.World
	Textures    *texture.Store
	Camera      Camera
	Width       int // Full screen width, for column offsets
	Aspect      float64
	Elapsed     float64
	MaxDistance float64
	Falloff     float64
}

// RenderRegion draws every column of region. Columns are expected to hold
// the background already; only hit strips are painted.
func RenderRegion(scene *Scene, region Region, collector *Collector) {
	invBasis := scene.Camera.Basis.Inverse()
	for x := region.Start(); x < region.End(); x++ {
		RenderColumn(scene, invBasis, region.Column(x), collector)
	}
}

// RenderColumn casts the ray of col and paints its hits back to front.
func RenderColumn(scene *Scene, invBasis mathutil.Mat2, col Column, collector *Collector) {
	fx := ColumnOffset(col.X(), scene.Width, scene.Aspect)
	hits := collector.Collect(scene, invBasis, fx)
	SortHits(hits)

	for i := len(hits) - 1; i >= 0; i-- {
		hit := hits[i]
		bmp := hit.Bitmap
		srcX := mathutil.IntClamp(int(hit.U*float64(bmp.Width())), 0, bmp.Width()-1)
		top, bottom := hit.Placement()
		DrawStrip(col, bmp, srcX, 0, 1, top, bottom, Dimming(hit.Distance, scene.Falloff))
	}
}
