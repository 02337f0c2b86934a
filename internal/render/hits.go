package render

import (
	"cmp"
	"slices"

	"seehuhn.de/go/geom/vec"

	"github.com/TrolledWoods/raycaster/internal/mathutil"
	"github.com/TrolledWoods/raycaster/internal/raycast"
	"github.com/TrolledWoods/raycaster/internal/texture"
	"github.com/TrolledWoods/raycaster/internal/world"
)

// HitRecord is one strip to draw in a column.
type HitRecord struct {
	Distance float64 // Along the view axis
	U        float64 // Horizontal texture coordinate in [0, 1)
	Bitmap   *texture.Bitmap
	Size     float64 // Height as a fraction of a wall
	Anchor   float64 // Vertical placement, 0 floor .. 1 ceiling
}

// ProjectedSize is the on-screen height of a full wall at the hit distance,
// as a fraction of the screen height.
func (h HitRecord) ProjectedSize() float64 {
	return 1 / (1e-7 + h.Distance)
}

// Placement returns the top and bottom screen fractions of the strip.
func (h HitRecord) Placement() (top, bottom float64) {
	ps := h.ProjectedSize()
	top = 0.5 - ps/2 + ps*h.Anchor*(1-h.Size)
	bottom = top + ps*h.Size
	return top, bottom
}

// ColumnOffset is the horizontal camera-space offset of screen column col.
// Column 0 is the left edge, which maps to a positive offset.
func ColumnOffset(col, width int, aspect float64) float64 {
	return (0.5 - float64(col)/float64(width)) / aspect
}

// Camera is the per-frame view pose.
type Camera struct {
	Pos   vec.Vec2
	Basis mathutil.Mat2 // Column 0 points left, column 1 forward
}

// Collector gathers the hits of one column at a time. Each goroutine owns
// its own Collector so the scratch slice is never shared.
type Collector struct {
	hits      []HitRecord
	spriteIDs []world.SpriteID // Sprites already pushed for the current column
}

func NewCollector() *Collector {
	return &Collector{hits: make([]HitRecord, 0, 32)}
}

// Collect casts the ray of column offset fx and returns its hits in
// traversal order. The returned slice is reused by the next call.
func (c *Collector) Collect(scene *Scene, invBasis mathutil.Mat2, fx float64) []HitRecord {
	c.hits = c.hits[:0]
	c.spriteIDs = c.spriteIDs[:0]

	cam := scene.Camera
	ray := raycast.Ray{
		Origin:      cam.Pos,
		Dir:         cam.Basis.MulVec(vec.Vec2{X: fx, Y: 1}),
		MaxDistance: scene.MaxDistance,
	}

	for step := range raycast.Cast(ray) {
		tile, ok := scene.World.GetTile(step.X, step.Y)
		if !ok {
			break
		}

		if g := tile.Graphics(); g != nil {
			c.hits = append(c.hits, HitRecord{
				Distance: step.Distance,
				U:        step.U(),
				Bitmap:   scene.Textures.GetAnimated(g.Anim, scene.Elapsed),
				Size:     1,
				Anchor:   0.5,
			})
			if !g.Transparent {
				break
			}
			continue
		}

		for _, id := range tile.SpritesInside {
			// A sprite straddling several tiles is met once per tile
			if slices.Contains(c.spriteIDs, id) {
				continue
			}
			sprite, ok := scene.World.GetSprite(id)
			if !ok || sprite.Size <= 0 {
				continue
			}

			rel := invBasis.MulVec(sprite.Pos.Sub(cam.Pos))
			if rel.Y <= 0 {
				continue
			}
			hitX := 0.5 + (rel.X-fx*rel.Y)/sprite.Size
			if hitX < 0 || hitX >= 1 {
				continue
			}
			c.hits = append(c.hits, HitRecord{
				Distance: rel.Y,
				U:        hitX,
				Bitmap:   scene.Textures.Get(sprite.Texture),
				Size:     sprite.Size,
				Anchor:   sprite.Anchor,
			})
			c.spriteIDs = append(c.spriteIDs, id)
		}
	}
	return c.hits
}

// SortHits orders hits by ascending distance. Equal distances keep their
// traversal order.
func SortHits(hits []HitRecord) {
	slices.SortStableFunc(hits, func(a, b HitRecord) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
}
