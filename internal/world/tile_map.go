package world

import (
	"math"
	"slices"

	"seehuhn.de/go/geom/vec"
)

// TileMap is a fixed grid of tiles stored row-major
type TileMap struct {
	width  int
	height int
	tiles  []Tile
}

// NewTileMap creates a width x height map of bare floor tiles
func NewTileMap(width, height int) *TileMap {
	return &TileMap{
		width:  width,
		height: height,
		tiles:  make([]Tile, width*height),
	}
}

func (m *TileMap) Width() int  { return m.width }
func (m *TileMap) Height() int { return m.height }

// Get returns the tile at (x, y), or false outside the map
func (m *TileMap) Get(x, y int) (*Tile, bool) {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return nil, false
	}
	return &m.tiles[y*m.width+x], true
}

// Set replaces the tile at (x, y), keeping its sprite occupancy
func (m *TileMap) Set(x, y int, tile Tile) {
	t, ok := m.Get(x, y)
	if !ok {
		return
	}
	tile.SpritesInside = t.SpritesInside
	*t = tile
}

// footprint returns the inclusive tile range covered by a square of side
// size centred on pos
func footprint(pos vec.Vec2, size float64) (left, top, right, bottom int) {
	half := size / 2
	left = int(math.Floor(pos.X - half))
	right = int(math.Floor(pos.X + half))
	top = int(math.Floor(pos.Y - half))
	bottom = int(math.Floor(pos.Y + half))
	return
}

// PlaceSprite registers a new sprite on every tile its footprint covers
func (m *TileMap) PlaceSprite(id SpriteID, sprite *Sprite) {
	left, top, right, bottom := footprint(sprite.Pos, sprite.Size)
	m.addFootprint(id, left, top, right, bottom)
}

// RemoveSprite unregisters a sprite from every tile its footprint covers
func (m *TileMap) RemoveSprite(id SpriteID, sprite *Sprite) {
	left, top, right, bottom := footprint(sprite.Pos, sprite.Size)
	m.removeFootprint(id, left, top, right, bottom)
}

// MoveSprite sets the position of sprite and moves its occupancy entries from
// the tiles of the old footprint to those of the new one. Both updates happen
// in this call, so no frame sees the sprite in zero or stale tiles.
func (m *TileMap) MoveSprite(id SpriteID, sprite *Sprite, newPos vec.Vec2) {
	oldLeft, oldTop, oldRight, oldBottom := footprint(sprite.Pos, sprite.Size)
	newLeft, newTop, newRight, newBottom := footprint(newPos, sprite.Size)

	sprite.Pos = newPos

	if oldLeft == newLeft && oldTop == newTop && oldRight == newRight && oldBottom == newBottom {
		return
	}

	m.removeFootprint(id, oldLeft, oldTop, oldRight, oldBottom)
	m.addFootprint(id, newLeft, newTop, newRight, newBottom)
}

func (m *TileMap) addFootprint(id SpriteID, left, top, right, bottom int) {
	for y := top; y <= bottom; y++ {
		for x := left; x <= right; x++ {
			if tile, ok := m.Get(x, y); ok {
				tile.SpritesInside = append(tile.SpritesInside, id)
			}
		}
	}
}

func (m *TileMap) removeFootprint(id SpriteID, left, top, right, bottom int) {
	for y := top; y <= bottom; y++ {
		for x := left; x <= right; x++ {
			tile, ok := m.Get(x, y)
			if !ok {
				continue
			}
			if i := slices.Index(tile.SpritesInside, id); i >= 0 {
				last := len(tile.SpritesInside) - 1
				tile.SpritesInside[i] = tile.SpritesInside[last]
				tile.SpritesInside = tile.SpritesInside[:last]
			}
		}
	}
}

// SquareIsColliding reports whether a square of half-width halfSize centred
// on pos overlaps a solid tile. Tiles outside the map never collide.
func (m *TileMap) SquareIsColliding(pos vec.Vec2, halfSize float64) bool {
	left := int(math.Floor(pos.X - halfSize))
	right := int(math.Floor(pos.X + halfSize))
	top := int(math.Floor(pos.Y - halfSize))
	bottom := int(math.Floor(pos.Y + halfSize))
	for x := left; x <= right; x++ {
		for y := top; y <= bottom; y++ {
			if m.TileIsColliding(x, y) {
				return true
			}
		}
	}
	return false
}

// TileIsColliding reports whether the tile at (x, y) is solid
func (m *TileMap) TileIsColliding(x, y int) bool {
	tile, ok := m.Get(x, y)
	return ok && tile.IsSolid()
}
