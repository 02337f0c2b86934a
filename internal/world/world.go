// Package world holds the tile grid, sprites and entities the renderer draws.
//
// The host mutates a World between frames only. During a frame the renderer
// reads it from several goroutines without locking.
package world

import (
	"github.com/TrolledWoods/raycaster/internal/ids"
	"seehuhn.de/go/geom/vec"
)

// World contains the tile map and everything standing on it
type World struct {
	Tiles    *TileMap
	Sprites  *ids.IDMap[SpriteID, Sprite]
	Entities *Entities
	Start    vec.Vec2 // Player start position
	StartSet bool
}

// NewWorld creates a world around an existing tile map
func NewWorld(tiles *TileMap) *World {
	return &World{
		Tiles:    tiles,
		Sprites:  ids.NewIDMap[SpriteID, Sprite](32),
		Entities: NewEntities(),
		Start:    vec.Vec2{X: 0.5, Y: 0.5},
	}
}

// GetTile returns the tile at (x, y), or false outside the map
func (w *World) GetTile(x, y int) (*Tile, bool) {
	return w.Tiles.Get(x, y)
}

// GetSprite returns the sprite for id. The pointer stays valid until the next
// AddSprite.
func (w *World) GetSprite(id SpriteID) (*Sprite, bool) {
	return w.Sprites.GetPtr(id)
}

// AddSprite stores sprite and registers it on the tiles it covers
func (w *World) AddSprite(sprite Sprite) SpriteID {
	id := w.Sprites.Insert(sprite)
	s, _ := w.Sprites.GetPtr(id)
	w.Tiles.PlaceSprite(id, s)
	return id
}

// RemoveSprite unregisters and deletes a sprite
func (w *World) RemoveSprite(id SpriteID) bool {
	s, ok := w.Sprites.GetPtr(id)
	if !ok {
		return false
	}
	w.Tiles.RemoveSprite(id, s)
	return w.Sprites.Remove(id)
}

// MoveSprite moves a sprite and its tile occupancy
func (w *World) MoveSprite(id SpriteID, pos vec.Vec2) bool {
	s, ok := w.Sprites.GetPtr(id)
	if !ok {
		return false
	}
	w.Tiles.MoveSprite(id, s, pos)
	return true
}

// AddEntity inserts an entity, creating a sprite for it when sprite is non-nil
func (w *World) AddEntity(entity Entity, sprite *Sprite) EntityID {
	if sprite != nil {
		sprite.Pos = entity.Pos
		entity.Sprite = w.AddSprite(*sprite)
		entity.HasSprite = true
	}
	return w.Entities.Insert(entity)
}

// Update advances moving entities by dt seconds
func (w *World) Update(dt float64) {
	w.Entities.Step(w, dt)
}

// ToggleDoor opens a closed door or closes an open one at (x, y). Returns
// false when there is no door there.
func (w *World) ToggleDoor(x, y int, time float64) bool {
	tile, ok := w.Tiles.Get(x, y)
	if !ok || tile.Kind() != TileDoor {
		return false
	}
	tile.SetOpen(!tile.IsOpen(), time)
	return true
}
