package world

import (
	"github.com/TrolledWoods/raycaster/internal/ids"
	"seehuhn.de/go/geom/vec"
)

// EntityID identifies an entity in a World
type EntityID uint32

// Entity is something that moves through the tile map, optionally drawn by
// a sprite that follows it
type Entity struct {
	Pos       vec.Vec2
	Vel       vec.Vec2
	Drag      float64 // Fraction of velocity lost per second
	Size      float64 // Side of the collision square
	Sprite    SpriteID
	HasSprite bool
	Bounce    bool // Reflect velocity off walls instead of stopping
}

// Entities stores every entity of a world
type Entities struct {
	byID *ids.IDMap[EntityID, Entity]
}

func NewEntities() *Entities {
	return &Entities{byID: ids.NewIDMap[EntityID, Entity](16)}
}

func (e *Entities) Insert(entity Entity) EntityID {
	return e.byID.Insert(entity)
}

func (e *Entities) Get(id EntityID) (*Entity, bool) {
	return e.byID.GetPtr(id)
}

func (e *Entities) Remove(id EntityID) bool {
	return e.byID.Remove(id)
}

func (e *Entities) Len() int {
	return e.byID.Len()
}

// Step advances every entity by dt seconds. Movement is resolved one axis at
// a time against solid tiles, and attached sprites are moved through the
// tile map so their occupancy stays current.
func (e *Entities) Step(w *World, dt float64) {
	for id := range e.byID.All() {
		ent, _ := e.byID.GetPtr(id)
		ent.step(w.Tiles, dt)

		if !ent.HasSprite {
			continue
		}
		if sprite, ok := w.Sprites.GetPtr(ent.Sprite); ok {
			w.Tiles.MoveSprite(ent.Sprite, sprite, ent.Pos)
		}
	}
}

func (ent *Entity) step(tiles *TileMap, dt float64) {
	half := ent.Size / 2

	next := vec.Vec2{X: ent.Pos.X + ent.Vel.X*dt, Y: ent.Pos.Y}
	if tiles.SquareIsColliding(next, half) {
		if ent.Bounce {
			ent.Vel.X = -ent.Vel.X
		} else {
			ent.Vel.X = 0
		}
	} else {
		ent.Pos = next
	}

	next = vec.Vec2{X: ent.Pos.X, Y: ent.Pos.Y + ent.Vel.Y*dt}
	if tiles.SquareIsColliding(next, half) {
		if ent.Bounce {
			ent.Vel.Y = -ent.Vel.Y
		} else {
			ent.Vel.Y = 0
		}
	} else {
		ent.Pos = next
	}

	if ent.Drag > 0 {
		keep := max(0, 1-ent.Drag*dt)
		ent.Vel = ent.Vel.Mul(keep)
	}
}
