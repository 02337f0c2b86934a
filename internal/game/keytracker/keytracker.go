// Package keytracker turns ebiten's level-triggered key state into edge
// events for keys that toggle something.
package keytracker

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// KeyStateTracker remembers which watched keys were down on the last check.
type KeyStateTracker struct {
	prevPressed map[ebiten.Key]bool
	isPressed   func(ebiten.Key) bool
}

// New creates a tracker reading ebiten's keyboard state.
func New() *KeyStateTracker {
	return NewWithSource(ebiten.IsKeyPressed)
}

// NewWithSource creates a tracker reading key state from isPressed.
func NewWithSource(isPressed func(ebiten.Key) bool) *KeyStateTracker {
	return &KeyStateTracker{
		prevPressed: make(map[ebiten.Key]bool),
		isPressed:   isPressed,
	}
}

// IsKeyJustPressed reports whether key is down now but was up on the previous
// call for the same key. Call it once per key per tick.
func (k *KeyStateTracker) IsKeyJustPressed(key ebiten.Key) bool {
	pressed := k.isPressed(key)
	justPressed := pressed && !k.prevPressed[key]
	k.prevPressed[key] = pressed
	return justPressed
}
