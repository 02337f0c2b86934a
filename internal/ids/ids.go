// Package ids provides small typed identifiers backed by dense slices.
//
// Each identifier space (sprites, entities, textures) declares its own named
// type over uint32, so a SpriteID cannot be passed where an EntityID is
// expected, while lookups stay O(1) slice indexing.
package ids

import "iter"

// ID is the constraint satisfied by every typed identifier.
type ID interface {
	~uint32
}

// IDMap stores values under sequentially allocated ids. Removed slots are
// tombstoned and never reused, so a stale id never aliases a newer value.
type IDMap[K ID, V any] struct {
	values []V
	alive  []bool
	count  int
}

// NewIDMap creates an empty map with room for capacity values.
func NewIDMap[K ID, V any](capacity int) *IDMap[K, V] {
	return &IDMap[K, V]{
		values: make([]V, 0, capacity),
		alive:  make([]bool, 0, capacity),
	}
}

// Insert stores value under the next id and returns that id.
func (m *IDMap[K, V]) Insert(value V) K {
	id := K(len(m.values))
	m.values = append(m.values, value)
	m.alive = append(m.alive, true)
	m.count++
	return id
}

// Get returns the value for id.
func (m *IDMap[K, V]) Get(id K) (V, bool) {
	idx := int(id)
	if idx >= len(m.values) || !m.alive[idx] {
		var zero V
		return zero, false
	}
	return m.values[idx], true
}

// GetPtr returns a pointer to the stored value so callers can mutate it in place.
// The pointer is invalidated by the next Insert.
func (m *IDMap[K, V]) GetPtr(id K) (*V, bool) {
	idx := int(id)
	if idx >= len(m.values) || !m.alive[idx] {
		return nil, false
	}
	return &m.values[idx], true
}

// Remove deletes the value for id. Returns false if id was not present.
func (m *IDMap[K, V]) Remove(id K) bool {
	idx := int(id)
	if idx >= len(m.values) || !m.alive[idx] {
		return false
	}
	var zero V
	m.values[idx] = zero
	m.alive[idx] = false
	m.count--
	return true
}

// Len returns the number of live values.
func (m *IDMap[K, V]) Len() int {
	return m.count
}

// All iterates live entries in id order.
func (m *IDMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i, v := range m.values {
			if !m.alive[i] {
				continue
			}
			if !yield(K(i), v) {
				return
			}
		}
	}
}
