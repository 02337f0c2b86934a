// Package texture owns the bitmaps the renderer samples from.
//
// A Store is filled once at start-up and then only read, so worker goroutines
// share it without locking.
package texture

import (
	"sort"

	"github.com/TrolledWoods/raycaster/internal/ids"
)

// ID identifies a texture in a Store.
type ID uint32

type entry struct {
	name      string
	frames    []*Bitmap
	frameTime float64
}

type Store struct {
	entries *ids.IDMap[ID, entry]
	byName  map[string]ID
	missing *Bitmap
}

func NewStore() *Store {
	return &Store{
		entries: ids.NewIDMap[ID, entry](16),
		byName:  make(map[string]ID),
		missing: Placeholder(PatternChecker, 255, 0, 255, 16),
	}
}

// Add registers a texture with one or more frames. Adding a name twice
// replaces the lookup but keeps the old id valid.
func (s *Store) Add(name string, frameTime float64, frames ...*Bitmap) ID {
	if len(frames) == 0 {
		frames = []*Bitmap{s.missing}
	}
	id := s.entries.Insert(entry{name: name, frames: frames, frameTime: frameTime})
	s.byName[name] = id
	return id
}

func (s *Store) Lookup(name string) (ID, bool) {
	id, ok := s.byName[name]
	return id, ok
}

// Get returns the first frame of id. Unknown ids return the checkerboard
// placeholder so the render path never sees nil.
func (s *Store) Get(id ID) *Bitmap {
	e, ok := s.entries.Get(id)
	if !ok {
		return s.missing
	}
	return e.frames[0]
}

// GetAnimated returns the frame of anim shown at elapsed time t.
func (s *Store) GetAnimated(anim Animation, t float64) *Bitmap {
	e, ok := s.entries.Get(anim.Texture)
	if !ok {
		return s.missing
	}
	return e.frames[anim.frameIndex(len(e.frames), e.frameTime, t)]
}

// Frames returns the number of frames of id.
func (s *Store) Frames(id ID) int {
	e, ok := s.entries.Get(id)
	if !ok {
		return 0
	}
	return len(e.frames)
}

// Duration is the time the animation of id takes to reach its last frame.
func (s *Store) Duration(id ID) float64 {
	e, ok := s.entries.Get(id)
	if !ok {
		return 0
	}
	return float64(len(e.frames)-1) * e.frameTime
}

func (s *Store) Len() int {
	return s.entries.Len()
}

// Names lists registered texture names in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.byName))
	for name := range s.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
