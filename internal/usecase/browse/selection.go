package browse

import "sync"

// SelectionChange is delivered to Selection watchers.
// OK is false when the selection was cleared.
type SelectionChange struct {
	ID string
	OK bool
}

// Selection is the nullable, observable "currently selected collection".
type Selection struct {
	mu  sync.RWMutex
	id  string
	set bool

	watchers observers[SelectionChange]
}

// NewSelection returns an unset selection.
func NewSelection() *Selection {
	return &Selection{}
}

// Get returns the current identifier and whether one is set.
func (s *Selection) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id, s.set
}

// Set selects id. Watchers are notified only if the value changed.
func (s *Selection) Set(id string) {
	s.update(id, true)
}

// Clear unsets the selection. Watchers are notified only if it was set.
func (s *Selection) Clear() {
	s.update("", false)
}

func (s *Selection) update(id string, set bool) {
	s.mu.Lock()
	if s.set == set && s.id == id {
		s.mu.Unlock()
		return
	}
	s.id, s.set = id, set
	s.mu.Unlock()

	s.watchers.notify(SelectionChange{ID: id, OK: set})
}

// Watch registers fn for every change. With immediate, fn also runs once
// synchronously with the current value before Watch returns.
// The returned func unregisters fn.
func (s *Selection) Watch(fn func(SelectionChange), immediate bool) (stop func()) {
	stop = s.watchers.add(fn)
	if immediate {
		id, ok := s.Get()
		fn(SelectionChange{ID: id, OK: ok})
	}
	return stop
}
