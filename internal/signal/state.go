package signal

import "sync"

// State is a single-writer value shared between the 3D layer and the UI layer.
// The owner keeps the *State and calls Set; every other party gets a Reader.
// Subscribers are called synchronously from Set, only when the value changes.
type State[T comparable] struct {
	mu     sync.Mutex
	value  T
	nextID int
	subs   map[int]func(T)
}

// New returns a state holding initial.
func New[T comparable](initial T) *State[T] {
	return &State[T]{value: initial, subs: make(map[int]func(T))}
}

// Set stores v and notifies subscribers when it differs from the current value.
// Returns true when the value changed.
func (s *State[T]) Set(v T) bool {
	s.mu.Lock()
	if s.value == v {
		s.mu.Unlock()
		return false
	}
	s.value = v
	subs := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
	return true
}

// Get returns the current value.
func (s *State[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Subscribe registers fn for change notifications and returns a function that removes it.
// Calling the returned function more than once is safe.
func (s *State[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Reader returns the read-only side of the state.
func (s *State[T]) Reader() Reader[T] {
	return Reader[T]{s: s}
}

// Reader is the read-only view of a State handed to non-owning layers.
type Reader[T comparable] struct {
	s *State[T]
}

// Get returns the current value, or the zero value for an unbound Reader.
func (r Reader[T]) Get() T {
	if r.s == nil {
		var zero T
		return zero
	}
	return r.s.Get()
}

// Subscribe forwards to the underlying state. An unbound Reader never notifies.
func (r Reader[T]) Subscribe(fn func(T)) func() {
	if r.s == nil {
		return func() {}
	}
	return r.s.Subscribe(fn)
}
