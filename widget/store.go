package widget

import "sync"

// Listener receives every new state snapshot.
type Listener func(State)

// Store holds the single current State snapshot and notifies
// subscribers synchronously after each replacement.
//
// Set serialises snapshot swaps, so overlapping dispatches from
// different goroutines interleave at snapshot granularity with
// last-writer-wins semantics, matching the cooperative single-threaded
// model the widget was designed around.
type Store struct {
	mu        sync.Mutex
	state     State
	listeners []storeListener
	nextID    int
}

type storeListener struct {
	id int
	fn Listener
}

// NewStore returns a store seeded with NewState.
func NewStore() *Store {
	return &Store{state: NewState()}
}

// Get returns the current snapshot.
func (s *Store) Get() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Set copies the current snapshot, applies mutate to the copy, swaps
// it in, and notifies every subscriber with the new snapshot in
// subscription order. Fields mutate leaves alone carry over from the
// previous snapshot; maps and slices must be replaced, not edited.
//
// The listener list is captured at notify time: subscribing or
// unsubscribing from inside a listener takes effect from the next Set.
func (s *Store) Set(mutate func(*State)) {
	s.mu.Lock()
	next := s.state
	mutate(&next)
	s.state = next
	notify := make([]storeListener, len(s.listeners))
	copy(notify, s.listeners)
	s.mu.Unlock()

	for _, l := range notify {
		l.fn(next)
	}
}

// Subscribe registers a listener and returns its unsubscribe func.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, storeListener{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		kept := s.listeners[:0:0]
		for _, l := range s.listeners {
			if l.id != id {
				kept = append(kept, l)
			}
		}
		s.listeners = kept
	}
}
