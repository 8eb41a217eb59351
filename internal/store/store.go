package store

import (
	"sync"

	"go.uber.org/zap"
)

// Store is the process-wide state container. Dispatch is serialised: one
// event is reduced at a time and subscribers see states in dispatch order.
// Subscribers must not call Dispatch synchronously.
type Store struct {
	mu     sync.Mutex
	state  State
	subs   map[int]func(State)
	order  []int
	nextID int

	notifyMu sync.Mutex
	logger   *zap.Logger
}

// New creates an empty store
func New(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		subs:   make(map[int]func(State)),
		logger: logger.Named("store"),
	}
}

// State returns the current state. The slices are shared and must be
// treated as read-only.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch reduces ev into the state and notifies subscribers
func (s *Store) Dispatch(ev Event) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.state = Reduce(s.state, ev)
	next := s.state
	subs := make([]func(State), 0, len(s.order))
	for _, id := range s.order {
		subs = append(subs, s.subs[id])
	}
	s.mu.Unlock()

	s.logger.Debug("dispatch",
		zap.String("event", ev.Kind()),
		zap.Int("test_cases", len(next.TestCases)),
		zap.Int("test_suites", len(next.TestSuites)),
		zap.Int("users", len(next.Users)),
	)

	for _, fn := range subs {
		fn(next)
	}
}

// Subscribe registers fn to be called after every dispatch. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.order = append(s.order, id)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[id]; !ok {
			return
		}
		delete(s.subs, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i:i], s.order[i+1:]...)
				break
			}
		}
	}
}
