package rcrclient

import "sync"

// Session is the client-held record of the signed-in identity.
type Session struct {
	UserID uint
	Name   string
	Email  string
	Role   string
}

// SessionStore holds the current session and notifies subscribers on change.
// The zero value is ready to use: no session, no subscribers.
type SessionStore struct {
	mu          sync.Mutex
	session     Session
	active      bool
	subscribers map[int]func(Session, bool)
	nextID      int
}

// NewSessionStore constructs an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Current returns the session and whether one is active.
func (s *SessionStore) Current() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session, s.active
}

// Set replaces the session and notifies subscribers.
func (s *SessionStore) Set(session Session) {
	s.mu.Lock()
	s.session = session
	s.active = true
	callbacks := s.snapshotLocked()
	s.mu.Unlock()

	for _, cb := range callbacks {
		cb(session, true)
	}
}

// Clear drops the session and notifies subscribers.
func (s *SessionStore) Clear() {
	s.mu.Lock()
	s.session = Session{}
	s.active = false
	callbacks := s.snapshotLocked()
	s.mu.Unlock()

	for _, cb := range callbacks {
		cb(Session{}, false)
	}
}

// Subscribe registers a callback invoked on every Set and Clear. The
// returned function removes the subscription.
func (s *SessionStore) Subscribe(cb func(session Session, active bool)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subscribers == nil {
		s.subscribers = make(map[int]func(Session, bool))
	}
	id := s.nextID
	s.nextID++
	s.subscribers[id] = cb

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *SessionStore) snapshotLocked() []func(Session, bool) {
	callbacks := make([]func(Session, bool), 0, len(s.subscribers))
	for _, cb := range s.subscribers {
		callbacks = append(callbacks, cb)
	}
	return callbacks
}
