package session

import "sync"

// Store keeps sessions keyed by actor id. Access is safe for concurrent
// use across actors; events for the same actor must be serialized by the
// caller (the pump owns that guarantee), since Get hands out the live
// session pointer.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewStore constructs an empty in-memory store.
func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Get returns the session for an actor, creating and retaining a default
// idle session on first contact.
func (s *Store) Get(actorID int64) *Session {
	s.mu.RLock()
	sess, ok := s.sessions[actorID]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[actorID]; ok {
		return sess
	}
	sess = New()
	s.sessions[actorID] = sess
	return sess
}

// Put replaces the stored session for an actor.
func (s *Store) Put(actorID int64, sess *Session) {
	if sess == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[actorID] = sess
}

// Len reports the number of known actors.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
