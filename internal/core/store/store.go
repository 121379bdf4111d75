// Package store holds the in-memory session collection backing the TUI.
// It is the single owner of session state: hydration, ingest, queries and
// deletion all go through it, one mutation at a time. Responses that
// arrive after their session is gone hit AppendMessage's missing-key
// no-op instead of corrupting another session.
package store

import (
	"errors"
	"fmt"

	"vidchat/internal/core/models"
)

// ErrDuplicateKey is returned by UpsertNew when a session with the same
// key already exists.
var ErrDuplicateKey = errors.New("session key already exists")

// Store is an ordered session collection with an active-session pointer.
// Ordering is most-recent-first: new sessions are inserted at the front.
//
// Store is not safe for concurrent use. It is driven exclusively from the
// bubbletea update loop, which serializes all mutations; async work talks
// to it only through messages delivered back to that loop.
type Store struct {
	sessions []models.Session
	index    map[string]int // key -> position in sessions
	active   string         // "" means no active session
}

// New returns an empty store.
func New() *Store {
	return &Store{index: make(map[string]int)}
}

// Hydrate replaces the entire collection with the given sessions, in the
// given order. Any existing in-memory history is discarded; callers use
// this only at startup, before any history exists. The first session, if
// any, becomes active.
func (s *Store) Hydrate(sessions []models.Session) {
	s.sessions = make([]models.Session, 0, len(sessions))
	s.index = make(map[string]int, len(sessions))
	s.active = ""
	for _, sess := range sessions {
		if _, dup := s.index[sess.Key]; dup {
			continue
		}
		s.index[sess.Key] = len(s.sessions)
		s.sessions = append(s.sessions, sess)
	}
	if len(s.sessions) > 0 {
		s.active = s.sessions[0].Key
	}
}

// UpsertNew inserts a new session at the front of the collection.
func (s *Store) UpsertNew(sess models.Session) error {
	if err := sess.Validate(); err != nil {
		return fmt.Errorf("invalid session: %w", err)
	}
	if _, exists := s.index[sess.Key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, sess.Key)
	}
	s.sessions = append([]models.Session{sess}, s.sessions...)
	for i, existing := range s.sessions {
		s.index[existing.Key] = i
	}
	return nil
}

// SetActive moves the active pointer. Pointing at a key that does not
// exist is allowed; the next Active() read simply reports no active
// session. A stale reference to a deleted session must not be an error.
func (s *Store) SetActive(key string) {
	s.active = key
}

// ClearActive drops the active pointer.
func (s *Store) ClearActive() {
	s.active = ""
}

// AppendMessage appends one message to the session matching key. If the
// session no longer exists the call is a silent no-op: a late response
// for a deleted session is discarded rather than misdelivered.
func (s *Store) AppendMessage(key string, msg models.Message) {
	i, ok := s.index[key]
	if !ok {
		return
	}
	s.sessions[i].History = append(s.sessions[i].History, msg)
}

// Remove deletes the session matching key. Removing the active session
// clears the active pointer. Removing a missing key is a no-op.
func (s *Store) Remove(key string) {
	i, ok := s.index[key]
	if !ok {
		return
	}
	s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
	delete(s.index, key)
	for j := i; j < len(s.sessions); j++ {
		s.index[s.sessions[j].Key] = j
	}
	if s.active == key {
		s.active = ""
	}
}

// Sessions returns a copy of the collection in display order.
func (s *Store) Sessions() []models.Session {
	out := make([]models.Session, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// Get returns the session matching key.
func (s *Store) Get(key string) (models.Session, bool) {
	i, ok := s.index[key]
	if !ok {
		return models.Session{}, false
	}
	return s.sessions[i], true
}

// Active returns the active session. The second return is false when no
// session is active or the pointer refers to a session that was removed.
func (s *Store) Active() (models.Session, bool) {
	if s.active == "" {
		return models.Session{}, false
	}
	return s.Get(s.active)
}

// ActiveKey returns the raw active pointer ("" when absent).
func (s *Store) ActiveKey() string {
	return s.active
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	return len(s.sessions)
}
