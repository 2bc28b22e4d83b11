package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// DefaultSessionTTL is how long an idle view session is kept
	DefaultSessionTTL = 30 * time.Minute
	// DefaultMaxSessions caps the number of live view sessions
	DefaultMaxSessions = 10000
)

// ErrForeignSession is returned by Open when the session belongs to another visitor
var ErrForeignSession = errors.New("view session belongs to another visitor")

type sessionEntry struct {
	ctrl      *Controller
	visitorID string
	lastSeen  atomic.Int64
}

func (e *sessionEntry) touch(now time.Time) {
	e.lastSeen.Store(now.UnixNano())
}

func (e *sessionEntry) expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(time.Unix(0, e.lastSeen.Load())) > ttl
}

// SessionStore maps view session ids to controllers. Idle sessions are
// dropped after the TTL. When the store is full the least recently seen
// session is evicted.
type SessionStore struct {
	site        *Site
	ttl         time.Duration
	maxSessions int

	mu        sync.RWMutex
	sessions  map[string]*sessionEntry
	lastSweep time.Time
}

// NewSessionStore creates a store. Zero values select DefaultSessionTTL and
// DefaultMaxSessions.
func NewSessionStore(site *Site, ttl time.Duration, maxSessions int) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	return &SessionStore{
		site:        site,
		ttl:         ttl,
		maxSessions: maxSessions,
		sessions:    make(map[string]*sessionEntry),
	}
}

// Open returns the controller of sessionID, booting a new one when the
// session is unknown or expired. A live session opened with a different
// visitor id fails with ErrForeignSession.
func (s *SessionStore) Open(ctx context.Context, sessionID, visitorID string, systemDark *bool) (*Controller, error) {
	now := s.site.now()

	s.mu.RLock()
	entry, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok && !entry.expired(now, s.ttl) {
		if entry.visitorID != visitorID {
			return nil, ErrForeignSession
		}
		entry.touch(now)
		return entry.ctrl, nil
	}

	ctrl, err := NewController(ctx, s.site, visitorID, systemDark)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another request of the same session may have won the race
	if existing, ok := s.sessions[sessionID]; ok && !existing.expired(now, s.ttl) {
		if existing.visitorID != visitorID {
			return nil, ErrForeignSession
		}
		existing.touch(now)
		return existing.ctrl, nil
	}
	delete(s.sessions, sessionID)
	s.makeRoomLocked(now)

	entry = &sessionEntry{ctrl: ctrl, visitorID: visitorID}
	entry.touch(now)
	s.sessions[sessionID] = entry
	return ctrl, nil
}

// makeRoomLocked drops expired sessions, then evicts the least recently
// seen ones until one more fits
func (s *SessionStore) makeRoomLocked(now time.Time) {
	full := len(s.sessions) >= s.maxSessions
	if full || now.Sub(s.lastSweep) >= s.ttl/2 {
		s.lastSweep = now
		for id, entry := range s.sessions {
			if entry.expired(now, s.ttl) {
				delete(s.sessions, id)
			}
		}
	}

	for len(s.sessions) >= s.maxSessions {
		var oldestID string
		var oldest int64
		for id, entry := range s.sessions {
			if seen := entry.lastSeen.Load(); oldestID == "" || seen < oldest {
				oldestID, oldest = id, seen
			}
		}
		delete(s.sessions, oldestID)
	}
}

// lookup returns a live session without creating one
func (s *SessionStore) lookup(sessionID string) (*Controller, bool) {
	now := s.site.now()
	s.mu.RLock()
	entry, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok || entry.expired(now, s.ttl) {
		return nil, false
	}
	return entry.ctrl, true
}

func (s *SessionStore) size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
