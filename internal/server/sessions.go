package server

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SeamusWaldron/cubestudio"
)

var (
	errSessionNotFound = errors.New("session not found")
	errTooManySessions = errors.New("too many sessions")
)

type session struct {
	id       string
	store    *cubestudio.Store
	created  time.Time
	lastUsed time.Time
}

// sessions holds one Store per browser session.
type sessions struct {
	mu    sync.Mutex
	byID  map[string]*session
	max   int
	opts  []cubestudio.Option
	clock func() time.Time
}

func newSessions(max int, opts []cubestudio.Option) *sessions {
	return &sessions{
		byID:  make(map[string]*session),
		max:   max,
		opts:  opts,
		clock: time.Now,
	}
}

func (s *sessions) create() (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.max > 0 && len(s.byID) >= s.max {
		return nil, errTooManySessions
	}
	now := s.clock()
	sess := &session{
		id:       uuid.New().String(),
		store:    cubestudio.NewStore(s.opts...),
		created:  now,
		lastUsed: now,
	}
	s.byID[sess.id] = sess
	return sess, nil
}

func (s *sessions) get(id string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.byID[id]
	if !ok {
		return nil, errSessionNotFound
	}
	sess.lastUsed = s.clock()
	return sess, nil
}

func (s *sessions) delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	return true
}

func (s *sessions) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// sweep removes sessions idle for longer than ttl and returns how many.
func (s *sessions) sweep(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.clock().Add(-ttl)
	removed := 0
	for id, sess := range s.byID {
		if sess.lastUsed.Before(cutoff) {
			delete(s.byID, id)
			removed++
		}
	}
	return removed
}
