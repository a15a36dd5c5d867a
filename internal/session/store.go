package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/username/dias-uteis/internal/holiday"
	"go.uber.org/zap"
)

// Store keeps sessions in memory by id. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	holidays *holiday.Calendar
	defaults Defaults
	now      func() time.Time
	logger   *zap.Logger
}

// Option configures a Store
type Option func(*Store)

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty session store sharing one holiday calendar.
// A zero defaults.Year means the current year at session creation.
func NewStore(holidays *holiday.Calendar, defaults Defaults, logger *zap.Logger, opts ...Option) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		holidays: holidays,
		defaults: defaults,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// New creates and registers a session with a random id
func (s *Store) New() *Session {
	defaults := s.defaults
	if defaults.Year == 0 {
		defaults.Year = s.now().Year()
	}

	sess := newSession(uuid.NewString(), s.holidays, defaults, s.now, s.logger)

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.logger.Info("Session created", zap.String("session", sess.id))
	return sess
}

// Get returns the session with id
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	return sess, ok
}

// GetOrCreate returns the session with id, or a new one when it is unknown.
// The boolean reports whether a session was created.
func (s *Store) GetOrCreate(id string) (*Session, bool) {
	if id != "" {
		if sess, ok := s.Get(id); ok {
			return sess, false
		}
	}
	return s.New(), true
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep evicts sessions unused for longer than maxIdle and returns how many
func (s *Store) Sweep(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, sess := range s.sessions {
		if sess.LastSeen().Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}

	if evicted > 0 {
		s.logger.Info("Idle sessions evicted",
			zap.Int("evicted", evicted),
			zap.Int("remaining", len(s.sessions)))
	}
	return evicted
}
