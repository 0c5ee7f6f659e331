// Package session holds the in-memory session table shared by every request.
//
// A Store keeps two indices, session id to session and user id to session id,
// under one RWMutex so they can never disagree. Every mutation rewrites the
// full table through a ports.SessionPersister while the write lock is held, so
// snapshots are taken in mutation order. That costs O(n) per login or logout
// and is fine for the session counts a single gateway holds.
package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/99minutos/auth-gateway/internal/core/domain"
	"github.com/99minutos/auth-gateway/internal/core/ports"
	"github.com/99minutos/auth-gateway/internal/pkg/metrics"
)

// Store is safe for concurrent use. The zero value is not usable; call New.
type Store struct {
	mu        sync.RWMutex
	bySession map[string]domain.User
	byUser    map[string]string

	persister ports.SessionPersister
	newID     func() string
	log       zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the default UUIDv4 session id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// New returns an empty Store. A nil persister keeps sessions in memory only.
func New(persister ports.SessionPersister, log zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		bySession: make(map[string]domain.User),
		byUser:    make(map[string]string),
		persister: persister,
		newID:     uuid.NewString,
		log:       log.With().Str("component", "session_store").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the table with the persisted snapshot. It never fails: an
// unreadable snapshot is logged and leaves the store empty. When a snapshot
// holds several rows for one user the last row wins.
func (s *Store) Load(ctx context.Context) {
	if s.persister == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.bySession = make(map[string]domain.User)
	s.byUser = make(map[string]string)
	defer func() { metrics.SessionsActive.Set(float64(len(s.bySession))) }()

	sessions, err := s.persister.Load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to load sessions, starting with an empty store")
		return
	}

	for _, sess := range sessions {
		if prev, ok := s.bySession[sess.ID]; ok && s.byUser[prev.ID] == sess.ID {
			delete(s.byUser, prev.ID)
		}
		if prevID, ok := s.byUser[sess.User.ID]; ok {
			delete(s.bySession, prevID)
		}
		s.bySession[sess.ID] = sess.User
		s.byUser[sess.User.ID] = sess.ID
	}

	s.log.Info().
		Int("sessions", len(s.bySession)).
		Int("rows", len(sessions)).
		Msg("sessions loaded")
}

// Create starts a session for user, replacing any session the user already
// had, and returns the new session id. The snapshot is written before Create
// returns; a write failure is logged and the session stays valid in memory.
func (s *Store) Create(ctx context.Context, user domain.User) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	if prevID, ok := s.byUser[user.ID]; ok {
		delete(s.bySession, prevID)
		s.log.Debug().Str("user_id", user.ID).Msg("replacing existing session")
	}
	s.bySession[id] = user
	s.byUser[user.ID] = id

	metrics.SessionsActive.Set(float64(len(s.bySession)))
	s.persistLocked(ctx)
	return id
}

// Get returns the user bound to sessionID. It has no side effects.
func (s *Store) Get(sessionID string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.bySession[sessionID]
	return u, ok
}

// Delete ends the session and returns the user it belonged to. Deleting an
// unknown or already deleted session returns false and writes nothing.
func (s *Store) Delete(ctx context.Context, sessionID string) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.bySession[sessionID]
	if !ok {
		return domain.User{}, false
	}
	delete(s.bySession, sessionID)
	if s.byUser[u.ID] == sessionID {
		delete(s.byUser, u.ID)
	}

	metrics.SessionsActive.Set(float64(len(s.bySession)))
	s.persistLocked(ctx)
	return u, true
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bySession)
}

// Ping reports whether the snapshot backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	return s.persister.Ping(ctx)
}

// persistLocked writes the full table. Callers must hold s.mu for writing.
func (s *Store) persistLocked(ctx context.Context) {
	if s.persister == nil {
		return
	}

	snapshot := make([]domain.Session, 0, len(s.bySession))
	for id, u := range s.bySession {
		snapshot = append(snapshot, domain.Session{ID: id, User: u})
	}
	sort.Slice(snapshot, func(i, j int) bool { return snapshot[i].ID < snapshot[j].ID })

	// A client hanging up must not abort a snapshot write halfway.
	ctx = context.WithoutCancel(ctx)

	start := time.Now()
	err := s.persister.Save(ctx, snapshot)
	metrics.SessionPersistDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SessionPersistTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Int("sessions", len(snapshot)).Msg("failed to persist sessions")
		return
	}
	metrics.SessionPersistTotal.WithLabelValues("ok").Inc()
}
