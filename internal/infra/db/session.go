package db

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/databricks-chaima/appsOPM2025/internal/application"
)

// DefaultMaxAge is how long a handle is reused before it is proactively
// reopened. Warehouse sessions authenticate with tokens that expire at the
// hour mark, so refresh just under it instead of waiting for an auth error.
const DefaultMaxAge = 59 * time.Minute

// OpenFunc opens a fresh database handle. Implementations re-derive any
// short-lived credential on each call.
type OpenFunc func(ctx context.Context) (*sql.DB, error)

// Session owns one process-wide database handle and reopens it once it
// exceeds maxAge. At most one refresh runs at a time; concurrent callers
// block until it completes.
type Session struct {
	mu       sync.Mutex
	open     OpenFunc
	maxAge   time.Duration
	clock    application.Clock
	db       *sql.DB
	openedAt time.Time
}

func NewSession(open OpenFunc, maxAge time.Duration, clock application.Clock) *Session {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	if clock == nil {
		clock = application.SystemClock{}
	}
	return &Session{open: open, maxAge: maxAge, clock: clock}
}

// DB returns the live handle, refreshing it first if stale. The stale
// handle is closed before the new one is opened.
func (s *Session) DB(ctx context.Context) (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil && !s.expiredLocked() {
		return s.db, nil
	}
	if s.db != nil {
		_ = s.db.Close()
		s.db = nil
	}

	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	s.db = db
	s.openedAt = s.clock.Now()
	return db, nil
}

func (s *Session) expiredLocked() bool {
	return s.clock.Now().Sub(s.openedAt) > s.maxAge
}

// Check pings the store for health reporting.
func (s *Session) Check(ctx context.Context) error {
	db, err := s.DB(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
