// Package memory хранит сессии администратора в памяти процесса,
// когда Redis не используется.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/DRSN-tech/autovarka/internal/domain"
	"github.com/DRSN-tech/autovarka/pkg/e"
)

type sessionEntry struct {
	session   domain.Session
	expiresAt time.Time
}

type SessionRepo struct {
	mu       sync.Mutex
	sessions map[string]sessionEntry
	now      func() time.Time
}

func NewSessionRepo() *SessionRepo {
	return &SessionRepo{
		sessions: make(map[string]sessionEntry),
		now:      time.Now,
	}
}

func (s *SessionRepo) Save(_ context.Context, session *domain.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpired()
	s.sessions[session.Token] = sessionEntry{session: *session, expiresAt: s.now().Add(ttl)}

	return nil
}

func (s *SessionRepo) Get(_ context.Context, token string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[token]
	if !ok {
		return nil, e.ErrNotFound
	}

	if !s.now().Before(entry.expiresAt) {
		delete(s.sessions, token)
		return nil, e.ErrNotFound
	}

	session := entry.session
	return &session, nil
}

func (s *SessionRepo) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}

// purgeExpired удаляет истёкшие сессии; вызывается под мьютексом.
func (s *SessionRepo) purgeExpired() {
	now := s.now()
	for token, entry := range s.sessions {
		if !now.Before(entry.expiresAt) {
			delete(s.sessions, token)
		}
	}
}
