package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/DRSN-tech/autovarka/internal/domain"
	"github.com/DRSN-tech/autovarka/pkg/clients"
	"github.com/DRSN-tech/autovarka/pkg/e"
	"github.com/DRSN-tech/autovarka/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// SessionRepo хранит сессии администратора с TTL.
type SessionRepo struct {
	client *clients.RedisClient
	prefix string
	logger logger.Logger
}

func NewSessionRepo(client *clients.RedisClient, prefix string, logger logger.Logger) *SessionRepo {
	return &SessionRepo{
		client: client,
		prefix: prefix,
		logger: logger,
	}
}

func (s *SessionRepo) Save(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	data, err := json.Marshal(sessionModel{Username: session.Username, CreatedAt: session.CreatedAt})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := s.client.Client.Set(ctx, s.key(session.Token), data, ttl).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Get возвращает сессию по токену; истёкшая или неизвестная сессия — e.ErrNotFound.
func (s *SessionRepo) Get(ctx context.Context, token string) (*domain.Session, error) {
	data, err := s.client.Client.Get(ctx, s.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, e.ErrNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var model sessionModel
	if err := json.Unmarshal(data, &model); err != nil {
		s.logger.Warnf("corrupted session, dropping it: %v", e.Wrap(whereami.WhereAmI(), err))
		if err := s.client.Client.Del(ctx, s.key(token)).Err(); err != nil {
			s.logger.Warnf("Redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, e.ErrNotFound
	}

	return &domain.Session{Token: token, Username: model.Username, CreatedAt: model.CreatedAt}, nil
}

func (s *SessionRepo) Delete(ctx context.Context, token string) error {
	if err := s.client.Client.Del(ctx, s.key(token)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (s *SessionRepo) key(token string) string {
	return s.prefix + "session:" + token
}

type sessionModel struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}
