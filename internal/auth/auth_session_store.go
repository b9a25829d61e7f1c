package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

var ErrSessionNotFound = errors.New("session not found")

type SessionStore interface {
	Save(ctx context.Context, session Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}

type redisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) SessionStore {
	return &redisSessionStore{rdb: rdb}
}

func SessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (s *redisSessionStore) Save(ctx context.Context, session Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, SessionKey(session.ID), payload, ttl).Err()
}

func (s *redisSessionStore) Get(ctx context.Context, id string) (Session, error) {
	raw, err := s.rdb.Get(ctx, SessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, err
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, SessionKey(id)).Err()
}
