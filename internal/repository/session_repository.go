package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

type Session struct {
	Token     string    `json:"token"`
	ProfileID string    `json:"profile_id"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionStore interface {
	Save(ctx context.Context, s Session, ttl time.Duration) error
	Find(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

const sessionKeyPrefix = "careers:session:"

// RedisSessionStore keeps sessions as JSON values with a Redis TTL so they
// survive restarts and are shared across instances.
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Save(ctx context.Context, sess Session, ttl time.Duration) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.client.Set(ctx, sessionKeyPrefix+sess.Token, payload, ttl).Err()
}

func (s *RedisSessionStore) Find(ctx context.Context, token string) (*Session, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKeyPrefix+token).Err()
}

// MemorySessionStore is a single-process store for development and tests.
type MemorySessionStore struct {
	cache *cache.Cache
}

func NewMemorySessionStore(defaultTTL time.Duration) *MemorySessionStore {
	return &MemorySessionStore{cache: cache.New(defaultTTL, 10*time.Minute)}
}

func (s *MemorySessionStore) Save(_ context.Context, sess Session, ttl time.Duration) error {
	s.cache.Set(sess.Token, sess, ttl)
	return nil
}

func (s *MemorySessionStore) Find(_ context.Context, token string) (*Session, error) {
	v, ok := s.cache.Get(token)
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess := v.(Session)
	return &sess, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, token string) error {
	s.cache.Delete(token)
	return nil
}
