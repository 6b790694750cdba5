package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jh-117/meeting-agenda-builder-sub000/internal/domain/entities"
	"github.com/jh-117/meeting-agenda-builder-sub000/pkg/config"
)

// NewRedisClient creates and pings a Redis client from config.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// RedisStore is a Redis-backed session store. Entries carry the same
// TTL semantics as the memory store; Redis is used as an expiring
// cache, not durable storage.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps a Redis client as a SessionStore.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return "agenda:session:" + id
}

// Put stores a session, resetting its expiration
func (rs *RedisStore) Put(ctx context.Context, session *entities.EditSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return rs.client.Set(ctx, sessionKey(session.ID), data, rs.ttl).Err()
}

// Get retrieves a session by id
func (rs *RedisStore) Get(ctx context.Context, id string) (*entities.EditSession, error) {
	data, err := rs.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, entities.ErrSessionNotFound
		}
		return nil, err
	}

	var session entities.EditSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete removes a session
func (rs *RedisStore) Delete(ctx context.Context, id string) error {
	return rs.client.Del(ctx, sessionKey(id)).Err()
}
