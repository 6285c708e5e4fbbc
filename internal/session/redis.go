package session

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisManager stores sessions in Redis under an opaque uuid token.
type RedisManager struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisManager builds a manager with the given session lifetime.
func NewRedisManager(client *redis.Client, ttl time.Duration) *RedisManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisManager{client: client, ttl: ttl}
}

// Create issues a fresh token bound to the user id.
func (m *RedisManager) Create(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	if err := m.client.Set(ctx, keyPrefix+token, userID, m.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve returns the user id bound to the token.
func (m *RedisManager) Resolve(ctx context.Context, token string) (int64, error) {
	val, err := m.client.Get(ctx, keyPrefix+token).Result()
	if err == redis.Nil {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, ErrNotFound
	}
	return userID, nil
}

// Destroy removes the session. Removing an absent token succeeds.
func (m *RedisManager) Destroy(ctx context.Context, token string) error {
	return m.client.Del(ctx, keyPrefix+token).Err()
}
