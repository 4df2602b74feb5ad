package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/yashrajoria/streetwear-backend/models"
)

const sessionKeyPrefix = "session:admin:"

// SessionStore is the subset of *redis.Client used for server-side sessions.
type SessionStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type sessionRecord struct {
	UserID string      `json:"user_id"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
}

// RedisSessionManager maps an opaque token to a session entry with a TTL.
type RedisSessionManager struct {
	client SessionStore
	ttl    time.Duration
}

func NewRedisSessionManager(client SessionStore, ttl time.Duration) *RedisSessionManager {
	return &RedisSessionManager{client: client, ttl: ttl}
}

func (m *RedisSessionManager) Issue(ctx context.Context, user *models.User) (string, time.Time, error) {
	token := uuid.NewString() + uuid.NewString()
	data, err := json.Marshal(sessionRecord{UserID: user.ID.String(), Email: user.Email, Role: user.Role})
	if err != nil {
		return "", time.Time{}, err
	}
	if err := m.client.Set(ctx, sessionKeyPrefix+token, data, m.ttl).Err(); err != nil {
		return "", time.Time{}, fmt.Errorf("store session: %w", err)
	}
	return token, time.Now().Add(m.ttl), nil
}

func (m *RedisSessionManager) Resolve(ctx context.Context, token string) (*Actor, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}
	data, err := m.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrInvalidSession
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, ErrInvalidSession
	}
	userID, err := uuid.Parse(rec.UserID)
	if err != nil {
		return nil, ErrInvalidSession
	}
	return &Actor{UserID: userID, Email: rec.Email, Role: rec.Role, SessionToken: token}, nil
}

func (m *RedisSessionManager) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.client.Del(ctx, sessionKeyPrefix+token).Err()
}
