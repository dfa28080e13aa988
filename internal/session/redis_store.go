// Package session provides a Redis backend for refresh tokens.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dimitrije/notes/internal/services"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultTTL = 30 * 24 * time.Hour

type tokenData struct {
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// RedisStore keeps hashed refresh tokens in Redis. Each token lives under its
// own key with a TTL matching the token expiry, and a per-user set indexes the
// hashes so all of a user's tokens can be revoked at once.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisStoreWithClient(client), nil
}

func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "refresh:"}
}

func (s *RedisStore) key(tokenHash string) string {
	return s.prefix + tokenHash
}

func (s *RedisStore) userKey(userID uuid.UUID) string {
	return s.prefix + "user:" + userID.String()
}

func ttlUntil(expiresAt time.Time) time.Duration {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return defaultTTL
	}
	return ttl
}

func (s *RedisStore) save(ctx context.Context, pipe redis.Pipeliner, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	data, err := json.Marshal(tokenData{UserID: userID, CreatedAt: time.Now()})
	if err != nil {
		return fmt.Errorf("marshal token data: %w", err)
	}

	ttl := ttlUntil(expiresAt)
	pipe.Set(ctx, s.key(tokenHash), data, ttl)
	pipe.SAdd(ctx, s.userKey(userID), tokenHash)
	pipe.Expire(ctx, s.userKey(userID), ttl)
	return nil
}

func (s *RedisStore) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	pipe := s.client.TxPipeline()
	if err := s.save(ctx, pipe, userID, tokenHash, expiresAt); err != nil {
		return err
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

func decodeOwner(raw string) (uuid.UUID, error) {
	var data tokenData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return uuid.Nil, fmt.Errorf("unmarshal token data: %w", err)
	}
	return data.UserID, nil
}

func (s *RedisStore) ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	raw, err := s.client.Get(ctx, s.key(tokenHash)).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, services.ErrInvalidRefreshToken
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("lookup refresh token: %w", err)
	}
	return decodeOwner(raw)
}

// RotateRefreshToken consumes oldHash and stores newHash. A token can be
// rotated only once; replaying it returns services.ErrInvalidRefreshToken.
func (s *RedisStore) RotateRefreshToken(ctx context.Context, userID uuid.UUID, oldHash, newHash string, expiresAt time.Time) error {
	raw, err := s.client.GetDel(ctx, s.key(oldHash)).Result()
	if errors.Is(err, redis.Nil) {
		return services.ErrInvalidRefreshToken
	}
	if err != nil {
		return fmt.Errorf("consume refresh token: %w", err)
	}

	owner, err := decodeOwner(raw)
	if err != nil {
		return err
	}
	if owner != userID {
		return services.ErrInvalidRefreshToken
	}

	pipe := s.client.TxPipeline()
	pipe.SRem(ctx, s.userKey(userID), oldHash)
	if err := s.save(ctx, pipe, userID, newHash, expiresAt); err != nil {
		return err
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

func (s *RedisStore) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	raw, err := s.client.GetDel(ctx, s.key(tokenHash)).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	if userID, err := decodeOwner(raw); err == nil {
		s.client.SRem(ctx, s.userKey(userID), tokenHash)
	}
	return nil
}

func (s *RedisStore) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	hashes, err := s.client.SMembers(ctx, s.userKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("list refresh tokens: %w", err)
	}

	keys := make([]string, 0, len(hashes)+1)
	for _, h := range hashes {
		keys = append(keys, s.key(h))
	}
	keys = append(keys, s.userKey(userID))

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("revoke refresh tokens: %w", err)
	}
	return nil
}

// CleanupExpired is a no-op: token keys expire through their TTL.
func (s *RedisStore) CleanupExpired(ctx context.Context) error {
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
