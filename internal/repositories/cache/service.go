package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned when a key is absent.
var ErrMiss = errors.New("cache miss")

// CacheService stores JSON-encoded aggregate payloads with a default TTL.
// A nil service is safe to call; every operation becomes a no-op miss, so
// handlers don't need to branch on whether Redis is configured.
type CacheService struct {
	client     *redis.Client
	defaultTTL time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{client: client, defaultTTL: defaultTTL}
}

// GetJSON loads a key into dest. Returns ErrMiss when absent.
func (s *CacheService) GetJSON(ctx context.Context, key string, dest interface{}) error {
	if s == nil || s.client == nil {
		return ErrMiss
	}
	raw, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

// SetJSON stores a value under key with the default TTL.
func (s *CacheService) SetJSON(ctx context.Context, key string, value interface{}) error {
	if s == nil || s.client == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, raw, s.defaultTTL).Err()
}

// Delete removes a key. Used to invalidate statistics after writes.
func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	if s == nil || s.client == nil || len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// FlushAll clears the cache. Called once on startup so a deploy never
// serves stale aggregates.
func (s *CacheService) FlushAll(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.FlushAll(ctx).Err()
}

func (s *CacheService) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}
