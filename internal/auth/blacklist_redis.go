package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisBlacklistPrefix = "jwt_blacklist:"

// RedisBlacklistStore keeps revoked tokens in Redis so a logout survives
// process restarts and is visible to every replica. Entries expire on their
// own through the key TTL.
type RedisBlacklistStore struct {
	client *redis.Client
}

// NewRedisBlacklistStore creates a store backed by the given Redis client.
func NewRedisBlacklistStore(client *redis.Client) *RedisBlacklistStore {
	return &RedisBlacklistStore{client: client}
}

// IsBlacklisted checks if the given token is blacklisted.
func (s *RedisBlacklistStore) IsBlacklisted(token string) (bool, error) {
	n, err := s.client.Exists(context.Background(), redisBlacklistPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// AddToBlacklist adds the given token to the blacklist with an expiration
// time. Tokens that already expired are not stored.
func (s *RedisBlacklistStore) AddToBlacklist(token string, exp time.Time) error {
	ttl := time.Until(exp)
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(context.Background(), redisBlacklistPrefix+token, "1", ttl).Err()
}
