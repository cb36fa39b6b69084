package tokenstore

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps session keys in Redis under a per-client hash. Used when
// the client runs as a long-lived daemon and several invocations share one
// session.
type RedisStore struct {
	ctx context.Context
	rdb *redis.Client
	key string // hash key, e.g. "jobdeck:session"
}

// NewRedisStore wraps an already-connected client. ctx bounds every store
// operation; pass the process context.
func NewRedisStore(ctx context.Context, rdb *redis.Client, key string) *RedisStore {
	if key == "" {
		key = "jobdeck:session"
	}
	return &RedisStore{ctx: ctx, rdb: rdb, key: key}
}

func (s *RedisStore) Get(key string) (string, bool) {
	v, err := s.rdb.HGet(s.ctx, s.key, key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		// Unreachable store reads as "no prior session".
		slog.Warn("token store read failed", "key", key, "err", err)
		return "", false
	}
	return v, true
}

func (s *RedisStore) Set(key, value string) error {
	return s.rdb.HSet(s.ctx, s.key, key, value).Err()
}

func (s *RedisStore) Clear(key string) error {
	return s.rdb.HDel(s.ctx, s.key, key).Err()
}
