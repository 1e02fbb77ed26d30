package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"digital-twin-be/pkg/kvstore"

	goredis "github.com/redis/go-redis/v9"
)

// SessionRepository stores session blobs in Redis with SET EX.
type SessionRepository struct {
	rdb *goredis.Client
}

func NewSessionRepository(rdb *goredis.Client) *SessionRepository {
	return &SessionRepository{rdb: rdb}
}

// NewClient parses a redis:// URL, falling back to a bare host:port address.
func NewClient(ctx context.Context, redisURL string) (*goredis.Client, error) {
	opt, err := goredis.ParseURL(redisURL)
	if err != nil {
		opt = &goredis.Options{Addr: redisURL}
	}
	rdb := goredis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func (r *SessionRepository) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.rdb.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *SessionRepository) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.rdb.Set(ctx, key, value, ttl).Err()
}

func (r *SessionRepository) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, key).Err()
}

var _ kvstore.Store = (*SessionRepository)(nil)
