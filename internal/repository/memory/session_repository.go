package memory

import (
	"context"
	"time"

	"digital-twin-be/pkg/kvstore"

	"github.com/patrickmn/go-cache"
)

// SessionRepository is the in-process session store. go-cache locks
// internally, so concurrent sessions never corrupt each other.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(defaultTTL time.Duration) *SessionRepository {
	if defaultTTL <= 0 {
		defaultTTL = time.Hour
	}
	// purges expired items every 10 minutes
	c := cache.New(defaultTTL, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Get(ctx context.Context, key string) (string, bool, error) {
	x, found := r.cache.Get(key)
	if !found {
		return "", false, nil
	}
	s, ok := x.(string)
	return s, ok, nil
}

func (r *SessionRepository) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}
	r.cache.Set(key, value, ttl)
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, key string) error {
	r.cache.Delete(key)
	return nil
}

var _ kvstore.Store = (*SessionRepository)(nil)
