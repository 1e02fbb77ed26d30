package kvstore

import (
	"context"
	"time"
)

// Store is a TTL-backed string map. A missing key is reported as
// ("", false, nil), never as an error. Expiry is the store's job.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
