package ports

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound reports an absent or already-expired key. Any other error
// returned by a Store is a store failure and must never be read as absence.
var ErrKeyNotFound = errors.New("key not found")

// Store is an expiring key-value store. The store owns physical expiry:
// entries vanish on their own at TTL, so callers re-check presence at
// decision time instead of doing their own expiry arithmetic.
type Store interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
