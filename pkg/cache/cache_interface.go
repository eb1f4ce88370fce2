package cache

import (
	"context"
	"time"
)

// Cache is the contract for the cache layer. Implementations: Redis in
// production, noop/in-memory fakes in tests.
type Cache interface {
	// Get looks a key up and unmarshals the stored value into dest.
	// Returns found=false on a cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies connectivity.
	Ping(ctx context.Context) error
}
