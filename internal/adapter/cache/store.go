// Package cache keeps upstream route and schedule responses around between
// searches so repeated queries do not hit the provider again.
package cache

import (
	"context"
	"time"
)

// Store is a byte-oriented key/value store with per-entry expiry.
type Store interface {
	// Get returns the value and true, or false when the key is missing or expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for ttl. A non-positive ttl stores nothing.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
