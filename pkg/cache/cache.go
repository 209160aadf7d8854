// Package cache defines the preference cache used in front of the
// canonical preference store.
package cache

import (
	"context"
	"time"
)

// PreferenceCache caches preference values by key. A miss is reported as
// ok == false with a nil error.
type PreferenceCache interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
