package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/shoplist/pkg/cache"
	"github.com/amirasaad/shoplist/pkg/settings"
	"golang.org/x/sync/singleflight"
)

var (
	_ cache.PreferenceCache = (*MemoryCache)(nil)
	_ cache.PreferenceCache = (*RedisCache)(nil)
	_ settings.Store        = (*CachedStore)(nil)
)

// CachedStore is a read-through settings.Store. Writes go to the backing
// store first and then invalidate the cached key. Cache failures are logged
// and fall back to the backing store. Concurrent misses on one key share a
// single backing read.
type CachedStore struct {
	store  settings.Store
	cache  cache.PreferenceCache
	ttl    time.Duration
	logger *slog.Logger
	loads  singleflight.Group
}

type lookup struct {
	value string
	ok    bool
}

// NewCachedStore wraps store with c.
func NewCachedStore(store settings.Store, c cache.PreferenceCache, ttl time.Duration, logger *slog.Logger) *CachedStore {
	return &CachedStore{store: store, cache: c, ttl: ttl, logger: logger}
}

func (s *CachedStore) Get(ctx context.Context, key string) (string, bool, error) {
	if v, ok, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("Preference cache unavailable", "key", key, "error", err)
	} else if ok {
		return v, true, nil
	}

	res, err, _ := s.loads.Do(key, func() (any, error) {
		v, ok, err := s.store.Get(ctx, key)
		if err != nil || !ok {
			return lookup{value: v, ok: ok}, err
		}
		if err := s.cache.Set(ctx, key, v, s.ttl); err != nil {
			s.logger.Warn("Preference cache fill failed", "key", key, "error", err)
		}
		return lookup{value: v, ok: true}, nil
	})
	if err != nil {
		return "", false, err
	}
	l := res.(lookup)
	return l.value, l.ok, nil
}

func (s *CachedStore) Set(ctx context.Context, key, value string) error {
	if err := s.store.Set(ctx, key, value); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Warn("Preference cache invalidation failed", "key", key, "error", err)
	}
	return nil
}
