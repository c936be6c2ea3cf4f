// Package cache provides a generic Cache interface and an in-memory LRU
// implementation with lazy TTL expiry.
//
//	memo := cache.NewMemory[string](
//		cache.WithMaxEntries(4096),
//		cache.WithDefaultTTL(10*time.Minute),
//	)
//	defer memo.Close()
//
// GetOrSet computes missing values once per key even under concurrent
// misses:
//
//	v, err := cache.GetOrSet(ctx, memo, "es|in|/ver/lista", func(ctx context.Context) (string, time.Duration, error) {
//		return translate(route), 0, nil
//	})
//
// A zero TTL uses the cache default, a negative TTL never expires.
// Get returns ErrNotFound on a miss; writes after Close return ErrClosed.
package cache
