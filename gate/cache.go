package gate

import (
	"context"
	"sync"
	"time"
)

// CachedResolver wraps a ProfileResolver with TTL caching so authorization
// checks do not hit the store on every call.
type CachedResolver[S comparable] struct {
	inner ProfileResolver[S]
	ttl   time.Duration

	mu    sync.RWMutex
	cache map[S]cacheEntry
}

type cacheEntry struct {
	profile   Profile
	expiresAt time.Time
}

// NewCachedResolver wraps inner; cached entries expire after ttl.
func NewCachedResolver[S comparable](inner ProfileResolver[S], ttl time.Duration) *CachedResolver[S] {
	return &CachedResolver[S]{
		inner: inner,
		ttl:   ttl,
		cache: make(map[S]cacheEntry),
	}
}

func (r *CachedResolver[S]) Resolve(ctx context.Context, subject S) (Profile, error) {
	r.mu.RLock()
	entry, ok := r.cache[subject]
	r.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		return entry.profile, nil
	}

	profile, err := r.inner.Resolve(ctx, subject)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[subject] = cacheEntry{profile: profile, expiresAt: time.Now().Add(r.ttl)}
	r.mu.Unlock()
	return profile, nil
}

// Invalidate drops a single subject from the cache. Call it when the
// subject's role assignment changes.
func (r *CachedResolver[S]) Invalidate(subject S) {
	r.mu.Lock()
	delete(r.cache, subject)
	r.mu.Unlock()
}

// InvalidateAll clears the cache, e.g. after permissions are edited.
func (r *CachedResolver[S]) InvalidateAll() {
	r.mu.Lock()
	r.cache = make(map[S]cacheEntry)
	r.mu.Unlock()
}
