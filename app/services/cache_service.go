package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/health-center-lookup/app/models"
	lru "github.com/hashicorp/golang-lru/v2"
)

type cacheEntry struct {
	result   *models.ChatResult
	storedAt time.Time
}

// CacheService is the in-memory reply cache: a bounded LRU whose entries
// also expire after ttl.
type CacheService struct {
	cache *lru.Cache[string, cacheEntry]
	ttl   time.Duration
	now   func() time.Time

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCacheService creates a CacheService holding at most size entries.
func NewCacheService(size int, ttl time.Duration) (*CacheService, error) {
	if size < 1 {
		size = 1
	}
	cache, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, fmt.Errorf("create LRU cache: %w", err)
	}
	return &CacheService{
		cache: cache,
		ttl:   ttl,
		now:   time.Now,
	}, nil
}

// Get returns the cached result for key. Expired entries count as misses
// and are removed.
func (cs *CacheService) Get(ctx context.Context, key string) (*models.ChatResult, bool, error) {
	entry, ok := cs.cache.Get(key)
	if ok && cs.isExpired(entry) {
		cs.cache.Remove(key)
		ok = false
	}
	if !ok {
		cs.misses.Add(1)
		return nil, false, nil
	}
	cs.hits.Add(1)
	return entry.result, true, nil
}

func (cs *CacheService) Set(ctx context.Context, key string, result *models.ChatResult) error {
	cs.cache.Add(key, cacheEntry{result: result, storedAt: cs.now()})
	return nil
}

func (cs *CacheService) Delete(ctx context.Context, key string) error {
	cs.cache.Remove(key)
	return nil
}

// Clear drops every entry and resets the counters.
func (cs *CacheService) Clear(ctx context.Context) error {
	cs.cache.Purge()
	cs.hits.Store(0)
	cs.misses.Store(0)
	return nil
}

// Size returns the number of entries, expired ones included.
func (cs *CacheService) Size() int {
	return cs.cache.Len()
}

func (cs *CacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	hits, misses := cs.hits.Load(), cs.misses.Load()
	return &CacheStats{
		Backend:    "memory",
		HitRate:    hitRate(hits, misses),
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: int64(cs.cache.Len()),
	}, nil
}

// CleanupExpired removes expired entries and returns how many were dropped.
func (cs *CacheService) CleanupExpired() int {
	removed := 0
	for _, key := range cs.cache.Keys() {
		if entry, ok := cs.cache.Peek(key); ok && cs.isExpired(entry) {
			cs.cache.Remove(key)
			removed++
		}
	}
	return removed
}

// StartCleanupWorker runs CleanupExpired every interval until ctx is done.
func (cs *CacheService) StartCleanupWorker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cs.CleanupExpired()
			}
		}
	}()
}

func (cs *CacheService) Exists(ctx context.Context, key string) (bool, error) {
	entry, ok := cs.cache.Peek(key)
	return ok && !cs.isExpired(entry), nil
}

func (cs *CacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	entry, ok := cs.cache.Peek(key)
	if !ok {
		return 0, nil
	}
	remaining := cs.ttl - cs.now().Sub(entry.storedAt)
	if remaining < 0 {
		return 0, nil
	}
	return remaining, nil
}

// Close is a no-op for the in-memory cache.
func (cs *CacheService) Close() error {
	return nil
}

func (cs *CacheService) isExpired(entry cacheEntry) bool {
	return cs.ttl > 0 && cs.now().Sub(entry.storedAt) > cs.ttl
}
