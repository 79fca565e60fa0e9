package services

import (
	"context"
	"time"

	"github.com/health-center-lookup/app/models"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// HybridCacheService puts the in-memory cache (L1) in front of a shared
// remote cache (L2). Remote failures are logged and the request carries on
// with L1 only; a broken Redis never fails a chat request.
type HybridCacheService struct {
	local  *CacheService
	remote ICacheService
	logger *zap.Logger
}

// NewHybridCacheService creates a two-level cache.
func NewHybridCacheService(local *CacheService, remote ICacheService, logger *zap.Logger) *HybridCacheService {
	return &HybridCacheService{
		local:  local,
		remote: remote,
		logger: logger,
	}
}

// Get tries L1, then L2. An L2 hit is copied into L1.
func (hcs *HybridCacheService) Get(ctx context.Context, key string) (*models.ChatResult, bool, error) {
	if result, found, _ := hcs.local.Get(ctx, key); found {
		hcs.logger.Debug("L1 cache hit", zap.String("key", key))
		return result, true, nil
	}

	result, found, err := hcs.remote.Get(ctx, key)
	if err != nil {
		hcs.logger.Warn("L2 cache unavailable, using L1 only", zap.Error(err))
		return nil, false, nil
	}
	if !found {
		return nil, false, nil
	}

	_ = hcs.local.Set(ctx, key, result)
	hcs.logger.Debug("L2 cache hit", zap.String("key", key))
	return result, true, nil
}

// Set writes both levels. Only L1 is required to succeed.
func (hcs *HybridCacheService) Set(ctx context.Context, key string, result *models.ChatResult) error {
	if err := hcs.local.Set(ctx, key, result); err != nil {
		return err
	}
	if err := hcs.remote.Set(ctx, key, result); err != nil {
		hcs.logger.Warn("Cannot write L2 cache", zap.Error(err), zap.String("key", key))
	}
	return nil
}

func (hcs *HybridCacheService) Delete(ctx context.Context, key string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return hcs.local.Delete(gctx, key) })
	g.Go(func() error { return hcs.remote.Delete(gctx, key) })
	return g.Wait()
}

// Clear empties both levels concurrently.
func (hcs *HybridCacheService) Clear(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return hcs.local.Clear(gctx) })
	g.Go(func() error { return hcs.remote.Clear(gctx) })
	if err := g.Wait(); err != nil {
		return err
	}
	hcs.logger.Info("Cleared hybrid cache")
	return nil
}

// GetStats sums both levels. When L2 cannot report, the L1 numbers are
// returned alone.
func (hcs *HybridCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	local, err := hcs.local.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	remote, err := hcs.remote.GetStats(ctx)
	if err != nil {
		hcs.logger.Warn("Cannot read L2 cache stats", zap.Error(err))
		return local, nil
	}

	hits := local.TotalHits + remote.TotalHits
	misses := local.TotalMiss + remote.TotalMiss
	return &CacheStats{
		Backend:    local.Backend + "+" + remote.Backend,
		HitRate:    hitRate(hits, misses),
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: local.TotalItems + remote.TotalItems,
	}, nil
}

func (hcs *HybridCacheService) Exists(ctx context.Context, key string) (bool, error) {
	if ok, _ := hcs.local.Exists(ctx, key); ok {
		return true, nil
	}
	ok, err := hcs.remote.Exists(ctx, key)
	if err != nil {
		hcs.logger.Warn("Cannot check L2 cache", zap.Error(err))
		return false, nil
	}
	return ok, nil
}

// GetTTL reports the L2 lifetime, which outlives L1 entries.
func (hcs *HybridCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := hcs.remote.GetTTL(ctx, key)
	if err != nil || ttl == 0 {
		return hcs.local.GetTTL(ctx, key)
	}
	return ttl, nil
}

func (hcs *HybridCacheService) Close() error {
	return multierr.Combine(hcs.local.Close(), hcs.remote.Close())
}
