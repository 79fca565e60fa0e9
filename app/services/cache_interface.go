package services

import (
	"context"
	"time"

	"github.com/health-center-lookup/app/models"
)

// CacheStats is the hit/miss summary exposed on the admin API.
type CacheStats struct {
	Backend    string  `json:"backend"`
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// ICacheService stores chat results keyed by CacheKey.
type ICacheService interface {
	Get(ctx context.Context, key string) (*models.ChatResult, bool, error)
	Set(ctx context.Context, key string, result *models.ChatResult) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	GetStats(ctx context.Context) (*CacheStats, error)
	Exists(ctx context.Context, key string) (bool, error)
	// GetTTL returns the remaining lifetime of key, 0 when it is absent.
	GetTTL(ctx context.Context, key string) (time.Duration, error)
	Close() error
}

// CacheKey returns the cache key of a normalized message. Extraction only
// depends on the normalized text, so messages that normalize alike share a
// reply.
func CacheKey(normalized string) string {
	return "chat:" + normalized
}

func hitRate(hits, misses int64) float64 {
	if total := hits + misses; total > 0 {
		return float64(hits) / float64(total)
	}
	return 0
}
