package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/health-center-lookup/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errRemoteDown = errors.New("remote down")

// mapCache is a remote cache stand-in. With fail set every call errors.
type mapCache struct {
	mu     sync.Mutex
	items  map[string]*models.ChatResult
	fail   bool
	closed bool
}

func newMapCache() *mapCache {
	return &mapCache{items: make(map[string]*models.ChatResult)}
}

func (m *mapCache) Get(ctx context.Context, key string) (*models.ChatResult, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, false, errRemoteDown
	}
	r, ok := m.items[key]
	return r, ok, nil
}

func (m *mapCache) Set(ctx context.Context, key string, result *models.ChatResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errRemoteDown
	}
	m.items[key] = result
	return nil
}

func (m *mapCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errRemoteDown
	}
	delete(m.items, key)
	return nil
}

func (m *mapCache) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errRemoteDown
	}
	m.items = make(map[string]*models.ChatResult)
	return nil
}

func (m *mapCache) GetStats(ctx context.Context) (*CacheStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, errRemoteDown
	}
	return &CacheStats{Backend: "map", TotalItems: int64(len(m.items))}, nil
}

func (m *mapCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok, err := m.Get(ctx, key)
	return ok, err
}

func (m *mapCache) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return 0, nil
}

func (m *mapCache) Close() error {
	m.closed = true
	return nil
}

func newTestHybrid(t *testing.T) (*HybridCacheService, *CacheService, *mapCache) {
	t.Helper()
	local, err := NewCacheService(10, time.Hour)
	require.NoError(t, err)
	remote := newMapCache()
	return NewHybridCacheService(local, remote, zap.NewNop()), local, remote
}

func TestHybridCacheService_ReadThrough(t *testing.T) {
	ctx := context.Background()
	h, local, remote := newTestHybrid(t)

	result := &models.ChatResult{Response: "from remote"}
	remote.items["chat:x"] = result

	got, found, err := h.Get(ctx, "chat:x")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Same(t, result, got)

	ok, _ := local.Exists(ctx, "chat:x")
	assert.True(t, ok, "L2 hit is copied into L1")
}

func TestHybridCacheService_WritesBothLevels(t *testing.T) {
	ctx := context.Background()
	h, local, remote := newTestHybrid(t)

	require.NoError(t, h.Set(ctx, "chat:y", &models.ChatResult{}))
	assert.Contains(t, remote.items, "chat:y")
	ok, _ := local.Exists(ctx, "chat:y")
	assert.True(t, ok)

	stats, err := h.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "memory+map", stats.Backend)
	assert.Equal(t, int64(2), stats.TotalItems)

	require.NoError(t, h.Delete(ctx, "chat:y"))
	exists, err := h.Exists(ctx, "chat:y")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestHybridCacheService_RemoteFailureFallsBackToLocal(t *testing.T) {
	ctx := context.Background()
	h, local, remote := newTestHybrid(t)
	remote.fail = true

	require.NoError(t, h.Set(ctx, "chat:z", &models.ChatResult{Response: "local"}), "L2 write errors are swallowed")

	got, found, err := h.Get(ctx, "chat:z")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "local", got.Response)

	require.NoError(t, local.Clear(ctx))
	_, found, err = h.Get(ctx, "chat:z")
	assert.NoError(t, err)
	assert.False(t, found)

	stats, err := h.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "memory", stats.Backend)

	assert.ErrorIs(t, h.Clear(ctx), errRemoteDown)
}

func TestHybridCacheService_Close(t *testing.T) {
	h, _, remote := newTestHybrid(t)
	require.NoError(t, h.Close())
	assert.True(t, remote.closed)
}
