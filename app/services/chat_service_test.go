package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/health-center-lookup/app/models"
	"github.com/health-center-lookup/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixturePath = filepath.Join("..", "..", "internal", "dataset", "testdata", "centros_saude.csv")

type failingMissLog struct{ MemoryMissLog }

func (f *failingMissLog) Record(ctx context.Context, q *models.UnmatchedQuery) error {
	return errors.New("mongo down")
}

type panickingEngine struct{}

func (panickingEngine) Normalize(text string) string { return text }

func (panickingEngine) ExtractEntities(message string) models.Entities {
	panic("boom")
}

func (panickingEngine) GetCenterInfo(entities models.Entities) []models.HealthCenter { return nil }

func newTestChatService(t *testing.T, misses MissRecorder) (*ChatService, *CacheService) {
	t.Helper()
	engine, err := query.NewEngine(query.Options{DataPath: fixturePath, CacheSize: 1}, zap.NewNop())
	require.NoError(t, err)
	cache, err := NewCacheService(10, time.Hour)
	require.NoError(t, err)
	return NewChatService(engine, NewReplyService(), cache, misses, zap.NewNop()), cache
}

func TestChatService_Process(t *testing.T) {
	ctx := context.Background()
	misses := NewMemoryMissLog(10)
	svc, _ := newTestChatService(t, misses)

	out, err := svc.Process(ctx, "Onde fica o posto de saúde Vila Cemig?")
	require.NoError(t, err)
	assert.NotEmpty(t, out.RequestID)
	assert.False(t, out.CacheHit)
	assert.Equal(t, "centro de saude vila cemig", out.Result.Entities.CenterName)
	require.Len(t, out.Result.Centers, 1)
	assert.Equal(t, "Encontrei 1 centro(s) de saúde:"+
		"<br>• <b>CENTRO DE SAUDE VILA CEMIG</b>: Rua Cemig, 200 - Vila Cemig | Telefone: (31) 3277-1301",
		out.Result.Response)

	again, err := svc.Process(ctx, "onde fica o POSTO de saude vila cemig")
	require.NoError(t, err)
	assert.True(t, again.CacheHit, "same normalized text hits the cache")
	assert.NotEqual(t, out.RequestID, again.RequestID)
	assert.Same(t, out.Result, again.Result)

	count, _ := misses.Count(ctx)
	assert.Zero(t, count)
}

func TestChatService_RecordsMisses(t *testing.T) {
	ctx := context.Background()
	misses := NewMemoryMissLog(10)
	svc, _ := newTestChatService(t, misses)

	out, err := svc.Process(ctx, "bom dia!")
	require.NoError(t, err)
	assert.Equal(t, NoMatchReply, out.Result.Response)
	assert.Nil(t, out.Result.Centers)

	_, err = svc.Process(ctx, "Bom dia")
	require.NoError(t, err)

	recent, err := misses.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2, "cached misses are logged too")
	assert.Equal(t, "Bom dia", recent[0].Message)
	assert.Equal(t, "bom dia", recent[0].Normalized)
	assert.False(t, recent[0].HasEntities())
}

func TestChatService_MissLogFailureIsNotFatal(t *testing.T) {
	svc, _ := newTestChatService(t, &failingMissLog{})
	out, err := svc.Process(context.Background(), "nada aqui")
	require.NoError(t, err)
	assert.Equal(t, NoMatchReply, out.Result.Response)
}

func TestChatService_Errors(t *testing.T) {
	svc, _ := newTestChatService(t, nil)
	_, err := svc.Process(context.Background(), "  \t ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	broken := NewChatService(panickingEngine{}, NewReplyService(), nil, nil, zap.NewNop())
	out, err := broken.Process(context.Background(), "qualquer")
	assert.Nil(t, out)
	assert.ErrorContains(t, err, "boom")
}
