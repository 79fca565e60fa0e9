package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/health-center-lookup/app/models"
	"go.uber.org/zap"
)

// ErrEmptyMessage is returned for messages that are blank after trimming.
var ErrEmptyMessage = errors.New("empty message")

// Engine is the lookup pipeline the chat service runs. *query.Engine
// implements it.
type Engine interface {
	Normalize(text string) string
	ExtractEntities(message string) models.Entities
	GetCenterInfo(entities models.Entities) []models.HealthCenter
}

// ChatOutcome is the result of one processed message.
type ChatOutcome struct {
	RequestID string
	Result    *models.ChatResult
	CacheHit  bool
}

// ChatService answers chat messages: it runs the lookup pipeline, renders
// the reply, caches it and logs the misses.
type ChatService struct {
	engine  Engine
	replies *ReplyService
	cache   ICacheService
	misses  MissRecorder
	logger  *zap.Logger
}

// NewChatService creates a ChatService. cache and misses may be nil.
func NewChatService(engine Engine, replies *ReplyService, cache ICacheService, misses MissRecorder, logger *zap.Logger) *ChatService {
	return &ChatService{
		engine:  engine,
		replies: replies,
		cache:   cache,
		misses:  misses,
		logger:  logger,
	}
}

// Process answers message. Cache and miss log failures are logged and never
// returned; a panic in the pipeline is returned as an error.
func (s *ChatService) Process(ctx context.Context, message string) (outcome *ChatOutcome, err error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}

	defer func() {
		if r := recover(); r != nil {
			outcome = nil
			err = fmt.Errorf("process message: %v", r)
		}
	}()

	requestID := uuid.NewString()
	normalized := s.engine.Normalize(message)
	key := CacheKey(normalized)

	result, hit := s.cached(ctx, key)
	if !hit {
		entities := s.engine.ExtractEntities(message)
		records := s.engine.GetCenterInfo(entities)
		result = &models.ChatResult{
			Response: s.replies.Format(entities, records),
			Entities: entities,
			Centers:  records,
		}
		s.store(ctx, key, result)
	}

	if !result.Matched() {
		s.recordMiss(ctx, models.NewUnmatchedQuery(requestID, message, normalized, result.Entities))
	}

	s.logger.Info("Message processed",
		zap.String("request_id", requestID),
		zap.String("normalized", normalized),
		zap.Int("centers", len(result.Centers)),
		zap.Bool("cache_hit", hit))

	return &ChatOutcome{RequestID: requestID, Result: result, CacheHit: hit}, nil
}

func (s *ChatService) cached(ctx context.Context, key string) (*models.ChatResult, bool) {
	if s.cache == nil {
		return nil, false
	}
	result, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("Reply cache read failed", zap.Error(err), zap.String("key", key))
		return nil, false
	}
	return result, found
}

func (s *ChatService) store(ctx context.Context, key string, result *models.ChatResult) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, result); err != nil {
		s.logger.Warn("Reply cache write failed", zap.Error(err), zap.String("key", key))
	}
}

func (s *ChatService) recordMiss(ctx context.Context, q *models.UnmatchedQuery) {
	if s.misses == nil {
		return
	}
	if err := s.misses.Record(ctx, q); err != nil {
		s.logger.Warn("Cannot record unmatched query", zap.Error(err), zap.String("request_id", q.RequestID))
	}
}
