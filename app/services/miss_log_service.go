package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/health-center-lookup/app/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	unmatchedCollection = "unmatched_queries"

	// DefaultMissLimit is used when a caller asks for a non-positive limit.
	DefaultMissLimit = 50
)

// MissRecorder keeps the messages that matched no health center.
type MissRecorder interface {
	Record(ctx context.Context, q *models.UnmatchedQuery) error
	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]models.UnmatchedQuery, error)
	Count(ctx context.Context) (int64, error)
	Close(ctx context.Context) error
}

// MongoMissLog stores unmatched queries in MongoDB.
type MongoMissLog struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewMongoMissLog uses the unmatched_queries collection of db and makes sure
// its indexes exist. Index failures are only logged.
func NewMongoMissLog(ctx context.Context, db *mongo.Database, logger *zap.Logger) *MongoMissLog {
	collection := db.Collection(unmatchedCollection)

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{bson.E{Key: "created_at", Value: -1}}},
		{Keys: bson.D{bson.E{Key: "normalized", Value: 1}}},
	}

	idxCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(idxCtx, indexModels); err != nil {
		logger.Warn("Cannot create indexes", zap.String("collection", unmatchedCollection), zap.Error(err))
	}

	return &MongoMissLog{collection: collection, logger: logger}
}

func (m *MongoMissLog) Record(ctx context.Context, q *models.UnmatchedQuery) error {
	if _, err := m.collection.InsertOne(ctx, q); err != nil {
		return fmt.Errorf("insert unmatched query: %w", err)
	}
	return nil
}

func (m *MongoMissLog) Recent(ctx context.Context, limit int) ([]models.UnmatchedQuery, error) {
	if limit <= 0 {
		limit = DefaultMissLimit
	}
	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := m.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("query unmatched queries: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.UnmatchedQuery
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode unmatched queries: %w", err)
	}
	return out, nil
}

func (m *MongoMissLog) Count(ctx context.Context) (int64, error) {
	return m.collection.EstimatedDocumentCount(ctx)
}

// Close disconnects the client that owns the collection.
func (m *MongoMissLog) Close(ctx context.Context) error {
	return m.collection.Database().Client().Disconnect(ctx)
}

// MemoryMissLog keeps the last entries in a fixed-size ring. It is the
// fallback when no MongoDB is configured.
type MemoryMissLog struct {
	mu      sync.Mutex
	entries []models.UnmatchedQuery
	next    int
	full    bool
	total   int64
}

// NewMemoryMissLog creates a ring holding up to capacity entries.
func NewMemoryMissLog(capacity int) *MemoryMissLog {
	if capacity < 1 {
		capacity = DefaultMissLimit
	}
	return &MemoryMissLog{entries: make([]models.UnmatchedQuery, capacity)}
}

func (m *MemoryMissLog) Record(ctx context.Context, q *models.UnmatchedQuery) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[m.next] = *q
	m.next = (m.next + 1) % len(m.entries)
	if m.next == 0 {
		m.full = true
	}
	m.total++
	return nil
}

func (m *MemoryMissLog) Recent(ctx context.Context, limit int) ([]models.UnmatchedQuery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	size := m.next
	if m.full {
		size = len(m.entries)
	}
	if limit <= 0 {
		limit = DefaultMissLimit
	}
	if limit > size {
		limit = size
	}

	out := make([]models.UnmatchedQuery, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (m.next - i + len(m.entries)) % len(m.entries)
		out = append(out, m.entries[idx])
	}
	return out, nil
}

// Count returns every entry ever recorded, including the overwritten ones.
func (m *MemoryMissLog) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.total, nil
}

func (m *MemoryMissLog) Close(ctx context.Context) error { return nil }
