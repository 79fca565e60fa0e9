package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UnmatchedQuery is a message that produced no records. Curators use the
// log to extend the synonym tables.
type UnmatchedQuery struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	RequestID  string             `bson:"request_id" json:"request_id"`
	Message    string             `bson:"message" json:"message"`       // Raw user message
	Normalized string             `bson:"normalized" json:"normalized"` // Matching form of the message
	Entities   Entities           `bson:"entities" json:"entities"`     // What the extractor found, possibly nothing
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

// NewUnmatchedQuery builds a log entry stamped with the current time.
func NewUnmatchedQuery(requestID, message, normalized string, entities Entities) *UnmatchedQuery {
	return &UnmatchedQuery{
		RequestID:  requestID,
		Message:    message,
		Normalized: normalized,
		Entities:   entities,
		CreatedAt:  time.Now().UTC(),
	}
}

// HasEntities reports whether the miss happened at record lookup rather
// than at extraction.
func (q *UnmatchedQuery) HasEntities() bool {
	return !q.Entities.IsEmpty()
}
