package responses

import (
	"github.com/health-center-lookup/app/models"
	"github.com/health-center-lookup/app/services"
	"github.com/health-center-lookup/internal/dataset"
)

// ErrorResponse is the body of every 4xx/5xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ChatResponse is the body of a successful POST /api/chat.
type ChatResponse struct {
	RequestID  string                `json:"request_id"`
	Response   string                `json:"response"`
	Entities   models.Entities       `json:"entities"`
	CenterInfo []models.HealthCenter `json:"center_info"`
	CacheHit   bool                  `json:"cache_hit"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status  string        `json:"status"`
	Details HealthDetails `json:"details"`
}

type HealthDetails struct {
	Engine        string  `json:"engine"`
	Records       int     `json:"records"`
	CenterNames   int     `json:"center_names"`
	Neighborhoods int     `json:"neighborhoods"`
	Districts     int     `json:"districts"`
	IndexTerms    int     `json:"index_terms"`
	Threshold     float64 `json:"similarity_threshold"`
}

// MissesResponse is the body of GET /api/admin/misses.
type MissesResponse struct {
	Total   int64                   `json:"total"`
	Queries []models.UnmatchedQuery `json:"queries"`
}

// StatsResponse is the body of GET /api/admin/stats.
type StatsResponse struct {
	Dataset dataset.Report       `json:"dataset"`
	Cache   *services.CacheStats `json:"cache,omitempty"`
	Misses  int64                `json:"misses"`
}

// MessageResponse acknowledges admin actions.
type MessageResponse struct {
	Message string `json:"message"`
}
