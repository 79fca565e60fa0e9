package requests

// ChatRequest is the body of POST /api/chat. Message is a pointer so that a
// missing field can be told apart from an empty one.
type ChatRequest struct {
	Message *string `json:"message"`
}

// MissesQuery holds the query string of GET /api/admin/misses.
type MissesQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"`
}
