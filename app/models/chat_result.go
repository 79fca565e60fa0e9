package models

// ChatResult is the answer to one chat message. It is what the reply cache
// stores, so it carries no per-request fields.
type ChatResult struct {
	Response string         `json:"response"`
	Entities Entities       `json:"entities"`
	Centers  []HealthCenter `json:"center_info"`
}

// Matched reports whether any record was found.
func (r *ChatResult) Matched() bool {
	return r != nil && len(r.Centers) > 0
}
