package domain

import "time"

// ActivityType is the outcome recorded for a handled request
type ActivityType string

const (
	ActivitySuccess ActivityType = "success"
	ActivityError   ActivityType = "error"
)

// ActivityLogEntry is one row of the append-only audit trail
type ActivityLogEntry struct {
	ID        string       `json:"id,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	Action    string       `json:"action"`   // request URL
	Request   string       `json:"request"`  // request method
	Response  string       `json:"response"` // serialized response body or error string
	Type      ActivityType `json:"type"`
	Shop      string       `json:"shop"`
}
