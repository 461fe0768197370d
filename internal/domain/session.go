package domain

import "time"

// Session records that a shop completed the install flow.
// It is persisted so that restarts do not force shops through OAuth again.
type Session struct {
	Shop        string    `json:"shop"`
	Scope       string    `json:"scope"`
	InstalledAt time.Time `json:"installed_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OAuthStateTTL bounds how long an install redirect may take to come back
const OAuthStateTTL = 10 * time.Minute
