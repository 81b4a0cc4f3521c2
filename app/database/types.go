package database

import (
	"time"
)

// Render is a cached rendered document
type Render struct {
	Key        string
	HTML       string
	ScriptURLs []string
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

func (r *Render) IsExpired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}
