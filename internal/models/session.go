package models

import (
	"time"
)

// Session is an anonymous identity acquired once at startup
type Session struct {
	// ID is the unique identifier for this session
	ID string

	// CreatedAt is when the session was created
	CreatedAt time.Time

	// ExpiresAt is when the session stops being valid
	ExpiresAt time.Time
}
