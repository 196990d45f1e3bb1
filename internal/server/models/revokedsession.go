package models

import "time"

// RevokedSession marks a session token id that was cleared on logout.
// It is kept until the token would have expired anyway.
type RevokedSession struct {
	TokenID   string
	ExpiresAt time.Time
	CreatedAt time.Time
}
