package models

import "time"

// Identity is the authenticated caller resolved from a session token.
// Name is only known once the user record has been loaded.
type Identity struct {
	UserID    string
	Email     string
	Name      string
	Role      string
	TokenID   string
	ExpiresAt time.Time
}
