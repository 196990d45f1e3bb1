// Package common contains shared constants and sentinel errors used across
// gophnotes components.
package common

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "gophnotes_session"

// Roles a user can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
