// Package revocations stores session token ids cleared on logout until
// the tokens would have expired on their own.
package revocations

import (
	"context"
	"time"
)

type Repository interface {
	// Create records tokenID as revoked. Revoking twice is not an error.
	Create(ctx context.Context, tokenID string, expiresAt time.Time) error
	Exists(ctx context.Context, tokenID string) (bool, error)
	// DeleteExpired drops revocations whose expiry is before now and
	// returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
