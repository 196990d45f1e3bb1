// Package counters allocates per-owner note sequence numbers.
package counters

import "context"

type Repository interface {
	// Next atomically issues the owner's next sequence number, starting at 1.
	Next(ctx context.Context, ownerID string) (int64, error)
	// Current returns the last issued number, 0 when none was issued.
	Current(ctx context.Context, ownerID string) (int64, error)
}
