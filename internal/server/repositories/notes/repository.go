// Package notes persists notes. Every mutation is scoped to the owner in
// the statement itself.
package notes

import (
	"context"

	"github.com/dmitrijs2005/gophnotes/internal/server/models"
)

type Repository interface {
	// Create inserts note; OwnerID and Seq must already be set.
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	// ListByOwner returns the owner's notes, highest Seq first.
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Note, error)
	// GetOwned, Update and Delete return common.ErrNotOwned when the note
	// belongs to someone else and common.ErrorNotFound when it is missing.
	GetOwned(ctx context.Context, id, ownerID string) (*models.Note, error)
	Update(ctx context.Context, id, ownerID string, fields models.NoteFields) error
	Delete(ctx context.Context, id, ownerID string) error
	// ListAll returns every note with OwnerEmail filled.
	ListAll(ctx context.Context) ([]*models.Note, error)
}
