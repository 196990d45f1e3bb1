// Package users is the credential store: persistent user records with a
// storage-enforced unique email.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophnotes/internal/server/models"
)

type Repository interface {
	// Create inserts user. A taken email yields common.ErrDuplicateEmail.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// CreateIfAbsent inserts user unless the email exists and reports
	// whether a row was written.
	CreateIfAbsent(ctx context.Context, user *models.User) (bool, error)
	// GetUserByEmail returns common.ErrorNotFound for unknown emails.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
}
