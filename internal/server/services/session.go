package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/server/auth"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/repomanager"
)

// SessionService issues, reads and clears signed session tokens. Tokens
// are stateless except for the revocation list written on logout.
type SessionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	secret      []byte
	validity    time.Duration
	now         func() time.Time
}

func NewSessionService(db *sql.DB, m repomanager.RepositoryManager, secret []byte, validity time.Duration) *SessionService {
	return &SessionService{db: db, repomanager: m, secret: secret, validity: validity, now: time.Now}
}

func (s *SessionService) Validity() time.Duration {
	return s.validity
}

// Create issues a token for user and returns it with its expiry.
func (s *SessionService) Create(user *models.User) (string, time.Time, error) {
	token, claims, err := auth.GenerateToken(user.ID, user.Email, user.Role, s.secret, s.validity)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("error signing session: %w", err)
	}
	return token, claims.ExpiresAt.Time, nil
}

// Read verifies token and returns the identity it carries. Missing,
// malformed, forged, expired and revoked tokens all yield
// common.ErrorUnauthorized.
func (s *SessionService) Read(ctx context.Context, token string) (*models.Identity, error) {
	if token == "" {
		return nil, common.ErrorUnauthorized
	}

	claims, err := auth.ParseToken(token, s.secret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	revoked, err := s.repomanager.Revocations(s.db).Exists(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("error checking revocation: %w", err)
	}
	if revoked {
		return nil, common.ErrorUnauthorized
	}

	return &models.Identity{
		UserID:    claims.UserID,
		Email:     claims.Email,
		Role:      claims.Role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Clear revokes token until its expiry. Tokens that do not verify, or
// have already expired, can never be read again anyway and are ignored.
func (s *SessionService) Clear(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims, err := auth.ParseToken(token, s.secret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) || errors.Is(err, common.ErrInvalidToken) {
			return nil
		}
		return err
	}

	if err := s.repomanager.Revocations(s.db).Create(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("error revoking session: %w", err)
	}
	return nil
}

// PurgeExpired removes revocations of tokens that are past expiry.
func (s *SessionService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.repomanager.Revocations(s.db).DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("error purging revocations: %w", err)
	}
	return n, nil
}
