package web

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
)

type ctxKey string

const identityKey ctxKey = "identity"

// IdentityFrom returns the caller placed in ctx by Require.
func IdentityFrom(ctx context.Context) (*models.Identity, bool) {
	id, ok := ctx.Value(identityKey).(*models.Identity)
	return id, ok && id != nil
}

// Require admits requests whose session resolves to a user holding one of
// roles. The role is read from the stored user on every request, so a
// role change applies to sessions that already exist. Everyone else is
// sent to the login page.
func (s *Server) Require(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			id, err := s.authenticate(ctx, r)
			if err != nil {
				if !errors.Is(err, common.ErrorUnauthorized) {
					s.logger.Error(ctx, "session lookup failed", "error", err)
				}
				seeOther(w, r, "/login")
				return
			}

			if !slices.Contains(roles, id.Role) {
				s.logger.Warn(ctx, "role not allowed", "email", id.Email, "role", id.Role, "path", r.URL.Path)
				seeOther(w, r, "/login")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, identityKey, id)))
		})
	}
}

func (s *Server) authenticate(ctx context.Context, r *http.Request) (*models.Identity, error) {
	c, err := r.Cookie(common.SessionCookieName)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	id, err := s.sessions.Read(ctx, c.Value)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, id.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}
	if user.ID != id.UserID {
		return nil, common.ErrorUnauthorized
	}

	id.Role = user.Role
	id.Name = user.Name
	return id, nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
		)
	})
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(s.sessions.Validity().Seconds()),
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
