package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	nopLogger
	mu   sync.Mutex
	msgs []string
	args [][]any
}

func (l *recordingLogger) Info(_ context.Context, msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs, msg)
	l.args = append(l.args, args)
}

func (l *recordingLogger) With(...any) logging.Logger { return l }

func TestIdentityFrom(t *testing.T) {
	_, ok := IdentityFrom(context.Background())
	assert.False(t, ok)

	want := &models.Identity{UserID: "u1"}
	got, ok := IdentityFrom(context.WithValue(context.Background(), identityKey, want))
	require.True(t, ok)
	assert.Same(t, want, got)
}

func TestAccessLog_RecordsStatus(t *testing.T) {
	log := &recordingLogger{}
	s := &Server{logger: log}

	h := s.accessLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/brew", nil))

	require.Equal(t, []string{"request"}, log.msgs)
	args := log.args[0]
	assert.Contains(t, args, "/brew")
	assert.Contains(t, args, http.StatusTeapot)
}

func TestSessionCookieAttributes(t *testing.T) {
	s := &Server{secureCookies: true}
	rec := httptest.NewRecorder()
	s.clearSessionCookie(rec)

	c := sessionCookie(rec)
	require.NotNil(t, c)
	assert.True(t, c.Secure)
	assert.True(t, c.HttpOnly)
	assert.Empty(t, c.Value)
}
