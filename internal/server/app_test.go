package server

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.HTTPAddr = "127.0.0.1:0"
	c.DatabaseDSN = "file:" + filepath.Join(t.TempDir(), "db", "notes.db") + "?_pragma=busy_timeout(5000)&_txlock=immediate"
	c.AdminEmail = "root@example.com"
	c.AdminPassword = "pw"
	c.RevocationPurgeInterval = 10 * time.Millisecond
	c.LogLevel = "error"
	return c
}

func TestNewApp_RejectsBadConfig(t *testing.T) {
	ctx := context.Background()

	c := testConfig(t)
	c.DatabaseDriver = "oracle"
	_, err := NewApp(ctx, c)
	assert.Error(t, err)

	c = testConfig(t)
	c.PasswordHash = "md5"
	_, err = NewApp(ctx, c)
	assert.Error(t, err)
}

func TestApp_RunBootstrapsAdminAndStops(t *testing.T) {
	c := testConfig(t)
	c.PasswordHash = "argon2id"

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool {
		u, err := app.userService.FindByEmail(context.Background(), "root@example.com")
		return err == nil && u.Role == common.RoleAdmin
	}, 2*time.Second, 20*time.Millisecond)

	admin, err := app.userService.Login(context.Background(), "root@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, common.RoleAdmin, admin.Role)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after cancel")
	}
}

func TestPurgeRevocations_DisabledInterval(t *testing.T) {
	app := &App{}
	finished := make(chan struct{})
	go func() {
		app.purgeRevocations(context.Background(), 0)
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("zero interval must return immediately")
	}
}
