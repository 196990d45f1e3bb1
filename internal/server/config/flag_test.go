package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-d", "postgres://db", "-driver", "postgres", "-s", "secret",
			"-t", "30", "-hash", "argon2id", "-admin-email", "root@example.com", "-admin-password", "pw",
			"-purge", "5", "-secure", "-log", "debug",
		}, expected: &Config{
			HTTPAddr:                "127.0.0.1:9090",
			DatabaseDriver:          "postgres",
			DatabaseDSN:             "postgres://db",
			SecretKey:               "secret",
			SessionValidityDuration: 30 * time.Minute,
			PasswordHash:            "argon2id",
			AdminEmail:              "root@example.com",
			AdminPassword:           "pw",
			RevocationPurgeInterval: 5 * time.Minute,
			SecureCookies:           true,
			LogLevel:                "debug",
		}},
		{name: "foreign flags ignored", args: []string{"cmd", "-c", "cfg.json", "-x", "y", "-a", ":1"},
			expected: &Config{HTTPAddr: ":1"}},
		{name: "bool flag does not eat positional", args: []string{"cmd", "-secure", "8080", "-a", ":2"},
			expected: &Config{HTTPAddr: ":2", SecureCookies: true}},
		{name: "bad int", args: []string{"cmd", "-t", "soon"}, expectPanic: true},
	}

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(tt.expected, config))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}

func TestParseEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_DSN", "postgres://env")
	t.Setenv("SECRET_KEY", "env-secret")
	t.Setenv("DEFAULT_ADMIN_EMAIL", "admin@example.com")
	t.Setenv("DEFAULT_ADMIN_PASSWORD", "")

	c := &Config{AdminPassword: "keep"}
	parseEnv(c)

	want := &Config{
		HTTPAddr:       ":9999",
		DatabaseDriver: "postgres",
		DatabaseDSN:    "postgres://env",
		SecretKey:      "env-secret",
		AdminEmail:     "admin@example.com",
		AdminPassword:  "keep",
	}
	assert.Empty(t, cmp.Diff(want, c))
}
