// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment and command-line flags.
package config

import "time"

// Config holds runtime settings for the gophnotes server.
//
// Fields:
//   - HTTPAddr: bind address for the web endpoint.
//   - DatabaseDriver: "postgres" or "sqlite".
//   - DatabaseDSN: DSN for the selected driver.
//   - SecretKey: HMAC secret for signing session tokens (HS256). Empty
//     means a random per-process key, which logs everybody out on restart.
//   - SessionValidityDuration: session token lifetime.
//   - PasswordHash: "bcrypt" or "argon2id" for new password records.
//   - AdminEmail / AdminPassword: bootstrap administrator, skipped if
//     either is empty.
//   - RevocationPurgeInterval: how often expired logouts are purged.
//   - SecureCookies: set the Secure attribute on the session cookie.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	HTTPAddr                string
	DatabaseDriver          string
	DatabaseDSN             string
	SecretKey               string
	SessionValidityDuration time.Duration
	PasswordHash            string
	AdminEmail              string
	AdminPassword           string
	RevocationPurgeInterval time.Duration
	SecureCookies           bool
	LogLevel                string
}

// LoadDefaults populates Config with development defaults: a local SQLite
// file and no bootstrap administrator.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8080"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "file:data/gophnotes.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_txlock=immediate"
	c.SecretKey = ""
	c.SessionValidityDuration = 60 * time.Minute
	c.PasswordHash = "bcrypt"
	c.AdminEmail = ""
	c.AdminPassword = ""
	c.RevocationPurgeInterval = 10 * time.Minute
	c.SecureCookies = false
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line
// flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
