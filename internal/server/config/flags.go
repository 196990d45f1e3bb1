package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string               web bind address (e.g., ":8080")
//	-d string               database DSN
//	-driver string          postgres | sqlite
//	-s string               session signing secret
//	-t int                  session validity, minutes
//	-hash string            bcrypt | argon2id
//	-admin-email string     bootstrap administrator email
//	-admin-password string  bootstrap administrator password
//	-purge int              revocation purge interval, minutes
//	-secure                 Secure attribute on the session cookie
//	-log string             log level
//
// os.Args is first filtered with flagx so that -c/-config and flags of
// other components do not break parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgsWithBools(os.Args[1:],
		[]string{"-a", "-d", "-driver", "-s", "-t", "-hash", "-admin-email", "-admin-password", "-purge", "-secure", "-log"},
		[]string{"-secure"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.DatabaseDriver, "driver", config.DatabaseDriver, "database driver (postgres|sqlite)")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	sessionValidity := fs.Int("t", int(config.SessionValidityDuration.Minutes()), "session validity (in minutes)")
	fs.StringVar(&config.PasswordHash, "hash", config.PasswordHash, "password hash algorithm (bcrypt|argon2id)")
	fs.StringVar(&config.AdminEmail, "admin-email", config.AdminEmail, "bootstrap admin email")
	fs.StringVar(&config.AdminPassword, "admin-password", config.AdminPassword, "bootstrap admin password")
	purge := fs.Int("purge", int(config.RevocationPurgeInterval.Minutes()), "revocation purge interval (in minutes)")
	fs.BoolVar(&config.SecureCookies, "secure", config.SecureCookies, "secure session cookie")
	fs.StringVar(&config.LogLevel, "log", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionValidityDuration = time.Duration(*sessionValidity) * time.Minute
	config.RevocationPurgeInterval = time.Duration(*purge) * time.Minute
}
