package config

import "os"

// parseEnv overlays the deployment environment variables that are set.
//
//	HTTP_ADDR               web bind address
//	DB_DRIVER               postgres | sqlite
//	DATABASE_DSN            database DSN
//	SECRET_KEY              session signing secret
//	DEFAULT_ADMIN_EMAIL     bootstrap administrator email
//	DEFAULT_ADMIN_PASSWORD  bootstrap administrator password
func parseEnv(config *Config) {
	vars := []struct {
		name string
		dst  *string
	}{
		{"HTTP_ADDR", &config.HTTPAddr},
		{"DB_DRIVER", &config.DatabaseDriver},
		{"DATABASE_DSN", &config.DatabaseDSN},
		{"SECRET_KEY", &config.SecretKey},
		{"DEFAULT_ADMIN_EMAIL", &config.AdminEmail},
		{"DEFAULT_ADMIN_PASSWORD", &config.AdminPassword},
	}

	for _, v := range vars {
		if val, ok := os.LookupEnv(v.name); ok && val != "" {
			*v.dst = val
		}
	}
}
