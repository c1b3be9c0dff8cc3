package config

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - auth.go: Token signing and password hashing configuration
//   - database.go: Database and cache configuration
//   - http.go: HTTP server configuration
//   - storage.go: Avatar object storage configuration
type AppConfig struct {
	// IsDev controls development mode behavior (verbose logging, local storage defaults).
	IsDev bool `env:"DEV" envDefault:"false"`

	// SeedDevData seeds sample accounts and contacts on startup. Only honored
	// in development mode.
	SeedDevData bool `env:"SEED_DEV_DATA" envDefault:"false"`

	// Authentication configuration
	Auth AuthConfig `envPrefix:"AUTH_"`

	// Database configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`
	Cache    CacheConfig `envPrefix:"CACHE_"`

	// HTTP server configuration
	HTTP HTTPConfig

	// Avatar storage configuration
	Storage StorageConfig `envPrefix:"S3_"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Auth.Sanitize()
	c.Cache.Sanitize()
}
