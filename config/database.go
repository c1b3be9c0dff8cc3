package config

import "time"

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"contacts"`
	Password string `env:"PASSWORD" envDefault:"contacts"`
	Name     string `env:"NAME"     envDefault:"contacts_db"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// RedisConfig contains Redis configuration for the profile cache.
type RedisConfig struct {
	// URI accepts either a plain host:port or a redis:// URL.
	URI      string `env:"URI"      envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}

// CacheConfig contains profile cache behavior configuration.
type CacheConfig struct {
	// ProfileTTL is how long a cached profile snapshot remains readable.
	// Entries expire automatically; credential writes refresh or delete them.
	ProfileTTL time.Duration `env:"PROFILE_TTL" envDefault:"1h"`
}

// Sanitize applies guardrails to cache configuration values.
func (c *CacheConfig) Sanitize() {
	if c.ProfileTTL <= 0 {
		c.ProfileTTL = time.Hour
	}
}
