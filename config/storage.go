package config

// StorageConfig contains S3-compatible object storage configuration for
// avatar uploads. Defaults target a local MinIO instance.
type StorageConfig struct {
	Endpoint  string `env:"ENDPOINT"   envDefault:"http://localhost:9000"`
	Region    string `env:"REGION"     envDefault:"us-east-1"`
	Bucket    string `env:"BUCKET"     envDefault:"avatars"`
	AccessKey string `env:"ACCESS_KEY" envDefault:""`
	SecretKey string `env:"SECRET_KEY" envDefault:""`

	// PublicBaseURL is the URL prefix under which uploaded objects are
	// publicly reachable. When empty, Endpoint is used.
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:""`

	// UsePathStyle forces path-style addressing (required for MinIO).
	UsePathStyle bool `env:"USE_PATH_STYLE" envDefault:"true"`
}
