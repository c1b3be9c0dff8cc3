package config

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the base URL of the application (e.g., "https://contacts.example.com").
	// Used when generating absolute URLs in reset notifications.
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`
}
