package config

import "time"

// APIConfig contains backend API client configuration.
type APIConfig struct {
	// BaseURL is the Zion backend API root.
	BaseURL string `env:"API_BASE_URL" envDefault:"https://zion-backend-og8z.onrender.com/api"`

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"15s"`
}

// Sanitize applies guardrails to API configuration values.
func (a *APIConfig) Sanitize() {
	if a.Timeout < time.Second {
		a.Timeout = time.Second
	}
}
