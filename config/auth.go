package config

// AuthConfig contains login credentials for daemon deployments. When a
// restore finds no stored session and credentials are configured, the
// daemon logs in with them. Host UIs embedding the engine leave these
// empty and drive login themselves.
type AuthConfig struct {
	Email    string `env:"ZION_EMAIL"`
	Password string `env:"ZION_PASSWORD"`
}

// HasCredentials returns true when both email and password are set.
func (a AuthConfig) HasCredentials() bool {
	return a.Email != "" && a.Password != ""
}
