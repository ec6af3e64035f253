package config

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// StoreBackend represents the session store backend for the engine.
type StoreBackend string

const (
	// StoreBackendFile keeps the session in a local JSON file.
	StoreBackendFile StoreBackend = "file"
	// StoreBackendRedis keeps the session in Redis.
	StoreBackendRedis StoreBackend = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for StoreBackend.
func (s *StoreBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "file", "redis":
		*s = StoreBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid StoreBackend: %q (valid options: file, redis)", v)
	}
}

// SessionConfig contains session persistence configuration.
type SessionConfig struct {
	// Store determines which session store backend to use.
	Store StoreBackend `env:"SESSION_STORE" envDefault:"file"`

	// FilePath is the session file location when Store=file. Empty
	// resolves to <user config dir>/zion-sync/session.json at startup.
	FilePath string `env:"SESSION_FILE"`

	// InstallationID namespaces the Redis session key when
	// Store=redis. Generated when empty.
	InstallationID string `env:"INSTALLATION_ID"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.InstallationID == "" {
		s.InstallationID = uuid.NewString()
	}
}
