package config

import "time"

// SyncConfig contains notification sync configuration.
type SyncConfig struct {
	// PollInterval is the unread counter poll cadence.
	PollInterval time.Duration `env:"SYNC_POLL_INTERVAL" envDefault:"30s"`
}

// Sanitize applies guardrails to sync configuration values.
func (s *SyncConfig) Sanitize() {
	// Prevent hammering the backend with sub-second polling
	if s.PollInterval < time.Second {
		s.PollInterval = time.Second
	}
}
