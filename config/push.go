package config

// PushConfig contains push registration configuration.
type PushConfig struct {
	// Enabled toggles push token registration on session activation.
	Enabled bool `env:"PUSH_ENABLED" envDefault:"true"`

	// ProjectID identifies the push project the device token belongs to.
	ProjectID string `env:"PUSH_PROJECT_ID"`

	// DeviceToken is the device push identifier for daemon deployments,
	// where no platform push service is available to resolve one.
	DeviceToken string `env:"PUSH_DEVICE_TOKEN"`
}
