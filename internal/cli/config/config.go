// Package config loads CLI configuration from file, environment and flags.
package config

// Config holds project-level CLI settings.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
type Config struct {
	// BaseURL is the platform API endpoint.
	BaseURL string `koanf:"base_url"`
	// APIToken authenticates against the platform API.
	APIToken string `koanf:"api_token"`
	// ModelID is the default model applied to dashboards that do not set
	// their own before serialization.
	ModelID string `koanf:"model_id"`
	// FolderID is the default destination folder for pushed dashboards.
	FolderID string `koanf:"folder_id"`
	// Concurrency bounds parallel submissions during push.
	Concurrency int `koanf:"concurrency"`
	// RequestRate bounds outbound requests per second.
	RequestRate float64 `koanf:"request_rate"`
	// Formats extends the known format-code catalog used by validation.
	Formats []string `koanf:"formats"`
	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
}
