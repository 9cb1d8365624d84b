// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig                `mapstructure:"app"`
	Server        ServerConfig             `mapstructure:"server"`
	Registry      RegistryConfig           `mapstructure:"registry"`
	Redis         RedisConfig              `mapstructure:"redis"`
	RateLimit     RateLimitConfig          `mapstructure:"rate_limit"`
	Handlers      map[string]HandlerConfig `mapstructure:"handlers"`
	Logging       LoggingConfig            `mapstructure:"logging"`
	Notifications NotificationConfig       `mapstructure:"notifications"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
	StaticIndexPath string `mapstructure:"static_index_path"`
}

// RegistryConfig controls how the activity registry is seeded.
type RegistryConfig struct {
	// CatalogPath points at an activity catalog JSON file. Empty means the embedded default.
	CatalogPath     string `mapstructure:"catalog_path"`
	EnforceCapacity bool   `mapstructure:"enforce_capacity"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerWindow int  `mapstructure:"requests_per_window"`
	Window            int  `mapstructure:"window"` // milliseconds
}

// HandlerConfig holds the settings applicable to every API handler.
type HandlerConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Timeout int  `mapstructure:"timeout"` // milliseconds
}

// NotificationConfig holds settings for roster change notifications.
type NotificationConfig struct {
	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"email"`
	Events struct {
		Enabled  bool   `mapstructure:"enabled"`
		TopicARN string `mapstructure:"topic_arn"`
	} `mapstructure:"events"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
	Timeout int `mapstructure:"timeout"` // milliseconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
