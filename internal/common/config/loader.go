// internal/common/config/loader.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Handler names as they appear under the "handlers" config key.
const (
	HandlerListActivities = "list-activities"
	HandlerSignup         = "signup"
	HandlerUnregister     = "unregister"
)

func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// environment overlay is optional
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig()

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()

	// Enable ENV override like SERVER_ADDRESS or REDIS_ADDRESS
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Every key needs a default for AutomaticEnv to see it on Unmarshal.
	v.SetDefault("app.name", "activity-signup")
	v.SetDefault("app.version", "dev")
	v.SetDefault("app.environment", "development")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.read_timeout", 10000)
	v.SetDefault("server.write_timeout", 10000)
	v.SetDefault("server.shutdown_timeout", 30000)
	v.SetDefault("server.static_index_path", "/static/index.html")
	v.SetDefault("registry.catalog_path", "")
	v.SetDefault("registry.enforce_capacity", false)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.requests_per_window", 10)
	v.SetDefault("rate_limit.window", 60000)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("notifications.email.enabled", false)
	v.SetDefault("notifications.email.from_email", "")
	v.SetDefault("notifications.events.enabled", false)
	v.SetDefault("notifications.events.topic_arn", "")
	v.SetDefault("notifications.aws.region", "")
	v.SetDefault("notifications.timeout", 5000)

	return v
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the working directory or any parent up to the project root.
func loadEnvFile() string {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// Direct override if config values are still empty after expansion
func overrideEmptyConfig(cfg *Config) {
	if cfg.Notifications.AWS.Region == "" {
		if val := os.Getenv("AWS_REGION"); val != "" {
			cfg.Notifications.AWS.Region = val
		}
	}
	if cfg.Redis.Password == "" {
		if val := os.Getenv("REDIS_PASSWORD"); val != "" {
			cfg.Redis.Password = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8000"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 10000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30000
	}
	if cfg.Server.StaticIndexPath == "" {
		cfg.Server.StaticIndexPath = "/static/index.html"
	}

	if cfg.RateLimit.RequestsPerWindow == 0 {
		cfg.RateLimit.RequestsPerWindow = 10
	}
	if cfg.RateLimit.Window == 0 {
		cfg.RateLimit.Window = 60000
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	if cfg.Notifications.Timeout == 0 {
		cfg.Notifications.Timeout = 5000
	}

	if cfg.Handlers == nil {
		cfg.Handlers = map[string]HandlerConfig{}
	}
	for _, name := range []string{HandlerListActivities, HandlerSignup, HandlerUnregister} {
		if _, ok := cfg.Handlers[name]; !ok {
			cfg.Handlers[name] = HandlerConfig{Enabled: true}
		}
	}
	for key, handler := range cfg.Handlers {
		if handler.Timeout == 0 {
			handler.Timeout = 5000
		}
		cfg.Handlers[key] = handler
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", cfg.Logging.Level)
	}

	if cfg.RateLimit.Enabled {
		if !cfg.Redis.Enabled {
			return fmt.Errorf("rate_limit.enabled requires redis.enabled")
		}
		if cfg.RateLimit.RequestsPerWindow < 0 {
			return fmt.Errorf("rate_limit.requests_per_window must be positive")
		}
	}

	if cfg.Redis.Enabled && cfg.Redis.Address == "" {
		return fmt.Errorf("redis.address is required")
	}

	if cfg.Notifications.Email.Enabled {
		if cfg.Notifications.Email.FromEmail == "" {
			return fmt.Errorf("notifications.email.from_email is required")
		}
		if cfg.Notifications.AWS.Region == "" {
			return fmt.Errorf("notifications.aws.region is required")
		}
	}

	if cfg.Notifications.Events.Enabled {
		if cfg.Notifications.Events.TopicARN == "" {
			return fmt.Errorf("notifications.events.topic_arn is required")
		}
		if cfg.Notifications.AWS.Region == "" {
			return fmt.Errorf("notifications.aws.region is required")
		}
	}

	return nil
}

// GetHandlerConfig retrieves handler-specific configuration with fallback to defaults
func GetHandlerConfig(cfg *Config, name string) HandlerConfig {
	if handler, exists := cfg.Handlers[name]; exists {
		return handler
	}

	return HandlerConfig{
		Enabled: true,
		Timeout: 5000,
	}
}

// IsHandlerEnabled checks if a specific handler is enabled
func IsHandlerEnabled(cfg *Config, name string) bool {
	if handler, exists := cfg.Handlers[name]; exists {
		return handler.Enabled
	}
	return true
}
