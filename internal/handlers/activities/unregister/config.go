// internal/handlers/activities/unregister/config.go
package unregister

import (
	"time"

	"activity-signup/internal/common/config"
)

type Config struct {
	Timeout       time.Duration
	NotifyTimeout time.Duration
}

// LoadConfig reads the handler timeout and the notification timeout from cfg.
func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout:       config.GetDuration(config.GetHandlerConfig(cfg, TaskType).Timeout),
		NotifyTimeout: config.GetDuration(cfg.Notifications.Timeout),
	}
}
