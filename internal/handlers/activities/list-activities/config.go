// internal/handlers/activities/list-activities/config.go
package listactivities

import (
	"time"

	"activity-signup/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout: config.GetDuration(config.GetHandlerConfig(cfg, TaskType).Timeout),
	}
}
