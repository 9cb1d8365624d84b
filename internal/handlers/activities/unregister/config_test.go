// internal/handlers/activities/unregister/config_test.go
package unregister

import (
	"testing"
	"time"

	"activity-signup/internal/common/config"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	cfg := &config.Config{
		Handlers: map[string]config.HandlerConfig{
			TaskType: {Enabled: true, Timeout: 750},
		},
	}
	cfg.Notifications.Timeout = 2000

	c := LoadConfig(cfg)

	assert.Equal(t, 750*time.Millisecond, c.Timeout)
	assert.Equal(t, 2*time.Second, c.NotifyTimeout)
}

func TestLoadConfig_MissingHandlerFallsBack(t *testing.T) {
	c := LoadConfig(&config.Config{})

	assert.Equal(t, 5*time.Second, c.Timeout)
}
