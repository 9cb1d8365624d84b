// cmd/signup-server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"activity-signup/internal/activities"
	awsclients "activity-signup/internal/common/aws"
	"activity-signup/internal/common/config"
	"activity-signup/internal/common/database"
	"activity-signup/internal/common/logger"
	"activity-signup/internal/common/metrics"
	"activity-signup/internal/common/observability"
	"activity-signup/internal/notify"
	"activity-signup/internal/ratelimit"
	"activity-signup/internal/server"
	"activity-signup/pkg/registry"

	la "activity-signup/internal/handlers/activities/list-activities"
	su "activity-signup/internal/handlers/activities/signup"
	ur "activity-signup/internal/handlers/activities/unregister"
)

// retryWithBackoff attempts to execute a function with exponential backoff.
// It gives up early when ctx is cancelled.
func retryWithBackoff(ctx context.Context, operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			select {
			case <-ctx.Done():
				return fmt.Errorf("%s cancelled after %d attempts: %w", operationName, i+1, ctx.Err())
			case <-time.After(delay):
			}
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

// connectRedis retries until Redis answers a ping. Clients from failed
// attempts are closed.
func connectRedis(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) (*database.RedisClient, error) {
	var client *database.RedisClient
	err := retryWithBackoff(ctx, func() error {
		c, err := database.NewRedis(cfg)
		if err != nil {
			return err
		}
		if err := c.Ping(ctx); err != nil {
			_ = c.Close()
			return err
		}
		client = c
		return nil
	}, 10, 2*time.Second, log, "Redis connection")
	if err != nil {
		return nil, err
	}
	return client, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service": cfg.App.Name,
		"version": cfg.App.Version,
	})

	zapLog.Info("Starting signup server...", zap.String("environment", cfg.App.Environment))

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Activity registry ---
	catalog, err := loadCatalog(cfg.Registry)
	if err != nil {
		zapLog.Fatal("catalog load failed", zap.Error(err))
	}
	reg, err := activities.FromCatalog(catalog, activities.WithCapacityEnforcement(cfg.Registry.EnforceCapacity))
	if err != nil {
		zapLog.Fatal("registry init failed", zap.Error(err))
	}
	for name, a := range reg.List() {
		metrics.ActivityParticipants.WithLabelValues(name).Set(float64(len(a.Participants)))
	}
	zapLog.Info("Activity registry loaded",
		zap.Int("activities", len(catalog.Activities)),
		zap.String("catalogVersion", catalog.Version),
		zap.Bool("enforceCapacity", reg.CapacityEnforced()),
	)

	// --- Redis (rate limiting) ---
	var redisClient *database.RedisClient
	var limiter ratelimit.Limiter = ratelimit.Unlimited{}
	if cfg.Redis.Enabled {
		redisClient, err = connectRedis(ctx, cfg.Redis, zapLog)
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redisClient.Close()
		zapLog.Info("Redis connected successfully")

		if cfg.RateLimit.Enabled {
			limiter = ratelimit.NewRedisLimiter(&ratelimit.Config{
				Limit:  cfg.RateLimit.RequestsPerWindow,
				Window: config.GetDuration(cfg.RateLimit.Window),
			}, redisClient.Client, log)
		}
	}

	// --- Notifications ---
	notifier, err := buildNotifier(ctx, cfg.Notifications)
	if err != nil {
		zapLog.Fatal("notifier init failed", zap.Error(err))
	}

	// --- Handlers ---
	var handlers server.Handlers

	if config.IsHandlerEnabled(cfg, la.TaskType) {
		handlers.ListActivities = la.NewHandler(la.LoadConfig(cfg), reg, obs, log)
	} else {
		zapLog.Info("handler disabled", zap.String("taskType", la.TaskType))
	}

	if config.IsHandlerEnabled(cfg, su.TaskType) {
		handlers.Signup = su.NewHandler(su.LoadConfig(cfg), reg, limiter, notifier, obs, log)
	} else {
		zapLog.Info("handler disabled", zap.String("taskType", su.TaskType))
	}

	if config.IsHandlerEnabled(cfg, ur.TaskType) {
		handlers.Unregister = ur.NewHandler(ur.LoadConfig(cfg), reg, limiter, notifier, obs, log)
	} else {
		zapLog.Info("handler disabled", zap.String("taskType", ur.TaskType))
	}

	ready := func(ctx context.Context) error {
		if redisClient == nil {
			return nil
		}
		return redisClient.Ping(ctx)
	}

	// --- Serve until SIGINT/SIGTERM ---
	srv := server.New(cfg.Server, handlers, ready, log)
	if err := srv.Run(ctx); err != nil {
		zapLog.Fatal("http server failed", zap.Error(err))
	}

	zapLog.Info("Signup server stopped gracefully")
}

func loadCatalog(cfg config.RegistryConfig) (*registry.ActivityCatalog, error) {
	if cfg.CatalogPath == "" {
		return registry.DefaultCatalog()
	}
	return registry.LoadCatalog(cfg.CatalogPath)
}

func buildNotifier(ctx context.Context, cfg config.NotificationConfig) (notify.Notifier, error) {
	var notifiers notify.Multi

	if cfg.Email.Enabled {
		client, err := awsclients.NewSESClient(ctx, cfg.AWS.Region)
		if err != nil {
			return nil, fmt.Errorf("ses client: %w", err)
		}
		notifiers = append(notifiers, notify.NewEmailNotifier(client, cfg.Email.FromEmail))
	}

	if cfg.Events.Enabled {
		client, err := awsclients.NewSNSClient(ctx, cfg.AWS.Region)
		if err != nil {
			return nil, fmt.Errorf("sns client: %w", err)
		}
		notifiers = append(notifiers, notify.NewEventPublisher(client, cfg.Events.TopicARN))
	}

	if len(notifiers) == 0 {
		return notify.Noop{}, nil
	}
	return notifiers, nil
}
