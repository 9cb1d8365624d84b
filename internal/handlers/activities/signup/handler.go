// internal/handlers/activities/signup/handler.go
package signup

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"activity-signup/internal/activities"
	apperrors "activity-signup/internal/common/errors"
	"activity-signup/internal/common/logger"
	"activity-signup/internal/common/metrics"
	"activity-signup/internal/common/observability"
	"activity-signup/internal/common/validation"
	"activity-signup/internal/notify"
	"activity-signup/internal/ratelimit"
)

const (
	TaskType = "signup"
)

type Registry interface {
	Get(name string) (activities.Activity, error)
	Enroll(name, email string) (activities.Activity, error)
}

type Handler struct {
	config   *Config
	registry Registry
	limiter  ratelimit.Limiter
	notifier notify.Notifier
	obs      *observability.Observability
	errors   *apperrors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, registry Registry, limiter ratelimit.Limiter, notifier notify.Notifier, obs *observability.Observability, log logger.Logger) *Handler {
	if limiter == nil {
		limiter = ratelimit.Unlimited{}
	}
	if notifier == nil {
		notifier = notify.Noop{}
	}
	if obs == nil {
		obs = observability.NewNoop()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		registry: registry,
		limiter:  limiter,
		notifier: notifier,
		obs:      obs,
		errors:   apperrors.NewErrorHandler(log),
		logger:   log,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), h.config.Timeout)
	defer cancel()

	input, err := parseInput(r)
	if err == nil {
		var output *Output
		output, err = h.execute(ctx, input)
		if err == nil {
			h.record(ctx, start, "success")
			apperrors.WriteJSON(w, http.StatusOK, output)
			return
		}
	}

	stdErr := h.errors.HandleError(w, r, err)
	h.record(ctx, start, strings.ToLower(string(stdErr.Code)))
}

func parseInput(r *http.Request) (*Input, error) {
	query := r.URL.Query()
	if result := validation.ValidateParams(query, inputSchema); !result.Valid {
		return nil, apperrors.NewValidationError(result.Summary())
	}
	return &Input{
		ActivityName: r.PathValue("name"),
		Email:        strings.TrimSpace(query.Get("email")),
	}, nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	// unknown activities are rejected before they count against the limit
	if _, err := h.registry.Get(input.ActivityName); err != nil {
		metrics.RosterOperations.WithLabelValues("unknown", TaskType, strings.ToLower(string(apperrors.CodeOf(err)))).Inc()
		return nil, err
	}

	if err := h.limiter.Allow(ctx, TaskType, input.Email); err != nil {
		metrics.RateLimitRejections.WithLabelValues(TaskType).Inc()
		return nil, err
	}

	updated, err := h.registry.Enroll(input.ActivityName, input.Email)
	if err != nil {
		metrics.RosterOperations.WithLabelValues(input.ActivityName, TaskType, strings.ToLower(string(apperrors.CodeOf(err)))).Inc()
		return nil, err
	}

	metrics.RosterOperations.WithLabelValues(input.ActivityName, TaskType, metrics.OutcomeSuccess).Inc()
	metrics.ActivityParticipants.WithLabelValues(input.ActivityName).Set(float64(len(updated.Participants)))

	h.logger.Info("participant signed up", map[string]interface{}{
		"activity":     input.ActivityName,
		"email":        input.Email,
		"participants": len(updated.Participants),
	})

	h.notify(ctx, notify.NewEvent(notify.EventEnrolled, input.ActivityName, updated.Schedule, input.Email))

	return &Output{
		Message: fmt.Sprintf("Signed up %s for %s", input.Email, input.ActivityName),
	}, nil
}

// notify runs after the roster changed; a failure is logged and never undoes the signup.
func (h *Handler) notify(ctx context.Context, event notify.Event) {
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.config.NotifyTimeout)
	defer cancel()

	if err := h.notifier.Notify(nctx, event); err != nil {
		metrics.NotificationsFailed.WithLabelValues(TaskType).Inc()
		h.logger.Error("failed to send roster notification", map[string]interface{}{
			"eventId":  event.ID,
			"activity": event.Activity,
			"error":    err.Error(),
		})
	}
}

func (h *Handler) record(ctx context.Context, start time.Time, status string) {
	h.obs.RecordOperation(ctx, TaskType, status)
	h.obs.RecordDuration(ctx, TaskType, time.Since(start), status)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
