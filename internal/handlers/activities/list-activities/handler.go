// internal/handlers/activities/list-activities/handler.go
package listactivities

import (
	"context"
	"net/http"
	"strings"
	"time"

	"activity-signup/internal/activities"
	apperrors "activity-signup/internal/common/errors"
	"activity-signup/internal/common/logger"
	"activity-signup/internal/common/observability"
)

const (
	TaskType = "list-activities"
)

type Registry interface {
	List() map[string]activities.Activity
}

type Handler struct {
	config   *Config
	registry Registry
	obs      *observability.Observability
	errors   *apperrors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, registry Registry, obs *observability.Observability, log logger.Logger) *Handler {
	if obs == nil {
		obs = observability.NewNoop()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		registry: registry,
		obs:      obs,
		errors:   apperrors.NewErrorHandler(log),
		logger:   log,
	}
}

// ServeHTTP writes every activity keyed by name. The body is a snapshot, so
// concurrent signups never show up half applied.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), h.config.Timeout)
	defer cancel()

	snapshot, err := h.Execute(ctx)
	if err != nil {
		stdErr := h.errors.HandleError(w, r, apperrors.NewInternalError(err))
		h.record(ctx, start, strings.ToLower(string(stdErr.Code)))
		return
	}
	apperrors.WriteJSON(w, http.StatusOK, snapshot)

	h.logger.Debug("listed activities", map[string]interface{}{
		"count": len(snapshot),
	})
	h.record(ctx, start, "success")
}

// Execute returns the snapshot unless ctx has already expired.
func (h *Handler) Execute(ctx context.Context) (map[string]activities.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return h.registry.List(), nil
}

func (h *Handler) record(ctx context.Context, start time.Time, status string) {
	h.obs.RecordOperation(ctx, TaskType, status)
	h.obs.RecordDuration(ctx, TaskType, time.Since(start), status)
}
