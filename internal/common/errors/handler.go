// internal/common/errors/handler.go
package errors

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// ErrorHandler renders errors as JSON API responses.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleError writes err to w and returns the normalized error for metrics.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) *StandardError {
	stdErr := Normalize(err)
	status := HTTPStatus(stdErr.Code)

	h.logError(r, stdErr, status)

	if stdErr.Code == ErrCodeRateLimited {
		if secs, ok := stdErr.Metadata["retryAfterSeconds"].(int); ok && secs > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(secs))
		}
	}

	message := stdErr.Message
	if status == http.StatusInternalServerError {
		// internal details stay in the log
		message = "Internal server error"
	}
	WriteJSON(w, status, ErrorResponse{Detail: message})
	return stdErr
}

// WriteJSON encodes body with the given status.
func WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (h *ErrorHandler) logError(r *http.Request, stdErr *StandardError, status int) {
	if h.logger == nil {
		return
	}
	fields := map[string]interface{}{
		"errorCode":     string(stdErr.Code),
		"errorKind":     string(Kind(stdErr.Code)),
		"errorCategory": GetErrorCategory(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"status":        status,
	}
	if r != nil {
		fields["method"] = r.Method
		fields["path"] = r.URL.Path
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", fields)
		return
	}
	h.logger.Warn("request rejected", fields)
}
