// Package errors provides standardized error handling for the signup API.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeActivityNotFound ErrorCode = "ACTIVITY_NOT_FOUND"
	ErrCodeAlreadySignedUp  ErrorCode = "ALREADY_SIGNED_UP"
	ErrCodeNotSignedUp      ErrorCode = "NOT_SIGNED_UP"
	ErrCodeActivityFull     ErrorCode = "ACTIVITY_FULL"

	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeRateLimited      ErrorCode = "RATE_LIMITED"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// ErrorKind groups codes the way callers react to them.
type ErrorKind string

const (
	KindNotFound       ErrorKind = "NotFound"
	KindInvalidRequest ErrorKind = "InvalidRequest"
	KindThrottled      ErrorKind = "Throttled"
	KindInternal       ErrorKind = "Internal"
)

// StandardError is the error type returned by every layer that reports to API callers.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Is matches another *StandardError by code, so errors.Is works against the
// sentinel values below.
func (e *StandardError) Is(target error) bool {
	var other *StandardError
	if !stderrors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// Sentinels for errors.Is checks.
var (
	ErrActivityNotFound = &StandardError{Code: ErrCodeActivityNotFound}
	ErrAlreadySignedUp  = &StandardError{Code: ErrCodeAlreadySignedUp}
	ErrNotSignedUp      = &StandardError{Code: ErrCodeNotSignedUp}
	ErrActivityFull     = &StandardError{Code: ErrCodeActivityFull}
	ErrRateLimited      = &StandardError{Code: ErrCodeRateLimited}
)

// ==========================
// 2. Constructors
// ==========================

func NewActivityNotFoundError(activity string) *StandardError {
	return &StandardError{
		Code:      ErrCodeActivityNotFound,
		Message:   "Activity not found",
		Details:   fmt.Sprintf("activity: %s", activity),
		Timestamp: time.Now().UTC(),
	}
}

func NewAlreadySignedUpError(activity, email string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAlreadySignedUp,
		Message:   "Student is already signed up for this activity",
		Details:   fmt.Sprintf("activity: %s, email: %s", activity, email),
		Timestamp: time.Now().UTC(),
	}
}

func NewNotSignedUpError(activity, email string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotSignedUp,
		Message:   "Student is not signed up for this activity",
		Details:   fmt.Sprintf("activity: %s, email: %s", activity, email),
		Timestamp: time.Now().UTC(),
	}
}

func NewActivityFullError(activity string, capacity int) *StandardError {
	return &StandardError{
		Code:      ErrCodeActivityFull,
		Message:   "Activity is full",
		Details:   fmt.Sprintf("activity: %s, max_participants: %d", activity, capacity),
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationError reports request input problems; message is shown to the caller.
func NewValidationError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

func NewRateLimitedError(key string, retryAfter time.Duration) *StandardError {
	return &StandardError{
		Code:    ErrCodeRateLimited,
		Message: "Too many requests",
		Details: fmt.Sprintf("key: %s", key),
		Metadata: map[string]interface{}{
			"retryAfterSeconds": int(retryAfter.Seconds()),
		},
		Timestamp: time.Now().UTC(),
	}
}

func NewInternalError(err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Internal server error",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Classification
// ==========================

var httpStatusMapping = map[ErrorCode]int{
	ErrCodeActivityNotFound: http.StatusNotFound,
	ErrCodeAlreadySignedUp:  http.StatusBadRequest,
	ErrCodeNotSignedUp:      http.StatusBadRequest,
	ErrCodeActivityFull:     http.StatusBadRequest,
	ErrCodeValidationFailed: http.StatusUnprocessableEntity,
	ErrCodeRateLimited:      http.StatusTooManyRequests,
	ErrCodeInternal:         http.StatusInternalServerError,
}

// HTTPStatus returns the response status for a code.
func HTTPStatus(code ErrorCode) int {
	if status, ok := httpStatusMapping[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Kind returns the caller-facing category of a code.
func Kind(code ErrorCode) ErrorKind {
	switch code {
	case ErrCodeActivityNotFound:
		return KindNotFound
	case ErrCodeAlreadySignedUp,
		ErrCodeNotSignedUp,
		ErrCodeActivityFull,
		ErrCodeValidationFailed:
		return KindInvalidRequest
	case ErrCodeRateLimited:
		return KindThrottled
	default:
		return KindInternal
	}
}

// GetErrorCategory is a coarse label used for metrics.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "ACTIVITY"):
		return "ACTIVITY"
	case strings.Contains(codeStr, "SIGNED_UP"):
		return "ROSTER"
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "RATE"):
		return "THROTTLING"
	default:
		return "OTHER"
	}
}

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// CodeOf returns the code of err, or ErrCodeInternal for foreign errors.
func CodeOf(err error) ErrorCode {
	return Normalize(err).Code
}
