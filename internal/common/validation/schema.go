package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ParamSchema describes the query parameters an endpoint accepts.
type ParamSchema struct {
	Properties map[string]Property
	Required   []string
}

type Property struct {
	Description string
	MinLength   *int
	MaxLength   *int
	Pattern     *regexp.Regexp
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// IntPtr is a convenience for building Property limits.
func IntPtr(v int) *int {
	return &v
}

// ValidateParams checks query parameters against schema. Values are trimmed
// before the checks, and a blank value counts as missing.
func ValidateParams(params url.Values, schema ParamSchema) *ValidationResult {
	errors := []ValidationError{}

	for _, requiredField := range schema.Required {
		if strings.TrimSpace(params.Get(requiredField)) == "" {
			errors = append(errors, ValidationError{
				Field:   requiredField,
				Message: "required field missing",
				Code:    "REQUIRED_FIELD_MISSING",
			})
		}
	}

	for fieldName, prop := range schema.Properties {
		value := strings.TrimSpace(params.Get(fieldName))
		if value == "" {
			continue
		}
		errors = append(errors, validateField(fieldName, value, prop)...)
	}

	return &ValidationResult{
		Valid:  len(errors) == 0,
		Errors: errors,
	}
}

func validateField(fieldName, value string, prop Property) []ValidationError {
	errors := []ValidationError{}
	length := utf8.RuneCountInString(value)

	if prop.MinLength != nil && length < *prop.MinLength {
		errors = append(errors, ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("value must be at least %d characters", *prop.MinLength),
			Code:    "MIN_LENGTH_VIOLATION",
		})
	}
	if prop.MaxLength != nil && length > *prop.MaxLength {
		errors = append(errors, ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("value must be at most %d characters", *prop.MaxLength),
			Code:    "MAX_LENGTH_VIOLATION",
		})
	}
	if prop.Pattern != nil && !prop.Pattern.MatchString(value) {
		errors = append(errors, ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("value must match pattern %s", prop.Pattern.String()),
			Code:    "PATTERN_MISMATCH",
		})
	}

	return errors
}

func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Summary joins every message into one caller-facing line.
func (vr *ValidationResult) Summary() string {
	return strings.Join(vr.GetErrorMessages(), "; ")
}
