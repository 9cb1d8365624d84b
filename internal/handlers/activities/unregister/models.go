// internal/handlers/activities/unregister/models.go
package unregister

import "activity-signup/internal/common/validation"

type Input struct {
	ActivityName string `json:"activityName"`
	Email        string `json:"email"`
}

type Output struct {
	Message string `json:"message"`
}

var inputSchema = validation.ParamSchema{
	Properties: map[string]validation.Property{
		"email": {
			Description: "participant email",
			MaxLength:   validation.IntPtr(254),
		},
	},
	Required: []string{"email"},
}
