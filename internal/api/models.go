// internal/api/models.go
package api

import (
	"time"

	"applytrack/internal/models"
	"applytrack/internal/workflow"
)

// ErrorResponse is the JSON body returned on any request failure.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthResponse reports service liveness and dependency checks.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Uptime    string            `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// TransitionRequest asks to move an application to another status.
type TransitionRequest struct {
	NextStatus models.Status `json:"nextStatus"`
}

// TransitionsResponse lists the quick actions available from the
// application's current status.
type TransitionsResponse struct {
	ApplicationID string                `json:"applicationId"`
	Status        models.Status         `json:"status"`
	Transitions   []workflow.Transition `json:"transitions"`
}
