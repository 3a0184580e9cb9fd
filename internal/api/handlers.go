// internal/api/handlers.go
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"applytrack/internal/analytics"
	stderrors "applytrack/internal/common/errors"
	"applytrack/internal/common/logger"
	"applytrack/internal/common/metrics"
	"applytrack/internal/common/validation"
	"applytrack/internal/followup"
	"applytrack/internal/models"
	"applytrack/internal/reminder"
	"applytrack/internal/search"
	"applytrack/internal/workflow"
)

var startTime = time.Now()

// defaultRecentCount is used when /api/applications/recent is called
// without an explicit count.
const defaultRecentCount = 5

// Store is the persistence surface the handlers depend on.
type Store interface {
	List(ctx context.Context) ([]models.Application, error)
	Get(ctx context.Context, id string) (*models.Application, error)
	Create(ctx context.Context, input models.CreateInput) (*models.Application, error)
	Update(ctx context.Context, id string, input models.UpdateInput) (*models.Application, error)
	Delete(ctx context.Context, id string) error
}

// ReminderScheduler is the slice of the reminder scheduler the handlers use.
type ReminderScheduler interface {
	Schedule(appID string, r reminder.Reminder)
	Cancel(appID string)
}

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

var createApplicationSchema = validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"companyName":   {Type: "string"},
		"jobRole":       {Type: "string"},
		"salaryRange":   {Type: "string", Enum: models.SalaryRanges},
		"status":        {Type: "string", Enum: statusStrings()},
		"appliedDate":   {Type: "string"},
		"interviewDate": {Type: "string"},
		"contactPerson": {Type: "string"},
		"contactPhone":  {Type: "string"},
		"contactEmail":  {Type: "string"},
		"notes":         {Type: "string"},
	},
	Required: []string{"companyName", "jobRole"},
}

func statusStrings() []string {
	out := make([]string, len(models.AllStatuses))
	for i, s := range models.AllStatuses {
		out[i] = string(s)
	}
	return out
}

// ListApplicationsHandler returns every application, newest first. With a
// ?q= parameter it narrows the list to applications whose company name or
// job role matches; if the search index is unavailable it falls back to an
// in-memory substring match over the same fields.
func ListApplicationsHandler(store Store, searcher search.Searcher, log logger.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		apps, err := store.List(ctx)
		if err != nil {
			return writeError(c, log, "list", err)
		}

		query := strings.TrimSpace(c.QueryParam("q"))
		if query == "" {
			metrics.ApplicationOps.WithLabelValues("list").Inc()
			return c.JSON(http.StatusOK, apps)
		}

		ids, err := searcher.Search(ctx, query)
		if err != nil {
			log.WithError(err).Warn("Search index unavailable, using in-memory match", map[string]interface{}{
				"query": query,
			})
			filtered := []models.Application{}
			for _, app := range apps {
				if search.Match(app, query) {
					filtered = append(filtered, app)
				}
			}
			return c.JSON(http.StatusOK, filtered)
		}

		byID := make(map[string]models.Application, len(apps))
		for _, app := range apps {
			byID[app.ID] = app
		}
		matched := []models.Application{}
		for _, id := range ids {
			if app, ok := byID[id]; ok {
				matched = append(matched, app)
			}
		}
		return c.JSON(http.StatusOK, matched)
	}
}

// GetApplicationHandler returns one application by id.
func GetApplicationHandler(store Store, log logger.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		app, err := store.Get(c.Request().Context(), c.Param("id"))
		if err != nil {
			return writeError(c, log, "get", err)
		}
		return c.JSON(http.StatusOK, app)
	}
}

// CreateApplicationHandler validates and persists a new application. A
// future interview date arms a reminder; the document is mirrored into the
// search index best-effort.
func CreateApplicationHandler(store Store, searcher search.Searcher, sched ReminderScheduler, log logger.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return badRequest(c, "invalid_request", "could not read request body")
		}

		var raw map[string]interface{}
		if err := json.Unmarshal(body, &raw); err != nil {
			return badRequest(c, "invalid_request", "request body is not valid JSON")
		}
		if result := validation.ValidateInput(raw, createApplicationSchema); !result.Valid {
			details, _ := json.Marshal(result.Errors)
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:     "validation_failed",
				Message:   "application payload failed validation",
				Details:   string(details),
				Timestamp: time.Now().UTC(),
			})
		}

		var input models.CreateInput
		if err := json.Unmarshal(body, &input); err != nil {
			return badRequest(c, "invalid_request", "dates must be RFC 3339 timestamps")
		}

		app, err := store.Create(ctx, input)
		if err != nil {
			return writeError(c, log, "create", err)
		}
		metrics.ApplicationOps.WithLabelValues("create").Inc()

		if r, ok := reminder.Compute(app.CompanyName, app.InterviewDate, time.Now()); ok {
			sched.Schedule(app.ID, r)
		}
		if err := searcher.Index(ctx, *app); err != nil {
			log.WithError(err).Warn("Search index update failed", map[string]interface{}{
				"application_id": app.ID,
			})
		}

		log.Info("Application created", map[string]interface{}{
			"application_id": app.ID,
			"company":        app.CompanyName,
		})
		return c.JSON(http.StatusCreated, app)
	}
}

// UpdateApplicationHandler applies a partial update. Touching the interview
// date re-arms or cancels the reminder for the application.
func UpdateApplicationHandler(store Store, searcher search.Searcher, sched ReminderScheduler, log logger.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		id := c.Param("id")

		var input models.UpdateInput
		if err := c.Bind(&input); err != nil {
			return badRequest(c, "invalid_request", "request body is not a valid partial update")
		}
		if input.Empty() {
			return badRequest(c, "empty_update", "update carries no fields")
		}

		app, err := store.Update(ctx, id, input)
		if err != nil {
			return writeError(c, log, "update", err)
		}
		metrics.ApplicationOps.WithLabelValues("update").Inc()

		if input.InterviewDate != nil {
			if r, ok := reminder.Compute(app.CompanyName, app.InterviewDate, time.Now()); ok {
				sched.Schedule(app.ID, r)
			} else {
				sched.Cancel(app.ID)
			}
		}
		if err := searcher.Index(ctx, *app); err != nil {
			log.WithError(err).Warn("Search index update failed", map[string]interface{}{
				"application_id": app.ID,
			})
		}

		return c.JSON(http.StatusOK, app)
	}
}

// DeleteApplicationHandler removes an application, its pending reminder and
// its search document. Deleting an unknown id still succeeds.
func DeleteApplicationHandler(store Store, searcher search.Searcher, sched ReminderScheduler, log logger.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		id := c.Param("id")

		if err := store.Delete(ctx, id); err != nil {
			return writeError(c, log, "delete", err)
		}
		metrics.ApplicationOps.WithLabelValues("delete").Inc()

		sched.Cancel(id)
		if err := searcher.Remove(ctx, id); err != nil {
			log.WithError(err).Warn("Search index removal failed", map[string]interface{}{
				"application_id": id,
			})
		}

		return c.NoContent(http.StatusNoContent)
	}
}

// TransitionsHandler lists the quick actions available from the
// application's current status.
func TransitionsHandler(store Store, log logger.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		app, err := store.Get(c.Request().Context(), c.Param("id"))
		if err != nil {
			return writeError(c, log, "transitions", err)
		}

		ts := workflow.SuggestedTransitions(app.Status)
		if ts == nil {
			ts = []workflow.Transition{}
		}
		return c.JSON(http.StatusOK, TransitionsResponse{
			ApplicationID: app.ID,
			Status:        app.Status,
			Transitions:   ts,
		})
	}
}

// ApplyTransitionHandler moves an application to the requested status. Any
// valid status is accepted; the suggestion table does not gate the move.
func ApplyTransitionHandler(store Store, log logger.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		id := c.Param("id")

		var req TransitionRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid_request", "request body is not a valid transition")
		}
		if !req.NextStatus.Valid() {
			return writeError(c, log, "transition", stderrors.NewInvalidStatusError(string(req.NextStatus)))
		}

		app, err := store.Get(ctx, id)
		if err != nil {
			return writeError(c, log, "transition", err)
		}

		next := workflow.ApplyTransition(*app, req.NextStatus)
		updated, err := store.Update(ctx, id, models.UpdateInput{Status: &next.Status})
		if err != nil {
			return writeError(c, log, "transition", err)
		}
		metrics.ApplicationOps.WithLabelValues("transition").Inc()

		log.Info("Status transition applied", map[string]interface{}{
			"application_id": id,
			"from":           app.Status,
			"to":             updated.Status,
		})
		return c.JSON(http.StatusOK, updated)
	}
}

// AnalyticsSummaryHandler returns pipeline counts and conversion rates.
func AnalyticsSummaryHandler(store Store, log logger.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		apps, err := store.List(c.Request().Context())
		if err != nil {
			return writeError(c, log, "analytics", err)
		}
		return c.JSON(http.StatusOK, analytics.Summarize(apps))
	}
}

// FollowUpsHandler returns the applications overdue for a follow-up nudge.
func FollowUpsHandler(store Store, log logger.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		apps, err := store.List(c.Request().Context())
		if err != nil {
			return writeError(c, log, "followups", err)
		}

		due := followup.Filter(apps, time.Now())
		metrics.FollowUpsFlagged.Set(float64(len(due)))
		return c.JSON(http.StatusOK, due)
	}
}

// RecentApplicationsHandler returns the n most recent applications.
func RecentApplicationsHandler(store Store, log logger.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		n := defaultRecentCount
		if raw := c.QueryParam("n"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				return badRequest(c, "invalid_request", "n must be a non-negative integer")
			}
			n = parsed
		}

		apps, err := store.List(c.Request().Context())
		if err != nil {
			return writeError(c, log, "recent", err)
		}
		return c.JSON(http.StatusOK, analytics.Recent(apps, n))
	}
}

// HealthHandler reports liveness plus a database reachability check.
func HealthHandler(db Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		checks := map[string]string{"api": "ok"}
		status := "healthy"
		code := http.StatusOK

		if db != nil {
			if err := db.Ping(c.Request().Context()); err != nil {
				checks["database"] = "unreachable"
				status = "degraded"
				code = http.StatusServiceUnavailable
			} else {
				checks["database"] = "ok"
			}
		}

		return c.JSON(code, HealthResponse{
			Status:    status,
			Timestamp: time.Now().UTC(),
			Uptime:    time.Since(startTime).String(),
			Checks:    checks,
		})
	}
}

func badRequest(c echo.Context, code, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

// writeError maps a StandardError to its HTTP status. Unknown errors are
// reported as internal.
func writeError(c echo.Context, log logger.Logger, op string, err error) error {
	status := http.StatusInternalServerError
	code := "internal_error"
	details := ""

	if stdErr, ok := err.(*stderrors.StandardError); ok {
		details = stdErr.Details
		metrics.ApplicationOpErrors.WithLabelValues(op, string(stdErr.Code)).Inc()

		switch stdErr.Code {
		case stderrors.ErrCodeApplicationNotFound:
			status = http.StatusNotFound
			code = "not_found"
		case stderrors.ErrCodeApplicationValidationFailed, stderrors.ErrCodeInvalidStatus:
			status = http.StatusBadRequest
			code = "validation_failed"
		default:
			code = strings.ToLower(string(stdErr.Code))
		}
	}

	if status >= http.StatusInternalServerError {
		log.WithError(err).Error("Request failed", map[string]interface{}{"operation": op})
	}

	return c.JSON(status, ErrorResponse{
		Error:     code,
		Message:   err.Error(),
		Details:   details,
		Timestamp: time.Now().UTC(),
	})
}
