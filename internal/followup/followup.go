// internal/followup/followup.go

// Package followup flags Applied-state applications that have gone
// unanswered long enough to warrant a follow-up.
package followup

import (
	"math"
	"time"

	"applytrack/internal/models"
)

// Threshold is the number of days after which an Applied application with
// no response is considered stale. Fixed policy, not user-configurable.
const Threshold = 7

// DaysSince returns the number of whole days elapsed from date to now,
// as local calendar instants (floor of the difference).
func DaysSince(date, now time.Time) int {
	return int(math.Floor(now.Sub(date).Hours() / 24))
}

// NeedsFollowUp reports whether the application is Applied, has an applied
// date, and that date is more than Threshold days old. Applications without
// an applied date never qualify.
func NeedsFollowUp(app models.Application, now time.Time) bool {
	if app.Status != models.StatusApplied || app.AppliedDate == nil {
		return false
	}
	return DaysSince(*app.AppliedDate, now) > Threshold
}

// Filter returns the applications needing follow-up, preserving input order.
func Filter(apps []models.Application, now time.Time) []models.Application {
	out := make([]models.Application, 0)
	for _, app := range apps {
		if NeedsFollowUp(app, now) {
			out = append(out, app)
		}
	}
	return out
}
