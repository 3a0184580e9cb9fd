// internal/reminder/reminder.go

// Package reminder decides whether and when to notify about an upcoming
// interview, and owns the cancellable schedule handles for armed reminders.
package reminder

import (
	"fmt"
	"time"
)

// Subject is the notification title used for every interview reminder.
const Subject = "Interview Reminder"

// Reminder is a declarative one-shot schedule request: fire Message at
// FireAt. It carries no timer state of its own.
type Reminder struct {
	FireAt  time.Time `json:"fireAt"`
	Message string    `json:"message"`
}

// Compute returns the reminder for an interview date, or false when no
// reminder should be scheduled: the date is absent, or its start of day is
// not strictly after now (no past-due reminders). The comparison uses the
// full timestamp of now, not calendar days, so an interview today never
// schedules.
func Compute(companyName string, interviewDate *time.Time, now time.Time) (Reminder, bool) {
	if interviewDate == nil {
		return Reminder{}, false
	}

	d := *interviewDate
	fireAt := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	if !fireAt.After(now) {
		return Reminder{}, false
	}

	return Reminder{
		FireAt:  fireAt,
		Message: fmt.Sprintf("You have an interview with %s today! Good luck!", companyName),
	}, true
}
