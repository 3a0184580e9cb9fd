// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ApplicationOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_application_ops_total",
			Help: "Total number of application store operations",
		},
		[]string{"operation"},
	)

	ApplicationOpErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_application_op_errors_total",
			Help: "Total number of failed application store operations",
		},
		[]string{"operation", "error_code"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "tracker_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"route"},
	)

	RemindersScheduled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_reminders_scheduled_total",
			Help: "Total number of interview reminders armed",
		},
	)

	RemindersCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_reminders_cancelled_total",
			Help: "Total number of interview reminders cancelled before firing",
		},
	)

	RemindersFired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_reminders_fired_total",
			Help: "Total number of interview reminders delivered",
		},
	)

	RemindersActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tracker_reminders_active",
			Help: "Number of currently armed interview reminders",
		},
	)

	FollowUpsFlagged = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tracker_followups_flagged",
			Help: "Number of applications flagged for follow-up at last scan",
		},
	)
)
