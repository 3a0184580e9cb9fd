// internal/followup/followup_test.go
package followup

import (
	"testing"
	"time"

	"applytrack/internal/models"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestDaysSince(t *testing.T) {
	tests := []struct {
		name     string
		from     time.Time
		now      time.Time
		expected int
	}{
		{"same day", date(2026, 1, 1), date(2026, 1, 1), 0},
		{"seven days", date(2026, 1, 1), date(2026, 1, 8), 7},
		{"eight days", date(2026, 1, 1), date(2026, 1, 9), 8},
		{"partial day floors down", date(2026, 1, 1), time.Date(2026, 1, 8, 23, 59, 0, 0, time.Local), 7},
		{"across month boundary", date(2026, 1, 20), date(2026, 2, 5), 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysSince(tt.from, tt.now))
		})
	}
}

func TestNeedsFollowUp(t *testing.T) {
	now := date(2026, 1, 9)

	tests := []struct {
		name     string
		app      models.Application
		expected bool
	}{
		{
			name:     "applied eight days ago",
			app:      models.Application{Status: models.StatusApplied, AppliedDate: datePtr(2026, 1, 1)},
			expected: true,
		},
		{
			name:     "applied exactly seven days ago is not yet stale",
			app:      models.Application{Status: models.StatusApplied, AppliedDate: datePtr(2026, 1, 2)},
			expected: false,
		},
		{
			name:     "missing applied date never qualifies",
			app:      models.Application{Status: models.StatusApplied},
			expected: false,
		},
		{
			name:     "interview status is excluded regardless of age",
			app:      models.Application{Status: models.StatusInterview, AppliedDate: datePtr(2025, 11, 1)},
			expected: false,
		},
		{
			name:     "rejected status is excluded",
			app:      models.Application{Status: models.StatusRejected, AppliedDate: datePtr(2025, 11, 1)},
			expected: false,
		},
		{
			name:     "offer status is excluded",
			app:      models.Application{Status: models.StatusOffer, AppliedDate: datePtr(2025, 11, 1)},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NeedsFollowUp(tt.app, now))
		})
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	now := date(2026, 2, 20)
	stale1 := models.Application{ID: "a", CompanyName: "Google", Status: models.StatusApplied, AppliedDate: datePtr(2026, 2, 1)}
	fresh := models.Application{ID: "b", CompanyName: "Flipkart", Status: models.StatusApplied, AppliedDate: datePtr(2026, 2, 18)}
	stale2 := models.Application{ID: "c", CompanyName: "TCS", Status: models.StatusApplied, AppliedDate: datePtr(2026, 1, 15)}
	rejected := models.Application{ID: "d", Status: models.StatusRejected, AppliedDate: datePtr(2026, 1, 1)}

	got := Filter([]models.Application{stale1, fresh, stale2, rejected}, now)

	assert.Equal(t, []models.Application{stale1, stale2}, got)
}

func TestFilter_Empty(t *testing.T) {
	assert.Empty(t, Filter(nil, time.Now()))
}
