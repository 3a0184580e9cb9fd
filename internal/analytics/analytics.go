// internal/analytics/analytics.go

// Package analytics computes summary counts and rates over a collection of
// applications. Everything is recomputed from the full collection on each
// call; there is no caching.
package analytics

import "applytrack/internal/models"

// Summary holds the aggregate view of a collection of applications at the
// moment of computation. Rates are unrounded fractions; presentation layers
// scale and round as they see fit.
type Summary struct {
	Total         int                   `json:"total"`
	CountByStatus map[models.Status]int `json:"countByStatus"`
	SuccessRate   float64               `json:"successRate"`
	InterviewRate float64               `json:"interviewRate"`
	RejectionRate float64               `json:"rejectionRate"`
}

// Summarize computes counts per status and the derived rates. CountByStatus
// always carries all four statuses, defaulting to 0. Rates are 0 when the
// collection is empty.
func Summarize(apps []models.Application) Summary {
	counts := make(map[models.Status]int, len(models.AllStatuses))
	for _, s := range models.AllStatuses {
		counts[s] = 0
	}
	for _, app := range apps {
		counts[app.Status]++
	}

	s := Summary{
		Total:         len(apps),
		CountByStatus: counts,
	}
	if s.Total > 0 {
		total := float64(s.Total)
		s.SuccessRate = float64(counts[models.StatusOffer]) / total
		s.InterviewRate = float64(counts[models.StatusInterview]) / total
		s.RejectionRate = float64(counts[models.StatusRejected]) / total
	}
	return s
}

// Recent returns the first n applications in caller-supplied order. The
// caller is responsible for sorting (typically newest first, as the store
// lists them).
func Recent(apps []models.Application, n int) []models.Application {
	if n < 0 {
		n = 0
	}
	if n > len(apps) {
		n = len(apps)
	}
	out := make([]models.Application, n)
	copy(out, apps[:n])
	return out
}
