// internal/workflow/workflow.go

// Package workflow encodes the status state machine for job applications
// and the quick-action transitions suggested for each stage.
package workflow

import "applytrack/internal/models"

// Transition is one suggested forward move from a status, with the label
// shown on the quick-action affordance.
type Transition struct {
	Label string        `json:"label"`
	Next  models.Status `json:"nextStatus"`
}

// transitions is the full table. Offer carries an acknowledgement-only
// self-transition; Rejected can re-enter the pipeline.
var transitions = map[models.Status][]Transition{
	models.StatusApplied: {
		{Label: "Got Interview Call", Next: models.StatusInterview},
		{Label: "Got Rejected", Next: models.StatusRejected},
	},
	models.StatusInterview: {
		{Label: "Got Offer", Next: models.StatusOffer},
		{Label: "Got Rejected", Next: models.StatusRejected},
	},
	models.StatusOffer: {
		{Label: "Accepted Offer", Next: models.StatusOffer},
	},
	models.StatusRejected: {
		{Label: "Re-Applied", Next: models.StatusApplied},
	},
}

// SuggestedTransitions returns the ordered quick actions for the given
// status. An unknown status yields an empty slice.
func SuggestedTransitions(s models.Status) []Transition {
	ts, ok := transitions[s]
	if !ok {
		return nil
	}
	out := make([]Transition, len(ts))
	copy(out, ts)
	return out
}

// Allowed reports whether from→to appears in the suggestion table. It is
// advisory only: ApplyTransition never consults it.
func Allowed(from, to models.Status) bool {
	for _, t := range transitions[from] {
		if t.Next == to {
			return true
		}
	}
	return false
}

// ApplyTransition sets the application's status unconditionally and returns
// the updated copy. The table governs UI affordances, not legality; any
// status may be overwritten with any other.
func ApplyTransition(app models.Application, next models.Status) models.Application {
	app.Status = next
	return app
}
