// internal/models/application.go
package models

import "time"

// Status is the lifecycle stage of a job application.
type Status string

const (
	StatusApplied   Status = "Applied"
	StatusInterview Status = "Interview"
	StatusOffer     Status = "Offer"
	StatusRejected  Status = "Rejected"
)

// AllStatuses lists every valid status in board order.
var AllStatuses = []Status{StatusApplied, StatusInterview, StatusOffer, StatusRejected}

// Valid reports whether s is one of the four lifecycle statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusApplied, StatusInterview, StatusOffer, StatusRejected:
		return true
	}
	return false
}

// SalaryRanges is the closed set of salary bucket labels accepted on an
// application. An empty string is also accepted (bucket not chosen).
var SalaryRanges = []string{
	"0 - 2 LPA (Fresher)",
	"2 - 3 LPA",
	"3 - 5 LPA",
	"5 - 8 LPA",
	"8 - 12 LPA",
	"12 - 15 LPA",
	"15 - 20 LPA",
	"20+ LPA",
	"Not Disclosed",
}

// ValidSalaryRange reports whether v is empty or one of the bucket labels.
func ValidSalaryRange(v string) bool {
	if v == "" {
		return true
	}
	for _, r := range SalaryRanges {
		if v == r {
			return true
		}
	}
	return false
}

// Application is one tracked job application.
type Application struct {
	ID            string     `json:"id"`
	CompanyName   string     `json:"companyName"`
	JobRole       string     `json:"jobRole"`
	SalaryRange   string     `json:"salaryRange,omitempty"`
	Status        Status     `json:"status"`
	AppliedDate   *time.Time `json:"appliedDate,omitempty"`
	InterviewDate *time.Time `json:"interviewDate,omitempty"`
	ContactPerson string     `json:"contactPerson,omitempty"`
	ContactPhone  string     `json:"contactPhone,omitempty"`
	ContactEmail  string     `json:"contactEmail,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// CreateInput carries the caller-supplied fields for a new application.
// ID and CreatedAt are assigned by the store; Status defaults to Applied
// when left empty.
type CreateInput struct {
	CompanyName   string     `json:"companyName"`
	JobRole       string     `json:"jobRole"`
	SalaryRange   string     `json:"salaryRange,omitempty"`
	Status        Status     `json:"status,omitempty"`
	AppliedDate   *time.Time `json:"appliedDate,omitempty"`
	InterviewDate *time.Time `json:"interviewDate,omitempty"`
	ContactPerson string     `json:"contactPerson,omitempty"`
	ContactPhone  string     `json:"contactPhone,omitempty"`
	ContactEmail  string     `json:"contactEmail,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

// UpdateInput is a partial update. A nil field is left unchanged; omission
// never clears existing data.
type UpdateInput struct {
	CompanyName   *string    `json:"companyName,omitempty"`
	JobRole       *string    `json:"jobRole,omitempty"`
	SalaryRange   *string    `json:"salaryRange,omitempty"`
	Status        *Status    `json:"status,omitempty"`
	AppliedDate   *time.Time `json:"appliedDate,omitempty"`
	InterviewDate *time.Time `json:"interviewDate,omitempty"`
	ContactPerson *string    `json:"contactPerson,omitempty"`
	ContactPhone  *string    `json:"contactPhone,omitempty"`
	ContactEmail  *string    `json:"contactEmail,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
}

// Empty reports whether the update carries no fields at all.
func (u UpdateInput) Empty() bool {
	return u.CompanyName == nil && u.JobRole == nil && u.SalaryRange == nil &&
		u.Status == nil && u.AppliedDate == nil && u.InterviewDate == nil &&
		u.ContactPerson == nil && u.ContactPhone == nil && u.ContactEmail == nil &&
		u.Notes == nil
}
