// internal/store/applications.go

// Package store persists applications in PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	stderrors "applytrack/internal/common/errors"
	"applytrack/internal/models"
)

const applicationColumns = `id, company_name, job_role, salary_range, status,
	       applied_date, interview_date, contact_person, contact_phone,
	       contact_email, notes, created_at`

// ApplicationStore reads and writes the applications table.
type ApplicationStore struct {
	db *sql.DB
}

// NewApplicationStore wraps an open database handle.
func NewApplicationStore(db *sql.DB) *ApplicationStore {
	return &ApplicationStore{db: db}
}

// Migrate creates the applications table if it does not exist.
func (s *ApplicationStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS applications (
			id TEXT PRIMARY KEY,
			company_name TEXT NOT NULL,
			job_role TEXT NOT NULL,
			salary_range TEXT,
			status TEXT NOT NULL DEFAULT 'Applied',
			applied_date TIMESTAMPTZ,
			interview_date TIMESTAMPTZ,
			contact_person TEXT,
			contact_phone TEXT,
			contact_email TEXT,
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return stderrors.NewQueryExecutionFailedError("migrate", err)
	}
	return nil
}

// List returns every application, newest first.
func (s *ApplicationStore) List(ctx context.Context) ([]models.Application, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+applicationColumns+`
		FROM applications
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("list", err)
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, stderrors.NewQueryExecutionFailedError("list", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("list", err)
	}
	return apps, nil
}

// Get returns one application by id.
func (s *ApplicationStore) Get(ctx context.Context, id string) (*models.Application, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+applicationColumns+`
		FROM applications
		WHERE id = $1`, id)

	app, err := scanApplication(row)
	if err == sql.ErrNoRows {
		return nil, stderrors.NewApplicationNotFoundError(id)
	}
	if err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("get", err)
	}
	return &app, nil
}

// Create validates the input and inserts a new application. Status defaults
// to Applied when left empty.
func (s *ApplicationStore) Create(ctx context.Context, input models.CreateInput) (*models.Application, error) {
	if input.CompanyName == "" {
		return nil, stderrors.NewApplicationValidationFailedError("companyName is required")
	}
	if input.JobRole == "" {
		return nil, stderrors.NewApplicationValidationFailedError("jobRole is required")
	}
	if !models.ValidSalaryRange(input.SalaryRange) {
		return nil, stderrors.NewApplicationValidationFailedError("unknown salaryRange " + input.SalaryRange)
	}

	status := input.Status
	if status == "" {
		status = models.StatusApplied
	}
	if !status.Valid() {
		return nil, stderrors.NewInvalidStatusError(string(status))
	}

	app := models.Application{
		ID:            uuid.New().String(),
		CompanyName:   input.CompanyName,
		JobRole:       input.JobRole,
		SalaryRange:   input.SalaryRange,
		Status:        status,
		AppliedDate:   input.AppliedDate,
		InterviewDate: input.InterviewDate,
		ContactPerson: input.ContactPerson,
		ContactPhone:  input.ContactPhone,
		ContactEmail:  input.ContactEmail,
		Notes:         input.Notes,
		CreatedAt:     time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO applications (`+applicationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		app.ID, app.CompanyName, app.JobRole, nullString(app.SalaryRange),
		string(app.Status), nullTime(app.AppliedDate), nullTime(app.InterviewDate),
		nullString(app.ContactPerson), nullString(app.ContactPhone),
		nullString(app.ContactEmail), nullString(app.Notes), app.CreatedAt,
	)
	if err != nil {
		return nil, stderrors.NewDatabaseInsertFailedError(err)
	}
	return &app, nil
}

// Update applies a partial update and returns the resulting row. Fields the
// caller did not set keep their stored values.
func (s *ApplicationStore) Update(ctx context.Context, id string, input models.UpdateInput) (*models.Application, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, stderrors.NewInvalidStatusError(string(*input.Status))
	}
	if input.SalaryRange != nil && !models.ValidSalaryRange(*input.SalaryRange) {
		return nil, stderrors.NewApplicationValidationFailedError("unknown salaryRange " + *input.SalaryRange)
	}

	row := s.db.QueryRowContext(ctx, `
		UPDATE applications SET
			company_name = COALESCE($2, company_name),
			job_role = COALESCE($3, job_role),
			salary_range = COALESCE($4, salary_range),
			status = COALESCE($5, status),
			applied_date = COALESCE($6, applied_date),
			interview_date = COALESCE($7, interview_date),
			contact_person = COALESCE($8, contact_person),
			contact_phone = COALESCE($9, contact_phone),
			contact_email = COALESCE($10, contact_email),
			notes = COALESCE($11, notes)
		WHERE id = $1
		RETURNING `+applicationColumns,
		id, input.CompanyName, input.JobRole, input.SalaryRange,
		statusPtr(input.Status), input.AppliedDate, input.InterviewDate,
		input.ContactPerson, input.ContactPhone, input.ContactEmail, input.Notes,
	)

	app, err := scanApplication(row)
	if err == sql.ErrNoRows {
		return nil, stderrors.NewApplicationNotFoundError(id)
	}
	if err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("update", err)
	}
	return &app, nil
}

// Delete removes an application. Deleting an id that does not exist is not
// an error.
func (s *ApplicationStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return stderrors.NewQueryExecutionFailedError("delete", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanApplication(row rowScanner) (models.Application, error) {
	var app models.Application
	var salaryRange, contactPerson, contactPhone, contactEmail, notes sql.NullString
	var appliedDate, interviewDate sql.NullTime
	var status string

	err := row.Scan(
		&app.ID, &app.CompanyName, &app.JobRole, &salaryRange, &status,
		&appliedDate, &interviewDate, &contactPerson, &contactPhone,
		&contactEmail, &notes, &app.CreatedAt,
	)
	if err != nil {
		return models.Application{}, err
	}

	app.SalaryRange = salaryRange.String
	app.Status = models.Status(status)
	app.ContactPerson = contactPerson.String
	app.ContactPhone = contactPhone.String
	app.ContactEmail = contactEmail.String
	app.Notes = notes.String
	if appliedDate.Valid {
		t := appliedDate.Time
		app.AppliedDate = &t
	}
	if interviewDate.Valid {
		t := interviewDate.Time
		app.InterviewDate = &t
	}
	return app, nil
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func statusPtr(s *models.Status) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}
