// internal/store/applications_test.go

package store

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "applytrack/internal/common/errors"
	"applytrack/internal/models"
)

func newMockStore(t *testing.T) (*ApplicationStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewApplicationStore(db), mock
}

func applicationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "company_name", "job_role", "salary_range", "status",
		"applied_date", "interview_date", "contact_person", "contact_phone",
		"contact_email", "notes", "created_at",
	})
}

func TestList(t *testing.T) {
	s, mock := newMockStore(t)

	newer := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	applied := time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM applications ORDER BY created_at DESC, id DESC").
		WillReturnRows(applicationRows().
			AddRow("id-2", "Acme", "SDE II", "8 - 12 LPA", "Interview",
				applied, nil, "Priya", nil, nil, nil, newer).
			AddRow("id-1", "Initech", "Backend Engineer", nil, "Applied",
				nil, nil, nil, nil, nil, nil, older))

	apps, err := s.List(context.Background())

	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, "id-2", apps[0].ID)
	assert.Equal(t, models.StatusInterview, apps[0].Status)
	assert.Equal(t, "8 - 12 LPA", apps[0].SalaryRange)
	require.NotNil(t, apps[0].AppliedDate)
	assert.Equal(t, applied, *apps[0].AppliedDate)
	assert.Nil(t, apps[0].InterviewDate)
	assert.Equal(t, "id-1", apps[1].ID)
	assert.Empty(t, apps[1].SalaryRange)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListEmpty(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM applications").
		WillReturnRows(applicationRows())

	apps, err := s.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, apps)
	assert.Empty(t, apps)
}

func TestGetNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM applications WHERE id = \\$1").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := s.Get(context.Background(), "missing")

	require.Error(t, err)
	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeApplicationNotFound, stdErr.Code)
}

func TestCreate(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO applications").
		WithArgs(sqlmock.AnyArg(), "Acme", "SDE II", "8 - 12 LPA", "Applied",
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	app, err := s.Create(context.Background(), models.CreateInput{
		CompanyName: "Acme",
		JobRole:     "SDE II",
		SalaryRange: "8 - 12 LPA",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, app.ID)
	assert.Equal(t, models.StatusApplied, app.Status)
	assert.False(t, app.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateValidation(t *testing.T) {
	s, _ := newMockStore(t)

	tests := []struct {
		name  string
		input models.CreateInput
		code  stderrors.ErrorCode
	}{
		{
			name:  "missing company name",
			input: models.CreateInput{JobRole: "SDE II"},
			code:  stderrors.ErrCodeApplicationValidationFailed,
		},
		{
			name:  "missing job role",
			input: models.CreateInput{CompanyName: "Acme"},
			code:  stderrors.ErrCodeApplicationValidationFailed,
		},
		{
			name: "unknown salary range",
			input: models.CreateInput{
				CompanyName: "Acme", JobRole: "SDE II", SalaryRange: "1 crore",
			},
			code: stderrors.ErrCodeApplicationValidationFailed,
		},
		{
			name: "unknown status",
			input: models.CreateInput{
				CompanyName: "Acme", JobRole: "SDE II", Status: "Ghosted",
			},
			code: stderrors.ErrCodeInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(context.Background(), tt.input)
			require.Error(t, err)
			var stdErr *stderrors.StandardError
			require.ErrorAs(t, err, &stdErr)
			assert.Equal(t, tt.code, stdErr.Code)
		})
	}
}

func TestUpdatePartial(t *testing.T) {
	s, mock := newMockStore(t)

	createdAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	status := models.StatusInterview
	interview := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE applications SET")).
		WithArgs("id-1", nil, nil, nil, "Interview", nil, interview,
			nil, nil, nil, nil).
		WillReturnRows(applicationRows().
			AddRow("id-1", "Acme", "SDE II", nil, "Interview",
				nil, interview, nil, nil, nil, nil, createdAt))

	app, err := s.Update(context.Background(), "id-1", models.UpdateInput{
		Status:        &status,
		InterviewDate: &interview,
	})

	require.NoError(t, err)
	assert.Equal(t, models.StatusInterview, app.Status)
	assert.Equal(t, "Acme", app.CompanyName)
	require.NotNil(t, app.InterviewDate)
	assert.Equal(t, interview, *app.InterviewDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	notes := "pinged recruiter"
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE applications SET")).
		WillReturnError(sql.ErrNoRows)

	_, err := s.Update(context.Background(), "missing", models.UpdateInput{Notes: &notes})

	require.Error(t, err)
	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeApplicationNotFound, stdErr.Code)
}

func TestUpdateRejectsInvalidStatus(t *testing.T) {
	s, _ := newMockStore(t)

	bad := models.Status("Ghosted")
	_, err := s.Update(context.Background(), "id-1", models.UpdateInput{Status: &bad})

	require.Error(t, err)
	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeInvalidStatus, stdErr.Code)
}

func TestDeleteIdempotent(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM applications WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Delete(context.Background(), "missing")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
