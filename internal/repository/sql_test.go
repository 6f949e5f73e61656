package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/dirk.krummacker/contact-console/internal/model"
)

// createMockObjects builds a mock database handle and a mock object for defining our expected SQL
// calls.
func createMockObjects(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	return db, mock
}

// expectPreparedStatements instructs the mock object to expect that several statements are being
// prepared.
func expectPreparedStatements(mock sqlmock.Sqlmock) {
	mock.ExpectPrepare("INSERT INTO contact_submissions")
	mock.ExpectPrepare("SELECT (.+) FROM contact_submissions ORDER BY seq")
	mock.ExpectPrepare("SELECT (.+) FROM contact_submissions WHERE id = \\?")
	mock.ExpectPrepare("UPDATE contact_submissions SET status = \\? WHERE id = \\?")
}

func newMockSubmissions(t *testing.T, db *sql.DB) *SQLSubmissions {
	repo, err := NewSQLSubmissions(sqlx.NewDb(db, "mysql"))
	require.NoError(t, err)
	return repo
}

func TestSQLSubmissionsList(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()

	// Define expectations on SQL statements
	expectPreparedStatements(mock)
	submittedAt := time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC)
	rows := mock.NewRows([]string{"id", "full_name", "email", "organization", "subject", "message", "submitted_at", "status"}).
		AddRow("1", "John Smith", "john.smith@example.com", "Industrial Development Corp", "Partnership Inquiry", "Hello", submittedAt, "new").
		AddRow("2", "Sarah Johnson", "sarah.j@manufacturing.com", "", "Research Request", "Hi", submittedAt, "read")
	mock.ExpectQuery("SELECT (.+) FROM contact_submissions ORDER BY seq").
		WillReturnRows(rows)

	// Run test and compare results
	submissions, err := newMockSubmissions(t, db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, submissions, 2)
	assert.Equal(t, model.ContactSubmission{
		Id:           "1",
		FullName:     "John Smith",
		Email:        "john.smith@example.com",
		Organization: "Industrial Development Corp",
		Subject:      "Partnership Inquiry",
		Message:      "Hello",
		SubmittedAt:  submittedAt,
		Status:       model.StatusNew,
	}, submissions[0])
	assert.Equal(t, model.StatusRead, submissions[1].Status)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestSQLSubmissionsGetNotFound(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()

	// Define expectations on SQL statements
	expectPreparedStatements(mock)
	mock.ExpectQuery("SELECT (.+) FROM contact_submissions WHERE id = \\?").
		WithArgs("9999").
		WillReturnRows(mock.NewRows([]string{"id"}))

	// Run test and compare results
	_, err := newMockSubmissions(t, db).Get(context.Background(), "9999")
	assert.ErrorIs(t, err, ErrNotFound)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestSQLSubmissionsCreate(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()

	// Define expectations on SQL statements
	expectPreparedStatements(mock)
	submission := model.ContactSubmission{
		Id:          "7",
		FullName:    "Erika Mustermann",
		Email:       "erika@example.org",
		Subject:     "Hello",
		Message:     "How are you?",
		SubmittedAt: time.Date(2024, time.March, 2, 8, 0, 0, 0, time.UTC),
		Status:      model.StatusNew,
	}
	mock.ExpectExec("INSERT INTO contact_submissions").
		WithArgs("7", "Erika Mustermann", "erika@example.org", "", "Hello", "How are you?", submission.SubmittedAt, "new").
		WillReturnResult(sqlmock.NewResult(1, 1))

	// Run test and compare results
	require.NoError(t, newMockSubmissions(t, db).Create(context.Background(), submission))
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestSQLSubmissionsUpdateStatus(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()

	// Define expectations on SQL statements
	expectPreparedStatements(mock)
	mock.ExpectExec("UPDATE contact_submissions SET status = \\? WHERE id = \\?").
		WithArgs("replied", "1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Run test and compare results
	require.NoError(t, newMockSubmissions(t, db).UpdateStatus(context.Background(), "1", model.StatusReplied))
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

// TestSQLSubmissionsUpdateStatusNoRowsAffected covers both reasons for zero affected rows: an
// unchanged status of an existing submission and an unknown id.
func TestSQLSubmissionsUpdateStatusNoRowsAffected(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()

	// Define expectations on SQL statements
	expectPreparedStatements(mock)
	mock.ExpectExec("UPDATE contact_submissions SET status = \\? WHERE id = \\?").
		WithArgs("read", "2").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM contact_submissions WHERE id = \\?").
		WithArgs("2").
		WillReturnRows(mock.NewRows([]string{"id", "status"}).AddRow("2", "read"))
	mock.ExpectExec("UPDATE contact_submissions SET status = \\? WHERE id = \\?").
		WithArgs("read", "9999").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM contact_submissions WHERE id = \\?").
		WithArgs("9999").
		WillReturnRows(mock.NewRows([]string{"id", "status"}))

	// Run test and compare results
	repo := newMockSubmissions(t, db)
	assert.NoError(t, repo.UpdateStatus(context.Background(), "2", model.StatusRead))
	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), "9999", model.StatusRead), ErrNotFound)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestSQLSubmissionsDatabaseError(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()

	// Define expectations on SQL statements
	expectPreparedStatements(mock)
	mock.ExpectQuery("SELECT (.+) FROM contact_submissions ORDER BY seq").
		WillReturnError(errors.New("connection lost"))

	// Run test and compare results
	_, err := newMockSubmissions(t, db).List(context.Background())
	assert.ErrorContains(t, err, "connection lost")
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestSQLContactInfoLoadEmpty(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()

	// Define expectations on SQL statements
	mock.ExpectQuery("SELECT (.+) FROM contact_info WHERE id = 1").
		WillReturnRows(mock.NewRows([]string{"address"}))

	// Run test and compare results
	_, err := NewSQLContactInfo(sqlx.NewDb(db, "mysql")).Load(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestSQLContactInfoSave(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()

	// Define expectations on SQL statements
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM contact_info WHERE id = 1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO contact_info").
		WithArgs("Phnom Penh", "+855", "info@ciedri.org", "Mon - Fri", "https://www.ciedri.org", "fb", "li", "tw").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	// Run test and compare results
	err := NewSQLContactInfo(sqlx.NewDb(db, "mysql")).Save(context.Background(), model.ContactInfo{
		Address:       "Phnom Penh",
		Phone:         "+855",
		Email:         "info@ciedri.org",
		BusinessHours: "Mon - Fri",
		Website:       "https://www.ciedri.org",
		SocialMedia:   model.SocialMedia{Facebook: "fb", LinkedIn: "li", Twitter: "tw"},
	})
	require.NoError(t, err)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

// TestSQLContactInfoSaveRollback expects that a failing insert rolls the deletion back.
func TestSQLContactInfoSaveRollback(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()

	// Define expectations on SQL statements
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM contact_info WHERE id = 1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO contact_info").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	// Run test and compare results
	err := NewSQLContactInfo(sqlx.NewDb(db, "mysql")).Save(context.Background(), model.ContactInfo{})
	assert.ErrorContains(t, err, "disk full")
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}
