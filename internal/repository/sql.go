package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"gitlab.com/dirk.krummacker/contact-console/internal/model"
)

// submissionColumns are selected explicitly because the seq column has no struct field.
const submissionColumns = `id, full_name, email, organization, subject, message, submitted_at, status`

func init() {
	// modernc.org/sqlite registers itself as "sqlite", which sqlx does not know.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Connect opens a database handle for the given driver ("mysql" or "sqlite") and checks that the
// database is reachable.
func Connect(ctx context.Context, driver string, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	if driver == "sqlite" {
		// Every connection to ":memory:" would see its own empty database.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s database: %w", driver, err)
	}
	return db, nil
}

// SQLSubmissions stores submissions in the contact_submissions table.
type SQLSubmissions struct {
	db *sqlx.DB

	// Prepared statements offer a significant speed increase if executed many times.
	insert        *sqlx.NamedStmt
	selectAll     *sqlx.Stmt
	selectWhereId *sqlx.Stmt
	updateStatus  *sqlx.Stmt
}

var _ SubmissionRepository = (*SQLSubmissions)(nil)

// NewSQLSubmissions prepares all statements on the given database. The database can be a real
// database for production use or a mock database within unit tests.
func NewSQLSubmissions(db *sqlx.DB) (*SQLSubmissions, error) {
	r := &SQLSubmissions{db: db}
	var err error
	r.insert, err = db.PrepareNamed(`
		INSERT INTO contact_submissions (` + submissionColumns + `)
		VALUES (:id, :full_name, :email, :organization, :subject, :message, :submitted_at, :status)
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare insert: %w", err)
	}
	r.selectAll, err = db.Preparex(`
		SELECT ` + submissionColumns + ` FROM contact_submissions ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare select: %w", err)
	}
	r.selectWhereId, err = db.Preparex(`
		SELECT ` + submissionColumns + ` FROM contact_submissions WHERE id = ?
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare select by id: %w", err)
	}
	r.updateStatus, err = db.Preparex(`
		UPDATE contact_submissions SET status = ? WHERE id = ?
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare update: %w", err)
	}
	return r, nil
}

func (r *SQLSubmissions) Get(ctx context.Context, id string) (model.ContactSubmission, error) {
	var submission model.ContactSubmission
	err := r.selectWhereId.GetContext(ctx, &submission, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ContactSubmission{}, ErrNotFound
	}
	if err != nil {
		return model.ContactSubmission{}, fmt.Errorf("select submission %s: %w", id, err)
	}
	return submission, nil
}

func (r *SQLSubmissions) List(ctx context.Context) ([]model.ContactSubmission, error) {
	var submissions []model.ContactSubmission
	if err := r.selectAll.SelectContext(ctx, &submissions); err != nil {
		return nil, fmt.Errorf("select submissions: %w", err)
	}
	return submissions, nil
}

func (r *SQLSubmissions) Create(ctx context.Context, submission model.ContactSubmission) error {
	if _, err := r.insert.ExecContext(ctx, submission); err != nil {
		return fmt.Errorf("insert submission %s: %w", submission.Id, err)
	}
	return nil
}

func (r *SQLSubmissions) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	result, err := r.updateStatus.ExecContext(ctx, status, id)
	if err != nil {
		return fmt.Errorf("update submission %s: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update submission %s: %w", id, err)
	}
	if rowsAffected > 0 {
		return nil
	}
	// MySQL reports zero affected rows when the status did not change.
	_, err = r.Get(ctx, id)
	return err
}

// Close releases the prepared statements.
func (r *SQLSubmissions) Close() error {
	return errors.Join(
		r.insert.Close(),
		r.selectAll.Close(),
		r.selectWhereId.Close(),
		r.updateStatus.Close(),
	)
}

// contactInfoRow is the flat table representation of model.ContactInfo.
type contactInfoRow struct {
	Address       string `db:"address"`
	Phone         string `db:"phone"`
	Email         string `db:"email"`
	BusinessHours string `db:"business_hours"`
	Website       string `db:"website"`
	Facebook      string `db:"facebook"`
	LinkedIn      string `db:"linkedin"`
	Twitter       string `db:"twitter"`
}

func toContactInfoRow(info model.ContactInfo) contactInfoRow {
	return contactInfoRow{
		Address:       info.Address,
		Phone:         info.Phone,
		Email:         info.Email,
		BusinessHours: info.BusinessHours,
		Website:       info.Website,
		Facebook:      info.SocialMedia.Facebook,
		LinkedIn:      info.SocialMedia.LinkedIn,
		Twitter:       info.SocialMedia.Twitter,
	}
}

func (row contactInfoRow) toModel() model.ContactInfo {
	return model.ContactInfo{
		Address:       row.Address,
		Phone:         row.Phone,
		Email:         row.Email,
		BusinessHours: row.BusinessHours,
		Website:       row.Website,
		SocialMedia: model.SocialMedia{
			Facebook: row.Facebook,
			LinkedIn: row.LinkedIn,
			Twitter:  row.Twitter,
		},
	}
}

// SQLContactInfo stores the contact record as the single row of the contact_info table.
type SQLContactInfo struct {
	db *sqlx.DB
}

var _ ContactInfoRepository = (*SQLContactInfo)(nil)

// NewSQLContactInfo creates a contact record repository on the given database.
func NewSQLContactInfo(db *sqlx.DB) *SQLContactInfo {
	return &SQLContactInfo{db: db}
}

func (r *SQLContactInfo) Load(ctx context.Context) (model.ContactInfo, error) {
	var row contactInfoRow
	err := r.db.GetContext(ctx, &row, `
		SELECT address, phone, email, business_hours, website, facebook, linkedin, twitter
		FROM contact_info WHERE id = 1
	`)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ContactInfo{}, ErrNotFound
	}
	if err != nil {
		return model.ContactInfo{}, fmt.Errorf("select contact info: %w", err)
	}
	return row.toModel(), nil
}

// Save replaces the stored record within one transaction, so readers either see the old or the
// new record.
func (r *SQLContactInfo) Save(ctx context.Context, info model.ContactInfo) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save contact info: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM contact_info WHERE id = 1`); err != nil {
		return fmt.Errorf("save contact info: %w", err)
	}
	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO contact_info (id, address, phone, email, business_hours, website, facebook, linkedin, twitter)
		VALUES (1, :address, :phone, :email, :business_hours, :website, :facebook, :linkedin, :twitter)
	`, toContactInfoRow(info))
	if err != nil {
		return fmt.Errorf("save contact info: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save contact info: %w", err)
	}
	return nil
}
