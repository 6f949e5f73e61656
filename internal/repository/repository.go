package repository

import (
	"context"
	"errors"

	"gitlab.com/dirk.krummacker/contact-console/internal/model"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// SubmissionRepository stores contact submissions. List returns submissions in the order in which
// they were created.
type SubmissionRepository interface {
	Get(ctx context.Context, id string) (model.ContactSubmission, error)
	List(ctx context.Context) ([]model.ContactSubmission, error)
	Create(ctx context.Context, submission model.ContactSubmission) error
	UpdateStatus(ctx context.Context, id string, status model.Status) error
}

// ContactInfoRepository stores the single contact record. Load returns ErrNotFound as long as
// nothing has been saved.
type ContactInfoRepository interface {
	Load(ctx context.Context) (model.ContactInfo, error)
	Save(ctx context.Context, info model.ContactInfo) error
}
