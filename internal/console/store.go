package console

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"gitlab.com/dirk.krummacker/contact-console/internal/metrics"
	"gitlab.com/dirk.krummacker/contact-console/internal/model"
	"gitlab.com/dirk.krummacker/contact-console/internal/repository"
)

// Notification texts shown to the operator.
const (
	MessageReplied       = "Email reply sent!"
	MessageMarkedRead    = "Marked as read!"
	MessageStatusUpdated = "Submission status updated!"
	MessageSubmitted     = "New contact submission received!"
)

// SubmissionInput holds the fields a visitor enters into the contact form. Lengths are counted in
// characters, not bytes.
type SubmissionInput struct {
	FullName     string `validate:"required,max=200"`
	Email        string `validate:"required,email,max=320"`
	Organization string `validate:"max=200"`
	Subject      string `validate:"required,max=200"`
	Message      string `validate:"required,max=5000"`
}

var validate = validator.New()

// SubmissionStore owns the contact submissions. Status changes are serialized, so the status that
// is reported as the previous one of a transition is always accurate.
type SubmissionStore struct {
	mu       sync.Mutex
	repo     repository.SubmissionRepository
	notifier Notifier
	now      func() time.Time
	newId    func() string
}

// NewSubmissionStore creates a store on top of the given repository.
func NewSubmissionStore(repo repository.SubmissionRepository, notifier Notifier) *SubmissionStore {
	return &SubmissionStore{
		repo:     repo,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
		newId:    uuid.NewString,
	}
}

// List returns all submissions in insertion order.
func (s *SubmissionStore) List(ctx context.Context) ([]model.ContactSubmission, error) {
	return s.repo.List(ctx)
}

// ListByStatus returns the submissions with the given status in insertion order.
func (s *SubmissionStore) ListByStatus(ctx context.Context, status model.Status) ([]model.ContactSubmission, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]model.ContactSubmission, 0, len(all))
	for _, submission := range all {
		if submission.Status == status {
			filtered = append(filtered, submission)
		}
	}
	return filtered, nil
}

// Get returns the submission with the given id or ErrNotFound.
func (s *SubmissionStore) Get(ctx context.Context, id string) (model.ContactSubmission, error) {
	return s.repo.Get(ctx, id)
}

// Stats counts the submissions per status.
func (s *SubmissionStore) Stats(ctx context.Context) (model.SubmissionStats, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return model.SubmissionStats{}, err
	}
	var stats model.SubmissionStats
	for _, submission := range all {
		stats.Count(submission.Status)
	}
	return stats, nil
}

// Submit validates a contact form entry and appends it as a new submission.
func (s *SubmissionStore) Submit(ctx context.Context, input SubmissionInput) (model.ContactSubmission, error) {
	input = SubmissionInput{
		FullName:     strings.TrimSpace(input.FullName),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Organization: strings.TrimSpace(input.Organization),
		Subject:      strings.TrimSpace(input.Subject),
		Message:      strings.TrimSpace(input.Message),
	}
	if err := validate.Struct(input); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			return model.ContactSubmission{}, &ValidationError{Field: fieldErrors[0].Field(), Rule: fieldErrors[0].Tag()}
		}
		return model.ContactSubmission{}, err
	}

	submission := model.ContactSubmission{
		Id:           s.newId(),
		FullName:     input.FullName,
		Email:        input.Email,
		Organization: input.Organization,
		Subject:      input.Subject,
		Message:      input.Message,
		SubmittedAt:  s.now(),
		Status:       model.StatusNew,
	}
	if err := s.repo.Create(ctx, submission); err != nil {
		return model.ContactSubmission{}, err
	}
	metrics.RecordContactSubmission()
	s.notifier.Notify(ctx, Notification{Message: MessageSubmitted, SubmissionId: submission.Id})
	return submission, nil
}

// SetStatus replaces the status of the submission with the given id. Any transition is allowed,
// including reopening a replied submission. For an unknown id nothing is changed and
// ErrNotFound is returned.
func (s *SubmissionStore) SetStatus(ctx context.Context, id string, status model.Status) (model.ContactSubmission, error) {
	return s.setStatusAndNotify(ctx, id, status, MessageStatusUpdated)
}

// Reply marks the submission as replied.
func (s *SubmissionStore) Reply(ctx context.Context, id string) (model.ContactSubmission, error) {
	return s.setStatusAndNotify(ctx, id, model.StatusReplied, MessageReplied)
}

// MarkRead marks the submission as read.
func (s *SubmissionStore) MarkRead(ctx context.Context, id string) (model.ContactSubmission, error) {
	return s.setStatusAndNotify(ctx, id, model.StatusRead, MessageMarkedRead)
}

func (s *SubmissionStore) setStatusAndNotify(ctx context.Context, id string, status model.Status, message string) (model.ContactSubmission, error) {
	submission, err := s.setStatus(ctx, id, status)
	if err != nil {
		return model.ContactSubmission{}, err
	}
	s.notifier.Notify(ctx, Notification{Message: message, SubmissionId: id})
	return submission, nil
}

// markReadIfNew applies the read-on-view policy and reports whether the status changed.
func (s *SubmissionStore) markReadIfNew(ctx context.Context, id string) (model.ContactSubmission, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	submission, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.ContactSubmission{}, false, err
	}
	if submission.Status != model.StatusNew {
		return submission, false, nil
	}
	if err := s.repo.UpdateStatus(ctx, id, model.StatusRead); err != nil {
		return model.ContactSubmission{}, false, err
	}
	metrics.RecordStatusTransition(string(model.StatusNew), string(model.StatusRead))
	submission.Status = model.StatusRead
	return submission, true, nil
}

func (s *SubmissionStore) setStatus(ctx context.Context, id string, status model.Status) (model.ContactSubmission, error) {
	if !status.Valid() {
		return model.ContactSubmission{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	submission, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.ContactSubmission{}, err
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return model.ContactSubmission{}, err
	}
	metrics.RecordStatusTransition(string(submission.Status), string(status))
	submission.Status = status
	return submission, nil
}
