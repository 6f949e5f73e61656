package console

import (
	"context"
	"errors"
	"sync"

	"gitlab.com/dirk.krummacker/contact-console/internal/metrics"
	"gitlab.com/dirk.krummacker/contact-console/internal/model"
	"gitlab.com/dirk.krummacker/contact-console/internal/repository"
)

// MessageContactInfoSaved is the notification text after a committed edit.
const MessageContactInfoSaved = "Contact information updated successfully!"

// InfoEditor edits the organization's contact record through a draft. Changes to the draft are
// invisible until Commit replaces the live record with it; Cancel throws the draft away.
type InfoEditor struct {
	mu       sync.Mutex
	repo     repository.ContactInfoRepository
	notifier Notifier
	live     model.ContactInfo
	draft    model.ContactInfo
	editing  bool
}

// NewInfoEditor loads the live record from the repository. Without a stored record the editor
// starts with an empty one.
func NewInfoEditor(ctx context.Context, repo repository.ContactInfoRepository, notifier Notifier) (*InfoEditor, error) {
	live, err := repo.Load(ctx)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return &InfoEditor{
		repo:     repo,
		notifier: notifier,
		live:     live,
		draft:    live,
	}, nil
}

// Live returns a copy of the live record.
func (e *InfoEditor) Live() model.ContactInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.live
}

// Editing reports whether an edit is in progress.
func (e *InfoEditor) Editing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editing
}

// Draft returns a copy of the draft, or ErrNotEditing.
func (e *InfoEditor) Draft() (model.ContactInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.editing {
		return model.ContactInfo{}, ErrNotEditing
	}
	return e.draft, nil
}

// BeginEdit starts editing with a draft copied from the live record. If an edit is already in
// progress its draft is kept.
func (e *InfoEditor) BeginEdit() model.ContactInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.editing {
		e.draft = e.live
		e.editing = true
	}
	return e.draft
}

// UpdateDraft replaces the draft.
func (e *InfoEditor) UpdateDraft(draft model.ContactInfo) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.editing {
		return ErrNotEditing
	}
	e.draft = draft
	return nil
}

// Commit stores the draft and makes it the live record. If storing fails the editor keeps editing
// and the live record is unchanged.
func (e *InfoEditor) Commit(ctx context.Context) (model.ContactInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.editing {
		return model.ContactInfo{}, ErrNotEditing
	}
	if err := e.repo.Save(ctx, e.draft); err != nil {
		return model.ContactInfo{}, err
	}
	e.live = e.draft
	e.editing = false
	metrics.RecordContactInfoCommit()
	e.notifier.Notify(ctx, Notification{Message: MessageContactInfoSaved})
	return e.live, nil
}

// Cancel discards the draft. Cancelling without an edit in progress does nothing.
func (e *InfoEditor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = e.live
	e.editing = false
}
