// Package console holds the state of the contact administration console: the inbox of contact
// submissions, the submission that is viewed in detail and the editor for the organization's
// contact record.
package console

import (
	"context"

	"gitlab.com/dirk.krummacker/contact-console/internal/repository"
)

// Console groups the three parts of the contact administration.
type Console struct {
	Submissions *SubmissionStore
	Selection   *Selection
	Info        *InfoEditor
}

// New creates a console on top of the given repositories. The live contact record is loaded
// immediately.
func New(ctx context.Context, submissions repository.SubmissionRepository, info repository.ContactInfoRepository, notifier Notifier) (*Console, error) {
	store := NewSubmissionStore(submissions, notifier)
	editor, err := NewInfoEditor(ctx, info, notifier)
	if err != nil {
		return nil, err
	}
	return &Console{
		Submissions: store,
		Selection:   NewSelection(store),
		Info:        editor,
	}, nil
}
