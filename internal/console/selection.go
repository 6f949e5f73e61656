package console

import (
	"context"
	"errors"
	"sync"

	"gitlab.com/dirk.krummacker/contact-console/internal/model"
)

// Selection tracks the submission that is shown in detail. It is either idle or viewing exactly
// one submission.
type Selection struct {
	mu       sync.Mutex
	store    *SubmissionStore
	viewing  bool
	selected string
}

// NewSelection creates an idle selection on the given store.
func NewSelection(store *SubmissionStore) *Selection {
	return &Selection{store: store}
}

// View selects the submission with the given id. A submission that is still new becomes read in
// the same step. For an unknown id the selection stays as it was and ErrNotFound is returned.
func (s *Selection) View(ctx context.Context, id string) (model.ContactSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	submission, _, err := s.store.markReadIfNew(ctx, id)
	if err != nil {
		return model.ContactSubmission{}, err
	}
	s.viewing = true
	s.selected = id
	return submission, nil
}

// Dismiss returns to the idle state.
func (s *Selection) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewing = false
	s.selected = ""
}

// Current returns the selected submission as it is stored right now, so status changes made while
// viewing are visible. The boolean is false while idle.
func (s *Selection) Current(ctx context.Context) (model.ContactSubmission, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.viewing {
		return model.ContactSubmission{}, false, nil
	}
	submission, err := s.store.Get(ctx, s.selected)
	if errors.Is(err, ErrNotFound) {
		s.viewing = false
		s.selected = ""
		return model.ContactSubmission{}, false, nil
	}
	if err != nil {
		return model.ContactSubmission{}, false, err
	}
	return submission, true, nil
}

// SelectedId returns the id of the selected submission, or false while idle.
func (s *Selection) SelectedId() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected, s.viewing
}
