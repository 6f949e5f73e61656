package console

import (
	"errors"
	"fmt"

	"gitlab.com/dirk.krummacker/contact-console/internal/repository"
)

var (
	// ErrNotFound is returned for unknown submission ids.
	ErrNotFound = repository.ErrNotFound

	// ErrInvalidStatus is returned for statuses other than new, read and replied.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrNotEditing is returned for draft operations while the editor is not editing.
	ErrNotEditing = errors.New("contact info is not being edited")
)

// ValidationError reports a submission field that violates a rule.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: violates rule %q", e.Field, e.Rule)
}
