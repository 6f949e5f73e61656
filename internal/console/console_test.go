package console

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"gitlab.com/dirk.krummacker/contact-console/internal/model"
	"gitlab.com/dirk.krummacker/contact-console/internal/repository"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var submittedAt = time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC)

// seededSubmissions are the submissions every test console starts with.
func seededSubmissions() []model.ContactSubmission {
	return []model.ContactSubmission{
		{Id: "1", FullName: "John Smith", Email: "john.smith@example.com", Subject: "Partnership Inquiry", Message: "Hello", SubmittedAt: submittedAt, Status: model.StatusNew},
		{Id: "2", FullName: "Sarah Johnson", Email: "sarah.j@manufacturing.com", Subject: "Research Request", Message: "Hi", SubmittedAt: submittedAt, Status: model.StatusRead},
		{Id: "3", FullName: "David Chen", Email: "d.chen@consulting.org", Subject: "Policy Consultation", Message: "Hey", SubmittedAt: submittedAt, Status: model.StatusReplied},
	}
}

var liveInfo = model.ContactInfo{
	Address:       "123 Norodom Boulevard, Phnom Penh",
	Phone:         "+855 12 345 678",
	Email:         "info@ciedri.org",
	BusinessHours: "Monday - Friday: 8:00 AM - 5:00 PM\nSunday: Closed",
	Website:       "https://www.ciedri.org",
	SocialMedia: model.SocialMedia{
		Facebook: "https://facebook.com/ciedri",
		LinkedIn: "https://linkedin.com/company/ciedri",
		Twitter:  "https://twitter.com/ciedri",
	},
}

// testConsole bundles a console with its repositories and the observed notifications.
type testConsole struct {
	*Console
	submissions   *repository.MemorySubmissions
	info          *failingContactInfo
	notifications *observer.ObservedLogs
}

// newTestConsole creates a console on seeded in-memory repositories.
func newTestConsole(t *testing.T) *testConsole {
	ctx := context.Background()
	submissions := repository.NewMemorySubmissions()
	for _, submission := range seededSubmissions() {
		require.NoError(t, submissions.Create(ctx, submission))
	}
	info := &failingContactInfo{MemoryContactInfo: repository.NewMemoryContactInfo()}
	require.NoError(t, info.Save(ctx, liveInfo))

	core, logs := observer.New(zap.InfoLevel)
	c, err := New(ctx, submissions, info, NewLogNotifier(zap.New(core)))
	require.NoError(t, err)
	return &testConsole{Console: c, submissions: submissions, info: info, notifications: logs}
}

// messages returns the texts of all notifications so far.
func (tc *testConsole) messages() []string {
	var messages []string
	for _, entry := range tc.notifications.FilterMessage("notification").All() {
		messages = append(messages, entry.ContextMap()["message"].(string))
	}
	return messages
}

// failingContactInfo is an in-memory contact record repository whose Save can be made to fail.
type failingContactInfo struct {
	*repository.MemoryContactInfo
	saveErr error
}

func (r *failingContactInfo) Save(ctx context.Context, info model.ContactInfo) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	return r.MemoryContactInfo.Save(ctx, info)
}

var errDiskFull = errors.New("disk full")
