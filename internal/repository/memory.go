package repository

import (
	"context"
	"fmt"
	"sync"

	"gitlab.com/dirk.krummacker/contact-console/internal/model"
)

// MemorySubmissions keeps submissions in a slice, which preserves the insertion order.
type MemorySubmissions struct {
	mu          sync.RWMutex
	submissions []model.ContactSubmission
	index       map[string]int
}

var _ SubmissionRepository = (*MemorySubmissions)(nil)

// NewMemorySubmissions creates an empty in-memory submission repository.
func NewMemorySubmissions() *MemorySubmissions {
	return &MemorySubmissions{index: make(map[string]int)}
}

func (r *MemorySubmissions) Get(_ context.Context, id string) (model.ContactSubmission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[id]
	if !ok {
		return model.ContactSubmission{}, ErrNotFound
	}
	return r.submissions[i], nil
}

func (r *MemorySubmissions) List(_ context.Context) ([]model.ContactSubmission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]model.ContactSubmission, len(r.submissions))
	copy(result, r.submissions)
	return result, nil
}

func (r *MemorySubmissions) Create(_ context.Context, submission model.ContactSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.index[submission.Id]; exists {
		return fmt.Errorf("submission %q already exists", submission.Id)
	}
	r.index[submission.Id] = len(r.submissions)
	r.submissions = append(r.submissions, submission)
	return nil
}

func (r *MemorySubmissions) UpdateStatus(_ context.Context, id string, status model.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[id]
	if !ok {
		return ErrNotFound
	}
	r.submissions[i].Status = status
	return nil
}

// MemoryContactInfo keeps the contact record in memory.
type MemoryContactInfo struct {
	mu    sync.RWMutex
	info  model.ContactInfo
	saved bool
}

var _ ContactInfoRepository = (*MemoryContactInfo)(nil)

// NewMemoryContactInfo creates an in-memory contact record repository without a record.
func NewMemoryContactInfo() *MemoryContactInfo {
	return &MemoryContactInfo{}
}

func (r *MemoryContactInfo) Load(_ context.Context) (model.ContactInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.saved {
		return model.ContactInfo{}, ErrNotFound
	}
	return r.info, nil
}

func (r *MemoryContactInfo) Save(_ context.Context, info model.ContactInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.info = info
	r.saved = true
	return nil
}
