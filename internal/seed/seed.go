// Package seed loads initial contact submissions and the contact record from YAML and writes
// them into the repositories.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gitlab.com/dirk.krummacker/contact-console/internal/model"
	"gitlab.com/dirk.krummacker/contact-console/internal/repository"
)

//go:embed default.yaml
var defaultData []byte

// Data is the content of a seed file.
type Data struct {
	Submissions []model.ContactSubmission `yaml:"submissions"`
	ContactInfo *model.ContactInfo        `yaml:"contactInfo"`
}

// Default returns the built-in seed data.
func Default() (*Data, error) {
	return Parse(defaultData)
}

// LoadFile reads seed data from a YAML file.
func LoadFile(path string) (*Data, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(content)
}

// Parse decodes seed data and checks every submission.
func Parse(content []byte) (*Data, error) {
	var data Data
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	seen := make(map[string]bool, len(data.Submissions))
	for i, submission := range data.Submissions {
		if submission.Id == "" {
			return nil, fmt.Errorf("seed submission #%d has no id", i+1)
		}
		if seen[submission.Id] {
			return nil, fmt.Errorf("seed submission id %q is not unique", submission.Id)
		}
		seen[submission.Id] = true
		if submission.Status == "" {
			data.Submissions[i].Status = model.StatusNew
		} else if !submission.Status.Valid() {
			return nil, fmt.Errorf("seed submission %q has invalid status %q", submission.Id, submission.Status)
		}
	}
	return &data, nil
}

// Apply writes the seed data into the repositories. Submissions that already exist are left
// alone, and the contact record is only written if none is stored yet. Applying the same data
// twice therefore changes nothing. It returns the number of submissions created.
func Apply(ctx context.Context, data *Data, submissions repository.SubmissionRepository, info repository.ContactInfoRepository) (int, error) {
	created := 0
	for _, submission := range data.Submissions {
		_, err := submissions.Get(ctx, submission.Id)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return created, err
		}
		if err := submissions.Create(ctx, submission); err != nil {
			return created, err
		}
		created++
	}

	if data.ContactInfo == nil {
		return created, nil
	}
	_, err := info.Load(ctx)
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return created, err
	}
	return created, info.Save(ctx, *data.ContactInfo)
}
