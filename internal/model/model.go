package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Status is the lifecycle state of a contact submission.
type Status string

const (
	StatusNew     Status = "new"
	StatusRead    Status = "read"
	StatusReplied Status = "replied"
)

// Statuses lists all valid statuses in lifecycle order.
var Statuses = []Status{StatusNew, StatusRead, StatusReplied}

// ParseStatus converts a string into a Status. It fails for anything but "new", "read" and
// "replied".
func ParseStatus(s string) (Status, error) {
	for _, status := range Statuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", fmt.Errorf("invalid status %q", s)
}

// Valid reports whether the status is one of the known statuses.
func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// Value stores the status as a plain string in the database.
func (s Status) Value() (driver.Value, error) {
	return string(s), nil
}

// ContactSubmission is an entry of the website's contact form. All fields except Status are
// fixed once the submission has been stored. Organization may be empty.
type ContactSubmission struct {
	Id           string    `json:"id"           yaml:"id"           db:"id"`
	FullName     string    `json:"fullName"     yaml:"fullName"     db:"full_name"`
	Email        string    `json:"email"        yaml:"email"        db:"email"`
	Organization string    `json:"organization" yaml:"organization" db:"organization"`
	Subject      string    `json:"subject"      yaml:"subject"      db:"subject"`
	Message      string    `json:"message"      yaml:"message"      db:"message"`
	SubmittedAt  time.Time `json:"submittedAt"  yaml:"submittedAt"  db:"submitted_at"`
	Status       Status    `json:"status"       yaml:"status"       db:"status"`
}

// SocialMedia holds the links to the organization's social media pages.
type SocialMedia struct {
	Facebook string `json:"facebook" yaml:"facebook"`
	LinkedIn string `json:"linkedin" yaml:"linkedin"`
	Twitter  string `json:"twitter"  yaml:"twitter"`
}

// ContactInfo is the organization's public contact record. It only consists of value fields,
// so a plain assignment produces an independent copy.
type ContactInfo struct {
	Address       string      `json:"address"       yaml:"address"`
	Phone         string      `json:"phone"         yaml:"phone"`
	Email         string      `json:"email"         yaml:"email"`
	BusinessHours string      `json:"businessHours" yaml:"businessHours"`
	Website       string      `json:"website"       yaml:"website"`
	SocialMedia   SocialMedia `json:"socialMedia"   yaml:"socialMedia"`
}

// SubmissionStats counts the submissions per status.
type SubmissionStats struct {
	Total   int `json:"total"`
	New     int `json:"new"`
	Read    int `json:"read"`
	Replied int `json:"replied"`
}

// Count adds a submission with the given status to the statistics.
func (s *SubmissionStats) Count(status Status) {
	s.Total++
	switch status {
	case StatusNew:
		s.New++
	case StatusRead:
		s.Read++
	case StatusReplied:
		s.Replied++
	}
}
