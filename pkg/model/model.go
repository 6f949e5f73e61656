// Package model contains the JSON bodies of the contact console REST API as seen by clients.
package model

import "time"

// Message is the body of responses that only carry a human readable message.
type Message struct {
	Message string `json:"message"`
}

// StatusRequest is the body for changing the status of a submission.
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SubmitRequest is the body of a new contact form submission. Organization is optional.
type SubmitRequest struct {
	FullName     string `json:"fullName"     binding:"required,max=200"`
	Email        string `json:"email"        binding:"required,email,max=320"`
	Organization string `json:"organization" binding:"max=200"`
	Subject      string `json:"subject"      binding:"required,max=200"`
	Message      string `json:"message"      binding:"required"`
}

// Submission is a contact form submission as returned by the API.
type Submission struct {
	Id           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Organization string    `json:"organization,omitempty"`
	Subject      string    `json:"subject"`
	Message      string    `json:"message"`
	SubmittedAt  time.Time `json:"submittedAt"`
	Status       string    `json:"status"`
}

// SocialMedia holds the social media links of the contact record.
type SocialMedia struct {
	Facebook string `json:"facebook"`
	LinkedIn string `json:"linkedin"`
	Twitter  string `json:"twitter"`
}

// ContactInfo is the organization's contact record as returned by the API.
type ContactInfo struct {
	Address       string      `json:"address"`
	Phone         string      `json:"phone"`
	Email         string      `json:"email"`
	BusinessHours string      `json:"businessHours"`
	Website       string      `json:"website"`
	SocialMedia   SocialMedia `json:"socialMedia"`
}

// Stats counts the submissions per status.
type Stats struct {
	Total   int `json:"total"`
	New     int `json:"new"`
	Read    int `json:"read"`
	Replied int `json:"replied"`
}

// Selection states.
const (
	SelectionIdle    = "idle"
	SelectionViewing = "viewing"
)

// SelectionResponse describes the submission currently shown in detail. Submission is nil
// while idle.
type SelectionResponse struct {
	State      string      `json:"state"`
	Submission *Submission `json:"submission,omitempty"`
	Message    string      `json:"message,omitempty"`
}

// ContactInfoResponse is the live contact record together with the editor state.
type ContactInfoResponse struct {
	Editing     bool        `json:"editing"`
	ContactInfo ContactInfo `json:"contactInfo"`
	Message     string      `json:"message,omitempty"`
}
