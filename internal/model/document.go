package model

import "time"

// Status is the review state of a Document.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is one of the known review states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Document is a submitted course file and its review state.
// Pure domain model with no database tags; the repository maps it to columns.
type Document struct {
	ID              string    `json:"id"`
	OriginalName    string    `json:"original_name"`
	CanonicalName   string    `json:"canonical_name"`
	Extension       string    `json:"extension"`
	ContentType     string    `json:"content_type"`
	ByteSize        int64     `json:"size"`
	PageCount       int       `json:"page_count,omitempty"`
	Category        string    `json:"category"`
	TermTag         string    `json:"term_tag,omitempty"`
	Status          Status    `json:"status"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	StagingPath     string    `json:"staging_path"`
	PermanentPath   string    `json:"permanent_path,omitempty"`
	CourseID        string    `json:"course_id"`
	UploaderID      string    `json:"uploader_id"`
	ReviewerID      string    `json:"reviewer_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ObjectKey returns the object-store key that currently holds the document's bytes:
// the permanent location once promoted, the staging location otherwise.
func (d *Document) ObjectKey() string {
	if d.PermanentPath != "" {
		return d.PermanentPath
	}
	return d.StagingPath
}
