package project

import (
	"time"

	"github.com/classportal/backend/core"
)

// Upload types
const (
	TypePDF = "pdf"
	TypeURL = "url"
)

// Upload is a project posted by a teacher for a subject.
type Upload struct {
	Index       int       `json:"index"` // position in the whole catalog
	Subject     string    `json:"subject"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type"`
	Value       string    `json:"value"` // file name or URL
	Deadline    string    `json:"deadline,omitempty"`
	CreatedAt   time.Time `json:"created_at"` // UTC
}

// DeadlineTime returns the parsed deadline; ok is false when none is set or it cannot be read.
func (u Upload) DeadlineTime() (time.Time, bool) {
	return core.ParseDeadline(u.Deadline)
}

// NewUpload contains the fields of the teacher's upload form.
// URL is required for url uploads and File for pdf uploads.
type NewUpload struct {
	Subject     string `json:"subject" validate:"notblank"`
	Title       string `json:"title" validate:"notblank,max=200"`
	Description string `json:"description"`
	Type        string `json:"type" validate:"required,oneof=pdf url"`
	URL         string `json:"url"`
	File        string `json:"file"`
	Deadline    string `json:"deadline"`
}

func (nu *NewUpload) Validate(v *core.Validator) error {
	nu.Subject = core.CleanString(nu.Subject)
	nu.Title = core.CleanString(nu.Title)
	nu.Description = core.CleanString(nu.Description)
	nu.Type = core.CleanString(nu.Type, true /* lower */)
	nu.URL = core.CleanString(nu.URL)
	nu.File = core.CleanString(nu.File)
	nu.Deadline = core.CleanString(nu.Deadline)
	return v.Struct(nu)
}

// value is what gets stored for the declared type.
func (nu NewUpload) value() string {
	if nu.Type == TypeURL {
		return nu.URL
	}
	return nu.File
}
