package project

import (
	"errors"
	"time"

	"github.com/classportal/backend/core"
)

var (
	// errors
	ErrNotFound = errors.New("project not found")
)

type (
	// Repository is the append-only upload catalog.
	Repository interface {
		// AppendUpload assigns the upload its catalog index.
		AppendUpload(upload Upload) (Upload, error)
		GetUpload(index int) (Upload, error)
		QueryUploads(subject string) ([]Upload, error)
		SetUploadDeadline(index int, deadline string) (Upload, error)
	}

	Service struct {
		repo      Repository
		validator *core.Validator
	}
)

func NewService(repo Repository, v *core.Validator) *Service {
	return &Service{repo: repo, validator: v}
}

// AddUpload appends a project to the catalog. Titles need not be unique.
func (svc *Service) AddUpload(nu NewUpload) (Upload, error) {
	if err := nu.Validate(svc.validator); err != nil {
		return Upload{}, err
	}
	return svc.repo.AppendUpload(Upload{
		Subject:     nu.Subject,
		Title:       nu.Title,
		Description: nu.Description,
		Type:        nu.Type,
		Value:       nu.value(),
		Deadline:    nu.Deadline,
		CreatedAt:   time.Now().UTC(),
	})
}

// SetDeadline changes the deadline of the upload at `index` in the whole catalog.
// A blank deadline removes it.
func (svc *Service) SetDeadline(index int, deadline string) (Upload, error) {
	return svc.repo.SetUploadDeadline(index, core.CleanString(deadline))
}

func (svc *Service) Get(index int) (Upload, error) {
	return svc.repo.GetUpload(index)
}

// ListForSubject returns the subject's uploads in the order they were posted.
func (svc *Service) ListForSubject(subject string) ([]Upload, error) {
	return svc.repo.QueryUploads(core.CleanString(subject))
}
