package grade

import (
	"errors"
	"time"

	"github.com/classportal/backend/core"
)

var (
	// errors
	ErrNotFound = errors.New("grade not found")
)

type (
	Repository interface {
		// UpsertGrade inserts the grade or overwrites the one of the same submission.
		UpsertGrade(grd Grade) (Grade, error)
		GetGrade(submissionID string) (Grade, error)
	}

	Service struct {
		repo      Repository
		validator *core.Validator
	}
)

func NewService(repo Repository, v *core.Validator) *Service {
	return &Service{repo: repo, validator: v}
}

// Save stores the grade of a submission. Blank marks are rejected and nothing is stored.
func (svc *Service) Save(submissionID string, sg SaveGrade) (Grade, error) {
	if err := sg.Validate(svc.validator); err != nil {
		return Grade{}, err
	}
	return svc.repo.UpsertGrade(Grade{
		SubmissionID: core.CleanString(submissionID),
		Marks:        sg.Marks,
		Feedback:     sg.Feedback,
		GradedAt:     time.Now().UTC(),
	})
}

// Get returns the grade of a submission, or a not found error while it is pending.
func (svc *Service) Get(submissionID string) (Grade, error) {
	return svc.repo.GetGrade(core.CleanString(submissionID))
}
