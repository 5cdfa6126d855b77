package grade

import (
	"time"

	"github.com/classportal/backend/core"
)

// Grade is the teacher's mark and feedback on a submission.
type Grade struct {
	SubmissionID string    `json:"submission_id"`
	Marks        string    `json:"marks"` // out of 100, as typed by the teacher
	Feedback     string    `json:"feedback"`
	GradedAt     time.Time `json:"graded_at"` // UTC
}

// SaveGrade contains the fields of the grading form.
type SaveGrade struct {
	Marks    string `json:"marks" validate:"notblank,max=16"`
	Feedback string `json:"feedback" validate:"max=2000"`
}

func (sg *SaveGrade) Validate(v *core.Validator) error {
	sg.Marks = core.CleanString(sg.Marks)
	sg.Feedback = core.CleanString(sg.Feedback)
	return v.Struct(sg)
}
