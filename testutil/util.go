package testutil

import (
	"testing"

	"github.com/classportal/backend/core"
	"github.com/classportal/backend/core/group"
	"github.com/classportal/backend/core/project"
	"github.com/classportal/backend/core/submission"
)

// NewValidator returns a validator with the validators of every domain package registered.
func NewValidator() *core.Validator {
	v := core.NewValidator()
	project.InitValidators(v.Validate, v.Translator)
	return v
}

func IntPtr(i int) *int { return &i }

func CreateGroup(t *testing.T, repo group.Repository, subject, name string, members ...string) group.Group {
	t.Helper()
	if members == nil {
		members = []string{}
	}
	grp, err := repo.InsertGroup(group.Group{Subject: subject, Name: name, Members: members})
	if err != nil {
		t.Fatalf("CreateGroup() failed: %v", err)
	}
	return grp
}

func CreateUpload(t *testing.T, repo project.Repository, subject, title, deadline string) project.Upload {
	t.Helper()
	upload, err := repo.AppendUpload(project.Upload{
		Subject:  subject,
		Title:    title,
		Type:     project.TypeURL,
		Value:    "https://example.com/" + title,
		Deadline: deadline,
	})
	if err != nil {
		t.Fatalf("CreateUpload() failed: %v", err)
	}
	return upload
}

func CreateSubmission(t *testing.T, repo submission.Repository, sub submission.Submission) submission.Submission {
	t.Helper()
	sub, err := repo.AppendSubmission(sub)
	if err != nil {
		t.Fatalf("CreateSubmission() failed: %v", err)
	}
	return sub
}
