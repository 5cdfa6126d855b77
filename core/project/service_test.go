package project_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classportal/backend/core"
	"github.com/classportal/backend/core/project"
	inmemdb "github.com/classportal/backend/storage/database/inmem"
	"github.com/classportal/backend/testutil"
)

func newService(t *testing.T) *project.Service {
	db, err := inmemdb.Open()
	require.NoError(t, err)
	return project.NewService(inmemdb.NewProjectRepository(db), testutil.NewValidator())
}

func fieldErrors(t *testing.T, err error) map[string]string {
	var vErr *core.ValidationError
	require.True(t, errors.As(err, &vErr), "error = %v", err)
	flds := make(map[string]string, len(vErr.Fields))
	for _, f := range vErr.Fields {
		flds[f.Field] = f.Error
	}
	return flds
}

func TestService_AddUpload(t *testing.T) {
	svc := newService(t)

	tests := []struct {
		name       string
		nu         project.NewUpload
		wantFields map[string]string
	}{
		{
			name:       "blank title",
			nu:         project.NewUpload{Subject: "OS", Title: " ", Type: "url", URL: "https://x.io"},
			wantFields: map[string]string{"title": "this field cannot be blank"},
		},
		{
			name:       "unknown type",
			nu:         project.NewUpload{Subject: "OS", Title: "Lab1", Type: "zip"},
			wantFields: map[string]string{"type": "type must be one of [pdf url]"},
		},
		{
			name:       "missing type",
			nu:         project.NewUpload{Subject: "OS", Title: "Lab1"},
			wantFields: map[string]string{"type": "this field is required"},
		},
		{
			name:       "url without URL",
			nu:         project.NewUpload{Subject: "OS", Title: "Lab1", Type: "url"},
			wantFields: map[string]string{"url": "please enter a URL"},
		},
		{
			name:       "pdf without file",
			nu:         project.NewUpload{Subject: "OS", Title: "Lab1", Type: "pdf", URL: "https://x.io"},
			wantFields: map[string]string{"file": "please choose a PDF file"},
		},
		{
			name: "pdf",
			nu:   project.NewUpload{Subject: "OS", Title: "Lab1", Description: "first lab", Type: "PDF", File: "lab1.pdf", Deadline: "2024-05-01T10:00"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upload, err := svc.AddUpload(tt.nu)
			if tt.wantFields != nil {
				assert.Equal(t, tt.wantFields, fieldErrors(t, err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, project.TypePDF, upload.Type)
			assert.Equal(t, "lab1.pdf", upload.Value)
			assert.Equal(t, 0, upload.Index)
			assert.False(t, upload.CreatedAt.IsZero())
		})
	}

	uploads, err := svc.ListForSubject("OS")
	require.NoError(t, err)
	assert.Len(t, uploads, 1, "rejected uploads must not be stored")
}

func TestService_SetDeadline(t *testing.T) {
	svc := newService(t)
	_, err := svc.AddUpload(project.NewUpload{Subject: "OS", Title: "Lab1", Type: "url", URL: "https://x.io"})
	require.NoError(t, err)
	// same title is allowed
	_, err = svc.AddUpload(project.NewUpload{Subject: "OS", Title: "Lab1", Type: "url", URL: "https://y.io"})
	require.NoError(t, err)

	upload, err := svc.SetDeadline(1, "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", upload.Deadline)
	deadline, ok := upload.DeadlineTime()
	assert.True(t, ok)
	assert.Equal(t, 2024, deadline.Year())

	upload, err = svc.SetDeadline(0, "not a date")
	require.NoError(t, err)
	_, ok = upload.DeadlineTime()
	assert.False(t, ok)

	_, err = svc.SetDeadline(2, "2024-05-01")
	assert.True(t, core.IsNotFound(err))
}
