package inmemdb

import (
	"sync"

	"github.com/classportal/backend/core/grade"
	"github.com/classportal/backend/core/group"
	"github.com/classportal/backend/core/project"
	"github.com/classportal/backend/core/session"
	"github.com/classportal/backend/core/submission"
)

type (
	// DB holds the whole portal state for the lifetime of the process.
	DB struct {
		group      *groupTable
		project    *projectTable
		submission *submissionTable
		grade      *gradeTable
		session    *sessionTable
	}

	groupTable struct {
		sync.RWMutex
		table     map[string][]*group.Group // {subject: groups in creation order}
		sequences map[string]int            // {subject: last auto-name number}
		deadlines map[string]string         // {subject: group formation deadline}
	}

	projectTable struct {
		sync.RWMutex
		table []*project.Upload
	}

	submissionTable struct {
		sync.RWMutex
		table []*submission.Submission
	}

	gradeTable struct {
		sync.RWMutex
		table map[string]*grade.Grade // {submissionID: grade}
	}

	sessionTable struct {
		sync.RWMutex
		table map[string]*session.Session
	}
)

func Open() (*DB, error) {
	db := &DB{
		group: &groupTable{
			table:     make(map[string][]*group.Group),
			sequences: make(map[string]int),
			deadlines: make(map[string]string),
		},
		project:    &projectTable{table: make([]*project.Upload, 0)},
		submission: &submissionTable{table: make([]*submission.Submission, 0)},
		grade:      &gradeTable{table: make(map[string]*grade.Grade)},
		session:    &sessionTable{table: make(map[string]*session.Session)},
	}
	return db, nil
}
