package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classportal/backend/core"
	"github.com/classportal/backend/core/session"
	inmemdb "github.com/classportal/backend/storage/database/inmem"
	"github.com/classportal/backend/testutil"
)

func TestService(t *testing.T) {
	db, err := inmemdb.Open()
	require.NoError(t, err)
	svc := session.NewService(inmemdb.NewSessionRepository(db), testutil.NewValidator(), "OS")

	for _, ns := range []session.NewSession{
		{Username: " ", Role: "teacher"},
		{Username: "alice", Role: "admin"},
		{Username: "alice"},
	} {
		_, err := svc.Start(ns)
		assert.True(t, core.IsValidation(err), "Start(%+v) error = %v", ns, err)
	}

	sess, err := svc.Start(session.NewSession{Username: " alice ", Role: "Student"})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "alice", sess.Username)
	assert.True(t, sess.IsStudent())
	assert.Equal(t, "OS", sess.ActiveSubject)

	_, err = svc.SelectSubject(sess.ID, session.SelectSubject{Subject: " "})
	assert.True(t, core.IsValidation(err))
	sess, err = svc.SelectSubject(sess.ID, session.SelectSubject{Subject: "Quantum Basket Weaving"})
	require.NoError(t, err)
	assert.Equal(t, "Quantum Basket Weaving", sess.ActiveSubject)

	require.NoError(t, svc.End(sess.ID))
	_, err = svc.Get(sess.ID)
	assert.True(t, core.IsNotFound(err))
}
