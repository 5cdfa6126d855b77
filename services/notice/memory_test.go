package noticesvc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryNotifier(t *testing.T) {
	ctx := context.Background()
	n := NewMemoryNotifier(50 * time.Millisecond)

	msg, err := n.Current(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, msg)

	require.NoError(t, n.Notify(ctx, "s1", `Project "Lab1" uploaded for OS!`))
	msg, _ = n.Current(ctx, "s1")
	assert.Equal(t, `Project "Lab1" uploaded for OS!`, msg)

	other, _ := n.Current(ctx, "s2")
	assert.Empty(t, other)

	assert.Eventually(t, func() bool {
		msg, _ := n.Current(ctx, "s1")
		return msg == ""
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryNotifier_replacedNoticeSurvivesOldTimer(t *testing.T) {
	n := NewMemoryNotifier(time.Hour)
	require.NoError(t, n.Notify(context.Background(), "s1", "first"))
	require.NoError(t, n.Notify(context.Background(), "s1", "second"))

	n.clear("s1", 1) // the first notice's timer firing late
	msg, _ := n.Current(context.Background(), "s1")
	assert.Equal(t, "second", msg)

	n.clear("s1", 2)
	msg, _ = n.Current(context.Background(), "s1")
	assert.Empty(t, msg)
}
