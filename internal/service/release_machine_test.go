package service

import (
	"testing"

	"github.com/folioshelf/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextReleaseStatus(t *testing.T) {
	next, err := nextReleaseStatus(db.ReleaseStatusUnpublished)
	require.NoError(t, err)
	assert.Equal(t, db.ReleaseStatusPublished, next)

	next, err = nextReleaseStatus("")
	require.NoError(t, err)
	assert.Equal(t, db.ReleaseStatusPublished, next)

	_, err = nextReleaseStatus(db.ReleaseStatusPublished)
	assert.ErrorIs(t, err, ErrAlreadyPublished)

	_, err = nextReleaseStatus("archived")
	assert.ErrorIs(t, err, ErrAlreadyPublished)
}

func TestReleaseMachinePublishedIsFinal(t *testing.T) {
	interp, err := newReleaseMachine(db.ReleaseStatusPublished)
	require.NoError(t, err)
	assert.True(t, interp.Done())

	interp, err = newReleaseMachine(db.ReleaseStatusUnpublished)
	require.NoError(t, err)
	assert.False(t, interp.Done())
}
