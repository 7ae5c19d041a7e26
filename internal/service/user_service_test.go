package service

import (
	"testing"

	"github.com/folioshelf/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_Authenticate(t *testing.T) {
	gdb := setupReleaseServiceTestDB(t)

	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, gdb.Create(&db.User{UID: "U1", Username: "editor", Password: string(hashed)}).Error)

	svc := NewUserService(gdb)

	user, err := svc.Authenticate(" editor ", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "U1", user.UID)

	_, err = svc.Authenticate("editor", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate("nobody", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
