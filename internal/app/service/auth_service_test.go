package service

import (
	"testing"
	"time"

	"github.com/moonhaven/moonjournal-backend/internal/app/model"
	"github.com/moonhaven/moonjournal-backend/internal/app/storage"
	"github.com/moonhaven/moonjournal-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func setupAuthServiceTest(t *testing.T) AuthService {
	t.Helper()
	return NewAuthService(storage.NewMemoryStorage(), testJWTSecret, time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	svc := setupAuthServiceTest(t)

	user, err := svc.Register("admin", "correct-horse-battery")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "admin", user.Username)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEqual(t, "correct-horse-battery", user.PasswordHash)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	svc := setupAuthServiceTest(t)

	_, err := svc.Register("admin", "correct-horse-battery")
	require.NoError(t, err)

	_, err = svc.Register("admin", "another-password")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthService_Login(t *testing.T) {
	svc := setupAuthServiceTest(t)

	_, err := svc.Register("admin", "correct-horse-battery")
	require.NoError(t, err)

	token, user, err := svc.Login("admin", "correct-horse-battery")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)

	claims, err := util.ValidateAccessToken(token, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "admin", claims.Username)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := setupAuthServiceTest(t)

	_, err := svc.Register("admin", "correct-horse-battery")
	require.NoError(t, err)

	_, _, err = svc.Login("admin", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := setupAuthServiceTest(t)

	_, _, err := svc.Login("nobody", "irrelevant")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
