package service

import (
	"context"
	"testing"
	"time"

	"github.com/jauniforms/pricing-backend/internal/app/repository"
	"github.com/jauniforms/pricing-backend/internal/db"
	"github.com/jauniforms/pricing-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) (AuthService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	svc := NewAuthService(userRepo, "test-secret", time.Hour, 24*time.Hour, func() time.Time { return testClock })
	return svc, testDB
}

func TestRegister(t *testing.T) {
	svc, _ := setupAuthTest(t)

	user, tokens, err := svc.Register("jsmith", "jsmith@example.com", "password123", "Jordan", "Smith")
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "jsmith@example.com", user.Email)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.True(t, user.IsActive)
	require.NotNil(t, tokens)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	claims, err := util.ValidateToken(tokens.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
}

func TestRegister_Duplicates(t *testing.T) {
	svc, _ := setupAuthTest(t)

	_, _, err := svc.Register("jsmith", "jsmith@example.com", "password123", "", "")
	require.NoError(t, err)

	_, _, err = svc.Register("other", "jsmith@example.com", "password123", "", "")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	_, _, err = svc.Register("jsmith", "other@example.com", "password123", "", "")
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)
}

func TestLogin(t *testing.T) {
	svc, _ := setupAuthTest(t)

	registered, _, err := svc.Register("jsmith", "jsmith@example.com", "password123", "", "")
	require.NoError(t, err)

	user, tokens, err := svc.Login("jsmith@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, tokens.AccessToken)
	require.NotNil(t, user.LastLogin)
	assert.Equal(t, testClock, user.LastLogin.UTC())

	_, _, err = svc.Login("jsmith@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	svc, testDB := setupAuthTest(t)

	user, _, err := svc.Register("jsmith", "jsmith@example.com", "password123", "", "")
	require.NoError(t, err)

	require.NoError(t, testDB.Model(user).Update("is_active", false).Error)

	_, _, err = svc.Login("jsmith@example.com", "password123")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestLogout_InvalidTokenIsNoop(t *testing.T) {
	svc, _ := setupAuthTest(t)

	// Garbage and wrong-secret tokens need no blacklisting
	assert.NoError(t, svc.Logout(context.Background(), "not-a-token"))

	pair, err := util.GenerateTokenPair(1, "a@example.com", "user", "other-secret", time.Hour, time.Hour)
	require.NoError(t, err)
	assert.NoError(t, svc.Logout(context.Background(), pair.AccessToken))
}

func TestChangePassword(t *testing.T) {
	svc, _ := setupAuthTest(t)

	user, _, err := svc.Register("jsmith", "jsmith@example.com", "password123", "", "")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(user.ID, "wrong", "newpassword1"), ErrInvalidCredentials)
	assert.ErrorIs(t, svc.ChangePassword(9999, "password123", "newpassword1"), ErrUserNotFound)

	require.NoError(t, svc.ChangePassword(user.ID, "password123", "newpassword1"))

	_, _, err = svc.Login("jsmith@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login("jsmith@example.com", "newpassword1")
	assert.NoError(t, err)
}

func TestGetUserByID(t *testing.T) {
	svc, _ := setupAuthTest(t)

	user, _, err := svc.Register("jsmith", "jsmith@example.com", "password123", "", "")
	require.NoError(t, err)

	found, err := svc.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)

	_, err = svc.GetUserByID(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
