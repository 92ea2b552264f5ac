package service

import (
	"testing"

	"github.com/formpulse/formpulse/internal/auth"
	"github.com/formpulse/formpulse/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestRegisterAndLogin(t *testing.T) {
	users := newStubUserRepository()
	svc := NewAuthService(users, testSecret)

	registered, err := svc.Register(dto.RegisterRequest{
		Email:    "dana@example.com",
		Password: "hunter2hunter2",
		Name:     "Dana",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "dana@example.com", registered.User.Email)

	// stored hash is not the raw password
	stored := users.users["dana@example.com"]
	assert.NotEqual(t, "hunter2hunter2", stored.PasswordHash)

	loggedIn, err := svc.Login(dto.LoginRequest{Email: "dana@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)

	claims, err := auth.ParseToken(testSecret, loggedIn.Token)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, claims.UserID)
	assert.Equal(t, "dana@example.com", claims.Email)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	users := newStubUserRepository()
	svc := NewAuthService(users, testSecret)

	_, err := svc.Register(dto.RegisterRequest{Email: "a@b.com", Password: "password123", Name: "A"})
	require.NoError(t, err)

	_, err = svc.Register(dto.RegisterRequest{Email: "a@b.com", Password: "password123", Name: "A"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	users := newStubUserRepository()
	svc := NewAuthService(users, testSecret)

	_, err := svc.Login(dto.LoginRequest{Email: "ghost@example.com", Password: "whatever123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Register(dto.RegisterRequest{Email: "a@b.com", Password: "password123", Name: "A"})
	require.NoError(t, err)

	_, err = svc.Login(dto.LoginRequest{Email: "a@b.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	users := newStubUserRepository()
	svc := NewAuthService(users, testSecret)

	registered, err := svc.Register(dto.RegisterRequest{Email: "a@b.com", Password: "password123", Name: "A"})
	require.NoError(t, err)

	_, err = auth.ParseToken("other-secret", registered.Token)
	assert.Error(t, err)
}
