package service

import (
	"context"
	"testing"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/config"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (AuthService, *stubUserRepo) {
	repo := newStubUserRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
	return NewAuthService(repo, cfg), repo
}

func TestAuth_RegisterAndLogin(t *testing.T) {
	svc, _ := newAuthFixture()

	reg, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "baker@example.com",
		Password: "rahasia123",
		Name:     "Baker",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.AccessToken)
	assert.NotEmpty(t, reg.RefreshToken)
	assert.Equal(t, "bearer", reg.TokenType)
	assert.Equal(t, 8*3600, reg.ExpiresIn)
	assert.Equal(t, "baker@example.com", reg.User.Email)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "baker@example.com", Password: "rahasia123",
	})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
}

func TestAuth_RegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email: "baker@example.com", Password: "rahasia123", Name: "Baker",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), dto.RegisterRequest{
		Email: "baker@example.com", Password: "lain456", Name: "Impostor",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuth_LoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email: "baker@example.com", Password: "rahasia123", Name: "Baker",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email: "baker@example.com", Password: "salah",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email: "nobody@example.com", Password: "rahasia123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuth_RefreshRotatesTokens(t *testing.T) {
	svc, _ := newAuthFixture()

	reg, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email: "baker@example.com", Password: "rahasia123", Name: "Baker",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), reg.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, refreshed.User.ID)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuth_RefreshRejectsDeactivatedUser(t *testing.T) {
	svc, repo := newAuthFixture()

	reg, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email: "baker@example.com", Password: "rahasia123", Name: "Baker",
	})
	require.NoError(t, err)

	for _, u := range repo.users {
		u.Active = false
	}
	_, err = svc.Refresh(context.Background(), reg.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
