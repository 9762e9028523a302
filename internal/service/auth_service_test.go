package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clarity/internal/errors"
	"clarity/internal/model"
)

func TestAuthService_SignupAndLogin(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.users, env.onboarding)
	ctx := context.Background()

	user, entry, err := svc.Signup(ctx, "Test User", "test@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.False(t, entry.Completed)

	loggedIn, _, err := svc.Login(ctx, "test@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestAuthService_DuplicateEmailIsCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.users, env.onboarding)
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "First", "Someone@Example.com", "pw")
	require.NoError(t, err)

	_, _, err = svc.Signup(ctx, "Second", "someone@example.COM", "pw2")
	assert.ErrorIs(t, err, errors.ErrEmailTaken)
}

func TestAuthService_LoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.users, env.onboarding)
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "Test", "test@example.com", "right")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "test@example.com", "wrong")
	assert.ErrorIs(t, err, errors.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "unknown@example.com", "right")
	assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
}

func TestAuthService_LoginReportsOnboardingState(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.users, env.onboarding)
	ctx := context.Background()

	user := env.createUser(t, "Test", "test@example.com")
	require.NoError(t, env.onboarding.Put(ctx, user.ID, model.OnboardingEntry{
		Completed:   true,
		CompletedAt: model.NowISO(),
	}))

	_, entry, err := svc.Login(ctx, "test@example.com", "secret")
	require.NoError(t, err)
	assert.True(t, entry.Completed)
	assert.NotEmpty(t, entry.CompletedAt)
}
