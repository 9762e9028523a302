package service

import (
	"context"

	"clarity/internal/errors"
	"clarity/internal/model"
	"clarity/internal/repository"
)

// AuthService handles signup and login. Credentials are compared as
// plaintext by product contract; responses carry the sanitized user plus the
// caller's onboarding state.
type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*model.User, model.OnboardingEntry, error)
	Login(ctx context.Context, email, password string) (*model.User, model.OnboardingEntry, error)
}

type authService struct {
	users      repository.UserRepository
	onboarding repository.OnboardingRepository
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, onboarding repository.OnboardingRepository) AuthService {
	return &authService{users: users, onboarding: onboarding}
}

// Signup registers a user. A duplicate email, compared case-insensitively,
// yields errors.ErrEmailTaken.
func (s *authService) Signup(ctx context.Context, name, email, password string) (*model.User, model.OnboardingEntry, error) {
	user, err := s.users.Create(ctx, name, email, password)
	if err != nil {
		return nil, model.OnboardingEntry{}, err
	}
	entry, _ := s.onboarding.Get(ctx, user.ID)
	return user, entry, nil
}

// Login authenticates by email and plaintext password.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, model.OnboardingEntry, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil || user.Password != password {
		return nil, model.OnboardingEntry{}, errors.ErrInvalidCredentials
	}
	entry, _ := s.onboarding.Get(ctx, user.ID)
	return user, entry, nil
}
