package repository

import (
	"context"

	"clarity/internal/model"
	"clarity/internal/store"
)

// OnboardingRepository stores per-user onboarding state, at most one live
// entry per user.
type OnboardingRepository interface {
	Get(ctx context.Context, userID string) (model.OnboardingEntry, bool)
	Put(ctx context.Context, userID string, entry model.OnboardingEntry) error
}

type onboardingRepository struct {
	store *store.Store
	path  string
}

// NewOnboardingRepository builds a repository over onboarding_responses.json.
func NewOnboardingRepository(s *store.Store, path string) OnboardingRepository {
	return &onboardingRepository{store: s, path: path}
}

func (r *onboardingRepository) Get(ctx context.Context, userID string) (model.OnboardingEntry, bool) {
	doc := store.Read(r.store, r.path, map[string]model.OnboardingEntry{})
	entry, ok := doc[userID]
	return entry, ok
}

// Put overwrites the user's entry, replacing any previous submission.
func (r *onboardingRepository) Put(ctx context.Context, userID string, entry model.OnboardingEntry) error {
	_, err := store.Update(r.store, r.path, map[string]model.OnboardingEntry{},
		func(doc map[string]model.OnboardingEntry) (map[string]model.OnboardingEntry, error) {
			if doc == nil {
				doc = map[string]model.OnboardingEntry{}
			}
			doc[userID] = entry
			return doc, nil
		})
	return err
}
