package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"clarity/internal/model"
	"clarity/internal/registry"
	"clarity/internal/repository"
	"clarity/internal/scoring"
	"clarity/internal/store"
)

// MockGenerator is a mock implementation of Generator.
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, history []model.Message) (string, error) {
	args := m.Called(ctx, history)
	return args.String(0), args.Error(1)
}

// testEnv wires real file-backed repositories into a temp data directory.
type testEnv struct {
	dir        string
	store      *store.Store
	users      repository.UserRepository
	tasks      repository.TaskRepository
	results    repository.ResultRepository
	onboarding repository.OnboardingRepository
	questions  repository.QuestionRepository
	registry   *registry.Registry
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	fileStore := store.New()
	taskRepo := repository.NewTaskRepository(fileStore, filepath.Join(dir, "task_history"))
	return &testEnv{
		dir:   dir,
		store: fileStore,
		users: repository.NewUserRepository(fileStore, filepath.Join(dir, "users.json")),
		tasks: taskRepo,
		results: repository.NewResultRepository(fileStore,
			filepath.Join(dir, "results.json"), filepath.Join(dir, "clarity_results.json")),
		onboarding: repository.NewOnboardingRepository(fileStore, filepath.Join(dir, "onboarding_responses.json")),
		questions: repository.NewQuestionRepository(fileStore, nil,
			filepath.Join(dir, "questions.json"),
			filepath.Join(dir, "clarity_questions.json"),
			filepath.Join(dir, "prompt_hacks.json")),
		registry: registry.New(taskRepo),
	}
}

func (e *testEnv) seedReflectionBank(t *testing.T, bank scoring.Bank) {
	t.Helper()
	require.NoError(t, store.Write(e.store, filepath.Join(e.dir, "questions.json"), bank))
}

func (e *testEnv) seedClarityBank(t *testing.T, bank scoring.Bank) {
	t.Helper()
	require.NoError(t, store.Write(e.store, filepath.Join(e.dir, "clarity_questions.json"), bank))
}

func (e *testEnv) createUser(t *testing.T, name, email string) *model.User {
	t.Helper()
	user, err := e.users.Create(context.Background(), name, email, "secret")
	require.NoError(t, err)
	return user
}
