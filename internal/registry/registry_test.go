package registry

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"clarity/internal/model"
)

// MockTaskRepository is a mock implementation of repository.TaskRepository.
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) LoadHistory(ctx context.Context, userID string) map[string]json.RawMessage {
	args := m.Called(ctx, userID)
	return args.Get(0).(map[string]json.RawMessage)
}

func (m *MockTaskRepository) Save(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func TestHydrate_ReconstructsPersistedTasks(t *testing.T) {
	repo := new(MockTaskRepository)
	repo.On("LoadHistory", mock.Anything, "user-1").Return(map[string]json.RawMessage{
		"100": json.RawMessage(`{"id": "100", "user_id": "user-1", "name": "Stored"}`),
		"bad": json.RawMessage(`["broken"]`),
	})

	reg := New(repo)
	tasks := reg.Hydrate(context.Background(), "user-1")

	require.Len(t, tasks, 1)
	assert.Equal(t, "Stored", tasks[0].Name)

	task, ok := reg.Get("100", "user-1")
	require.True(t, ok)
	assert.Equal(t, "100", task.ID)
	repo.AssertExpectations(t)
}

func TestHydrate_MemoryWinsOverDiskState(t *testing.T) {
	repo := new(MockTaskRepository)
	repo.On("LoadHistory", mock.Anything, "user-1").Return(map[string]json.RawMessage{
		"100": json.RawMessage(`{"id": "100", "user_id": "user-1", "name": "Stale", "iterations": 0}`),
	})

	reg := New(repo)
	resident := model.NewTask("user-1", "Fresh", "General")
	resident.ID = "100"
	resident.AddMessage("user", "hello", nil)
	reg.Put(resident)

	tasks := reg.Hydrate(context.Background(), "user-1")

	require.Len(t, tasks, 1)
	assert.Same(t, resident, tasks[0])
	assert.Equal(t, 1, tasks[0].Iterations)
}

func TestHydrate_FillsMissingOwner(t *testing.T) {
	repo := new(MockTaskRepository)
	repo.On("LoadHistory", mock.Anything, "user-1").Return(map[string]json.RawMessage{
		"100": json.RawMessage(`{"id": "100", "name": "No owner"}`),
	})

	reg := New(repo)
	tasks := reg.Hydrate(context.Background(), "user-1")

	require.Len(t, tasks, 1)
	assert.Equal(t, "user-1", tasks[0].UserID)
}

func TestGet_RejectsCrossUserLookup(t *testing.T) {
	reg := New(new(MockTaskRepository))
	task := model.NewTask("user-1", "Mine", "General")
	reg.Put(task)

	_, ok := reg.Get(task.ID, "user-2")
	assert.False(t, ok)

	got, ok := reg.Get(task.ID, "user-1")
	require.True(t, ok)
	assert.Same(t, task, got)
}

func TestActiveMapping(t *testing.T) {
	reg := New(new(MockTaskRepository))

	assert.Empty(t, reg.Active("user-1"))

	reg.SetActive("user-1", "100")
	assert.Equal(t, "100", reg.Active("user-1"))

	// Clearing a different task is a no-op.
	reg.ClearActive("user-1", "999")
	assert.Equal(t, "100", reg.Active("user-1"))

	reg.ClearActive("user-1", "100")
	assert.Empty(t, reg.Active("user-1"))
}
