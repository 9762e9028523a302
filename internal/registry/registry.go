// Package registry owns the in-memory tasks during process lifetime. The
// file store remains the durable source of truth; tasks are hydrated from it
// on demand and memory always wins over stale disk state.
package registry

import (
	"context"
	"sync"

	"clarity/internal/model"
	"clarity/internal/repository"
)

// Registry maps task ids to resident tasks and users to their active task.
// It is constructed once in main and injected into the services that need it.
type Registry struct {
	mu     sync.RWMutex
	tasks  map[string]*model.Task
	active map[string]string
	repo   repository.TaskRepository
}

// New creates an empty registry backed by the given task repository.
func New(repo repository.TaskRepository) *Registry {
	return &Registry{
		tasks:  map[string]*model.Task{},
		active: map[string]string{},
		repo:   repo,
	}
}

// Hydrate loads the user's persisted tasks, reconstructing any not already
// resident under that owner, and returns the user's full task set. Resident
// tasks are never overwritten by disk state.
func (r *Registry) Hydrate(ctx context.Context, userID string) []*model.Task {
	stored := r.repo.LoadHistory(ctx, userID)

	r.mu.Lock()
	defer r.mu.Unlock()

	hydrated := make([]*model.Task, 0, len(stored))
	for taskID, raw := range stored {
		if existing, ok := r.tasks[taskID]; ok && existing.UserID == userID {
			hydrated = append(hydrated, existing)
			continue
		}
		task, err := model.TaskFromRecord(raw)
		if err != nil {
			continue
		}
		if task.UserID == "" {
			task.UserID = userID
		}
		r.tasks[task.ID] = task
		hydrated = append(hydrated, task)
	}
	return hydrated
}

// Get resolves a task for the requesting user. A task owned by someone else
// is treated as not found, so guessed identifiers never cross users.
func (r *Registry) Get(taskID, userID string) (*model.Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	task, ok := r.tasks[taskID]
	if !ok || task.UserID != userID {
		return nil, false
	}
	return task, true
}

// Put registers a newly created task.
func (r *Registry) Put(task *model.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[task.ID] = task
}

// SetActive records the user's currently active task.
func (r *Registry) SetActive(userID, taskID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active[userID] = taskID
}

// Active returns the user's active task id, or "".
func (r *Registry) Active(userID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active[userID]
}

// ClearActive drops the active mapping only when it still points at taskID.
func (r *Registry) ClearActive(userID, taskID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active[userID] == taskID {
		delete(r.active, userID)
	}
}
