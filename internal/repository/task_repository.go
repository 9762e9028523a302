package repository

import (
	"context"
	"encoding/json"
	"path/filepath"

	"clarity/internal/model"
	"clarity/internal/store"
)

// TaskRepository persists per-user task history documents, one JSON file per
// user keyed by task id.
type TaskRepository interface {
	LoadHistory(ctx context.Context, userID string) map[string]json.RawMessage
	Save(ctx context.Context, task *model.Task) error
}

type taskRepository struct {
	store *store.Store
	dir   string
}

// NewTaskRepository builds a task-history repository rooted at dir.
func NewTaskRepository(s *store.Store, dir string) TaskRepository {
	return &taskRepository{store: s, dir: dir}
}

func (r *taskRepository) historyPath(userID string) string {
	return filepath.Join(r.dir, userID+".json")
}

// LoadHistory returns the user's persisted task documents, empty when the
// user has none or the document is unreadable.
func (r *taskRepository) LoadHistory(ctx context.Context, userID string) map[string]json.RawMessage {
	if userID == "" {
		return map[string]json.RawMessage{}
	}
	return store.Read(r.store, r.historyPath(userID), map[string]json.RawMessage{})
}

// Save upserts the task's full view into its owner's history document.
func (r *taskRepository) Save(ctx context.Context, task *model.Task) error {
	if task.UserID == "" {
		return nil
	}
	raw, err := json.Marshal(task.View())
	if err != nil {
		return err
	}
	_, err = store.Update(r.store, r.historyPath(task.UserID), map[string]json.RawMessage{},
		func(stored map[string]json.RawMessage) (map[string]json.RawMessage, error) {
			if stored == nil {
				stored = map[string]json.RawMessage{}
			}
			stored[task.ID] = raw
			return stored, nil
		})
	return err
}
