package service

import (
	"context"
	"sort"

	"clarity/internal/errors"
	"clarity/internal/model"
	"clarity/internal/registry"
	"clarity/internal/repository"
)

// MessagePage is one window of a task transcript, newest last. NextCursor
// points at the oldest message of the page when earlier history exists.
type MessagePage struct {
	Messages   []model.Message `json:"messages"`
	NextCursor *string         `json:"next_cursor"`
	HasMore    bool            `json:"has_more"`
}

// TaskService covers the task lifecycle apart from message exchanges.
type TaskService interface {
	Create(ctx context.Context, userID, name, category string) (*model.Task, error)
	Get(ctx context.Context, userID, taskID string) (*model.Task, error)
	List(ctx context.Context, userID string) ([]model.TaskSummary, error)
	Messages(ctx context.Context, userID, taskID, cursor string, limit int) (*MessagePage, error)
	Complete(ctx context.Context, userID, taskID string) (*model.Task, error)
	Switch(ctx context.Context, userID, taskID string) (*model.Task, error)
}

type taskService struct {
	users    repository.UserRepository
	tasks    repository.TaskRepository
	registry *registry.Registry
}

// NewTaskService creates a task lifecycle service.
func NewTaskService(users repository.UserRepository, tasks repository.TaskRepository, reg *registry.Registry) TaskService {
	return &taskService{users: users, tasks: tasks, registry: reg}
}

// resolve hydrates the user's tasks and returns the owner-checked task.
// taskID may be empty, in which case the user's active task is used.
func (s *taskService) resolve(ctx context.Context, userID, taskID string) (*model.Task, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	if taskID == "" {
		taskID = s.registry.Active(userID)
	}
	if taskID == "" {
		return nil, errors.ErrNoActiveTask
	}
	s.registry.Hydrate(ctx, userID)
	task, ok := s.registry.Get(taskID, userID)
	if !ok {
		return nil, errors.ErrTaskNotFound
	}
	return task, nil
}

// Create starts a new active task for the user and persists it.
func (s *taskService) Create(ctx context.Context, userID, name, category string) (*model.Task, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	if name == "" {
		name = "New Task"
	}
	task := model.NewTask(userID, name, category)
	s.registry.Put(task)
	s.registry.SetActive(userID, task.ID)
	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Get(ctx context.Context, userID, taskID string) (*model.Task, error) {
	s.registry.Hydrate(ctx, userID)
	task, ok := s.registry.Get(taskID, userID)
	if !ok {
		return nil, errors.ErrTaskNotFound
	}
	return task, nil
}

// List returns the user's task summaries ordered by most recent activity.
func (s *taskService) List(ctx context.Context, userID string) ([]model.TaskSummary, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	tasks := s.registry.Hydrate(ctx, userID)
	summaries := make([]model.TaskSummary, 0, len(tasks))
	for _, task := range tasks {
		summaries = append(summaries, task.Summary())
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].LastActivity > summaries[j].LastActivity
	})
	return summaries, nil
}

// Messages pages backwards through the transcript. The cursor is an exclusive
// upper bound message id; the page is the newest window before it.
func (s *taskService) Messages(ctx context.Context, userID, taskID, cursor string, limit int) (*MessagePage, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	s.registry.Hydrate(ctx, userID)
	task, ok := s.registry.Get(taskID, userID)
	if !ok {
		return nil, errors.ErrTaskNotFound
	}

	end := len(task.Messages)
	if cursor != "" {
		idx := task.MessageIndex(cursor)
		if idx < 0 {
			return nil, errors.ErrCursorNotFound
		}
		end = idx
	}
	start := max(0, end-limit)
	page := make([]model.Message, end-start)
	copy(page, task.Messages[start:end])

	result := &MessagePage{Messages: page, HasMore: start > 0}
	if result.HasMore && len(page) > 0 {
		result.NextCursor = &page[0].ID
	}
	return result, nil
}

// Complete marks the task done and clears the active mapping when it pointed
// at this exact task.
func (s *taskService) Complete(ctx context.Context, userID, taskID string) (*model.Task, error) {
	task, err := s.resolve(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	task.MarkCompleted()
	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	s.registry.ClearActive(userID, task.ID)
	return task, nil
}

// Switch makes the task the user's active one.
func (s *taskService) Switch(ctx context.Context, userID, taskID string) (*model.Task, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	s.registry.Hydrate(ctx, userID)
	task, ok := s.registry.Get(taskID, userID)
	if !ok {
		return nil, errors.ErrTaskNotFound
	}
	s.registry.SetActive(userID, taskID)
	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}
