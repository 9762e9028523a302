package service

import (
	"context"

	"clarity/internal/model"
	"clarity/internal/registry"
	"clarity/internal/repository"
	"clarity/internal/scoring"
)

// ReflectionInput is a post-task questionnaire submission.
type ReflectionInput struct {
	UserID     string
	TaskID     string
	Answers    map[string]any
	Iterations *int
	Duration   *int
	TaskMeta   map[string]any
}

// ReflectionService scores and records post-task reflections.
type ReflectionService interface {
	Questions(ctx context.Context) scoring.Bank
	Submit(ctx context.Context, input ReflectionInput) error
	Results(ctx context.Context, userID string) ([]model.Result, error)
}

type reflectionService struct {
	users     repository.UserRepository
	questions repository.QuestionRepository
	results   repository.ResultRepository
	registry  *registry.Registry
}

// NewReflectionService creates a reflection service.
func NewReflectionService(users repository.UserRepository, questions repository.QuestionRepository, results repository.ResultRepository, reg *registry.Registry) ReflectionService {
	return &reflectionService{users: users, questions: questions, results: results, registry: reg}
}

func (s *reflectionService) Questions(ctx context.Context) scoring.Bank {
	return s.questions.ReflectionBank(ctx)
}

// Submit scores the answers against the reflection bank and appends the
// record. Task metadata comes from the payload, falling back to the caller's
// own task when it resolves.
func (s *reflectionService) Submit(ctx context.Context, input ReflectionInput) error {
	if _, err := s.users.FindByID(ctx, input.UserID); err != nil {
		return err
	}
	answers := input.Answers
	if answers == nil {
		answers = map[string]any{}
	}
	taskMeta := input.TaskMeta
	if len(taskMeta) == 0 {
		taskMeta = s.taskMeta(ctx, input.TaskID, input.UserID)
	}
	score := scoring.Score(s.questions.ReflectionBank(ctx).Questions, answers)
	record := model.Result{
		Timestamp:  model.NowISO(),
		UserID:     input.UserID,
		TaskID:     input.TaskID,
		Answers:    answers,
		Iterations: input.Iterations,
		Duration:   input.Duration,
		Score:      &score,
		Context:    "reflection",
		TaskMeta:   taskMeta,
	}
	return s.results.Append(ctx, record)
}

func (s *reflectionService) Results(ctx context.Context, userID string) ([]model.Result, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.results.ListByUser(ctx, userID), nil
}

// taskMeta resolves {id, name, category} for the user's own task, or an
// empty map when the id is missing or owned by someone else.
func (s *reflectionService) taskMeta(ctx context.Context, taskID, userID string) map[string]any {
	if taskID == "" {
		return map[string]any{}
	}
	s.registry.Hydrate(ctx, userID)
	task, ok := s.registry.Get(taskID, userID)
	if !ok {
		return map[string]any{}
	}
	return map[string]any{
		"id":       task.ID,
		"name":     task.Name,
		"category": task.Category,
	}
}
