package service

import (
	"context"
	"fmt"
	"strings"

	"clarity/internal/errors"
	"clarity/internal/model"
	"clarity/internal/registry"
	"clarity/internal/repository"
)

// Generator produces an assistant reply for the conversation so far.
type Generator interface {
	Generate(ctx context.Context, history []model.Message) (string, error)
}

// ConversationService orchestrates message exchanges with the LLM. Failed
// exchanges are rolled back before persisting, so they leave no partial trace
// in the stored transcript.
type ConversationService interface {
	SendMessage(ctx context.Context, userID, taskID, message string) (*model.Task, error)
	ImproveMessage(ctx context.Context, userID, taskID, messageID, feedback string) (*model.Task, error)
}

type conversationService struct {
	users     repository.UserRepository
	tasks     repository.TaskRepository
	registry  *registry.Registry
	generator Generator
}

// NewConversationService creates a conversation service.
func NewConversationService(users repository.UserRepository, tasks repository.TaskRepository, reg *registry.Registry, generator Generator) ConversationService {
	return &conversationService{users: users, tasks: tasks, registry: reg, generator: generator}
}

func (s *conversationService) resolve(ctx context.Context, userID, taskID string) (*model.Task, error) {
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

// SendMessage appends the user's message, generates a reply over the bounded
// context window, and persists. On generation failure the user message is
// rolled back and the rolled-back state persisted before surfacing the error.
func (s *conversationService) SendMessage(ctx context.Context, userID, taskID, message string) (*model.Task, error) {
	task, err := s.resolve(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	task.AddMessage("user", message, nil)

	reply, err := s.generator.Generate(ctx, task.Messages)
	if err != nil {
		task.RemoveLast("user")
		_ = s.tasks.Save(ctx, task)
		return nil, fmt.Errorf("%w: %v", errors.ErrGenerationFailed, err)
	}

	task.AddMessage("assistant", strings.TrimSpace(reply), map[string]any{"format": "markdown"})
	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	s.registry.SetActive(userID, task.ID)
	return task, nil
}

// ImproveMessage revises a prior assistant reply using the user's feedback.
// The rollback also removes the appended assistant message when generation
// fails mid-protocol.
func (s *conversationService) ImproveMessage(ctx context.Context, userID, taskID, messageID, feedback string) (*model.Task, error) {
	task, err := s.resolve(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	idx := task.MessageIndex(messageID)
	if idx < 0 {
		return nil, errors.ErrMessageNotFound
	}
	if task.Messages[idx].Role != "assistant" {
		return nil, errors.ErrNotAssistantMessage
	}

	instruction := fmt.Sprintf(
		"Improve your earlier response (message id: %s). User feedback:\n%s\nRevise the answer, keeping correct parts while addressing the feedback.",
		messageID, feedback,
	)
	task.AddMessage("user", instruction, map[string]any{
		"kind":              "improve_feedback",
		"target_message_id": messageID,
		"feedback":          feedback,
	})

	reply, err := s.generator.Generate(ctx, task.Messages)
	if err != nil {
		task.RemoveLast("assistant")
		task.RemoveLast("user")
		_ = s.tasks.Save(ctx, task)
		return nil, fmt.Errorf("%w: %v", errors.ErrImproveFailed, err)
	}

	task.AddMessage("assistant", strings.TrimSpace(reply), map[string]any{
		"kind":              "improved_response",
		"target_message_id": messageID,
		"format":            "markdown",
	})
	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	s.registry.SetActive(userID, task.ID)
	return task, nil
}
