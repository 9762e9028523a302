package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"clarity/internal/errors"
	"clarity/internal/model"
)

func TestSendMessage_AppendsExchangeAndPersists(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "Test", "test@example.com")

	taskSvc := NewTaskService(env.users, env.tasks, env.registry)
	task, err := taskSvc.Create(ctx, user.ID, "My Task", "General")
	require.NoError(t, err)

	generator := new(MockGenerator)
	generator.On("Generate", mock.Anything, mock.Anything).Return("  **reply**  ", nil)

	svc := NewConversationService(env.users, env.tasks, env.registry, generator)
	updated, err := svc.SendMessage(ctx, user.ID, task.ID, "help me plan")
	require.NoError(t, err)

	require.Len(t, updated.Messages, 2)
	assert.Equal(t, "user", updated.Messages[0].Role)
	assert.Equal(t, "help me plan", updated.Messages[0].Content)
	assert.Equal(t, "assistant", updated.Messages[1].Role)
	assert.Equal(t, "**reply**", updated.Messages[1].Content)
	assert.Equal(t, "markdown", updated.Messages[1].Metadata["format"])
	assert.Equal(t, 1, updated.Iterations)
	assert.Equal(t, task.ID, env.registry.Active(user.ID))

	// The exchange reached disk.
	stored := env.tasks.LoadHistory(ctx, user.ID)
	restored, err := model.TaskFromRecord(stored[task.ID])
	require.NoError(t, err)
	assert.Len(t, restored.Messages, 2)
	generator.AssertExpectations(t)
}

func TestSendMessage_RollsBackOnGenerationFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "Test", "test@example.com")

	taskSvc := NewTaskService(env.users, env.tasks, env.registry)
	task, err := taskSvc.Create(ctx, user.ID, "My Task", "General")
	require.NoError(t, err)

	okGen := new(MockGenerator)
	okGen.On("Generate", mock.Anything, mock.Anything).Return("fine", nil)
	_, err = NewConversationService(env.users, env.tasks, env.registry, okGen).
		SendMessage(ctx, user.ID, task.ID, "first")
	require.NoError(t, err)

	beforeMessages := len(task.Messages)
	beforeIterations := task.Iterations

	failing := new(MockGenerator)
	failing.On("Generate", mock.Anything, mock.Anything).Return("", assert.AnError)

	svc := NewConversationService(env.users, env.tasks, env.registry, failing)
	_, err = svc.SendMessage(ctx, user.ID, task.ID, "second")
	require.ErrorIs(t, err, errors.ErrGenerationFailed)

	assert.Len(t, task.Messages, beforeMessages)
	assert.Equal(t, beforeIterations, task.Iterations)

	// The rolled-back state was persisted, leaving no partial trace on disk.
	stored := env.tasks.LoadHistory(ctx, user.ID)
	restored, err := model.TaskFromRecord(stored[task.ID])
	require.NoError(t, err)
	assert.Len(t, restored.Messages, beforeMessages)
	assert.Equal(t, beforeIterations, restored.Iterations)
}

func TestSendMessage_FallsBackToActiveTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "Test", "test@example.com")

	taskSvc := NewTaskService(env.users, env.tasks, env.registry)
	task, err := taskSvc.Create(ctx, user.ID, "Active", "General")
	require.NoError(t, err)

	generator := new(MockGenerator)
	generator.On("Generate", mock.Anything, mock.Anything).Return("ok", nil)

	svc := NewConversationService(env.users, env.tasks, env.registry, generator)
	updated, err := svc.SendMessage(ctx, user.ID, "", "hello")
	require.NoError(t, err)
	assert.Equal(t, task.ID, updated.ID)
}

func TestSendMessage_NoActiveTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "Test", "test@example.com")

	svc := NewConversationService(env.users, env.tasks, env.registry, new(MockGenerator))
	_, err := svc.SendMessage(ctx, user.ID, "", "hello")
	assert.ErrorIs(t, err, errors.ErrNoActiveTask)
}

func TestSendMessage_RejectsForeignTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "Owner", "owner@example.com")
	intruder := env.createUser(t, "Intruder", "intruder@example.com")

	taskSvc := NewTaskService(env.users, env.tasks, env.registry)
	task, err := taskSvc.Create(ctx, owner.ID, "Private", "General")
	require.NoError(t, err)

	svc := NewConversationService(env.users, env.tasks, env.registry, new(MockGenerator))
	_, err = svc.SendMessage(ctx, intruder.ID, task.ID, "peek")
	assert.ErrorIs(t, err, errors.ErrTaskNotFound)
}

func TestImproveMessage_SynthesizesFeedbackInstruction(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "Test", "test@example.com")

	taskSvc := NewTaskService(env.users, env.tasks, env.registry)
	task, err := taskSvc.Create(ctx, user.ID, "My Task", "General")
	require.NoError(t, err)

	generator := new(MockGenerator)
	generator.On("Generate", mock.Anything, mock.Anything).Return("draft", nil).Once()
	generator.On("Generate", mock.Anything, mock.Anything).Return("\n better draft \n", nil).Once()

	svc := NewConversationService(env.users, env.tasks, env.registry, generator)
	_, err = svc.SendMessage(ctx, user.ID, task.ID, "write a draft")
	require.NoError(t, err)
	targetID := task.Messages[1].ID

	updated, err := svc.ImproveMessage(ctx, user.ID, task.ID, targetID, "make it shorter")
	require.NoError(t, err)

	require.Len(t, updated.Messages, 4)
	instruction := updated.Messages[2]
	assert.Equal(t, "user", instruction.Role)
	assert.Contains(t, instruction.Content, targetID)
	assert.Contains(t, instruction.Content, "make it shorter")
	assert.Equal(t, "improve_feedback", instruction.Metadata["kind"])

	improved := updated.Messages[3]
	assert.Equal(t, "better draft", improved.Content)
	assert.Equal(t, "improved_response", improved.Metadata["kind"])
	assert.Equal(t, targetID, improved.Metadata["target_message_id"])
}

func TestImproveMessage_ValidatesTarget(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "Test", "test@example.com")

	taskSvc := NewTaskService(env.users, env.tasks, env.registry)
	task, err := taskSvc.Create(ctx, user.ID, "My Task", "General")
	require.NoError(t, err)

	generator := new(MockGenerator)
	generator.On("Generate", mock.Anything, mock.Anything).Return("draft", nil)
	svc := NewConversationService(env.users, env.tasks, env.registry, generator)
	_, err = svc.SendMessage(ctx, user.ID, task.ID, "write a draft")
	require.NoError(t, err)

	_, err = svc.ImproveMessage(ctx, user.ID, task.ID, "msg-unknown", "feedback")
	assert.ErrorIs(t, err, errors.ErrMessageNotFound)

	userMessageID := task.Messages[0].ID
	_, err = svc.ImproveMessage(ctx, user.ID, task.ID, userMessageID, "feedback")
	assert.ErrorIs(t, err, errors.ErrNotAssistantMessage)
}

func TestImproveMessage_RollsBackBothMessagesOnFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "Test", "test@example.com")

	taskSvc := NewTaskService(env.users, env.tasks, env.registry)
	task, err := taskSvc.Create(ctx, user.ID, "My Task", "General")
	require.NoError(t, err)

	generator := new(MockGenerator)
	generator.On("Generate", mock.Anything, mock.Anything).Return("draft", nil).Once()
	generator.On("Generate", mock.Anything, mock.Anything).Return("", assert.AnError).Once()

	svc := NewConversationService(env.users, env.tasks, env.registry, generator)
	_, err = svc.SendMessage(ctx, user.ID, task.ID, "write a draft")
	require.NoError(t, err)

	beforeMessages := len(task.Messages)
	beforeIterations := task.Iterations
	targetID := task.Messages[1].ID

	_, err = svc.ImproveMessage(ctx, user.ID, task.ID, targetID, "feedback")
	require.ErrorIs(t, err, errors.ErrImproveFailed)

	assert.Len(t, task.Messages, beforeMessages)
	assert.Equal(t, beforeIterations, task.Iterations)
}
