package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"clarity/internal/service"
)

// ChatHandler handles message exchanges with the assistant.
type ChatHandler struct {
	conversations service.ConversationService
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(conversations service.ConversationService) *ChatHandler {
	return &ChatHandler{conversations: conversations}
}

// SendMessageRequest carries one user message. task_id falls back to the
// user's active task.
type SendMessageRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	TaskID  string `json:"task_id"`
	Message string `json:"message"`
}

// ImproveMessageRequest asks for a revision of a prior assistant reply.
type ImproveMessageRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	TaskID    string `json:"task_id"`
	MessageID string `json:"message_id" validate:"required"`
	Feedback  string `json:"feedback"`
}

// SendMessage godoc
// @Summary Send a message and get the assistant reply
// @Tags chat
// @Accept json
// @Produce json
// @Param request body SendMessageRequest true "Message"
// @Success 200 {object} model.TaskView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /send-message [post]
func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "user_id is required")
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return badRequest(c, "message is required")
	}

	task, err := h.conversations.SendMessage(c.Request().Context(), req.UserID, req.TaskID, message)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, task.View())
}

// ImproveMessage godoc
// @Summary Revise a prior assistant reply with user feedback
// @Tags chat
// @Accept json
// @Produce json
// @Param request body ImproveMessageRequest true "Feedback"
// @Success 200 {object} model.TaskView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /improve-message [post]
func (h *ChatHandler) ImproveMessage(c echo.Context) error {
	var req ImproveMessageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "user_id and message_id are required")
	}
	feedback := strings.TrimSpace(req.Feedback)
	if feedback == "" {
		return badRequest(c, "feedback is required")
	}

	task, err := h.conversations.ImproveMessage(c.Request().Context(), req.UserID, req.TaskID, req.MessageID, feedback)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, task.View())
}
