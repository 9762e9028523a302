package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"clarity/internal/service"
)

// TaskHandler handles the task lifecycle endpoints.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// NewTaskRequest creates a conversation task.
type NewTaskRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// TaskIDRequest targets a task, falling back to the active one when task_id
// is omitted.
type TaskIDRequest struct {
	UserID string `json:"user_id" validate:"required"`
	TaskID string `json:"task_id"`
}

// SwitchTaskRequest switches the user's active task.
type SwitchTaskRequest struct {
	UserID string `json:"user_id" validate:"required"`
	TaskID string `json:"task_id" validate:"required"`
}

// CompleteTaskResponse reports the closed task's final counters.
type CompleteTaskResponse struct {
	TaskID     string `json:"task_id"`
	ID         string `json:"id"`
	Duration   int    `json:"duration"`
	Iterations int    `json:"iterations"`
}

// NewTask godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body NewTaskRequest true "Task data"
// @Success 200 {object} model.TaskView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /new-task [post]
func (h *TaskHandler) NewTask(c echo.Context) error {
	var req NewTaskRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "user_id is required")
	}
	task, err := h.taskService.Create(c.Request().Context(), req.UserID, req.Name, req.Category)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, task.View())
}

// GetTask godoc
// @Summary Fetch one task
// @Tags tasks
// @Produce json
// @Param task_id path string true "Task ID"
// @Param user_id query string true "User ID"
// @Success 200 {object} model.TaskView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /get-task/{task_id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return badRequest(c, "user_id is required")
	}
	task, err := h.taskService.Get(c.Request().Context(), userID, c.Param("task_id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, task.View())
}

// TaskMessages godoc
// @Summary Paginate task messages
// @Tags tasks
// @Produce json
// @Param user_id query string true "User ID"
// @Param task_id query string true "Task ID"
// @Param cursor query string false "Exclusive upper-bound message id"
// @Param limit query int false "Page size, 1-100"
// @Success 200 {object} service.MessagePage
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /task-messages [get]
func (h *TaskHandler) TaskMessages(c echo.Context) error {
	userID := c.QueryParam("user_id")
	taskID := c.QueryParam("task_id")
	if userID == "" {
		return badRequest(c, "user_id is required")
	}
	if taskID == "" {
		return badRequest(c, "task_id is required")
	}

	limit := 20
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, "limit must be an integer")
		}
		limit = parsed
	}
	limit = min(100, max(1, limit))

	page, err := h.taskService.Messages(c.Request().Context(), userID, taskID, c.QueryParam("cursor"), limit)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// ListTasks godoc
// @Summary List task summaries, most recent activity first
// @Tags tasks
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {array} model.TaskSummary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /get-all-tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return badRequest(c, "user_id is required")
	}
	summaries, err := h.taskService.List(c.Request().Context(), userID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, summaries)
}

// CompleteTask godoc
// @Summary Complete a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body TaskIDRequest true "Task reference"
// @Success 200 {object} CompleteTaskResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /complete-task [post]
func (h *TaskHandler) CompleteTask(c echo.Context) error {
	var req TaskIDRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "user_id is required")
	}
	task, err := h.taskService.Complete(c.Request().Context(), req.UserID, req.TaskID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, CompleteTaskResponse{
		TaskID:     task.ID,
		ID:         task.ID,
		Duration:   task.Duration(),
		Iterations: task.Iterations,
	})
}

// SwitchTask godoc
// @Summary Switch the active task
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body SwitchTaskRequest true "Task reference"
// @Success 200 {object} model.TaskView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /switch-task [post]
func (h *TaskHandler) SwitchTask(c echo.Context) error {
	var req SwitchTaskRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "user_id and task_id are required")
	}
	task, err := h.taskService.Switch(c.Request().Context(), req.UserID, req.TaskID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, task.View())
}
