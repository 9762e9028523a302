package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clarity/internal/repository"
	"clarity/internal/service"
)

// ReflectionHandler handles reflection questionnaires and the prompt-hack
// tips list.
type ReflectionHandler struct {
	reflections service.ReflectionService
	questions   repository.QuestionRepository
}

// NewReflectionHandler creates a new reflection handler.
func NewReflectionHandler(reflections service.ReflectionService, questions repository.QuestionRepository) *ReflectionHandler {
	return &ReflectionHandler{reflections: reflections, questions: questions}
}

// SubmitReflectionRequest is a scored questionnaire submission.
type SubmitReflectionRequest struct {
	UserID     string         `json:"user_id" validate:"required"`
	TaskID     string         `json:"task_id"`
	Answers    map[string]any `json:"answers"`
	Iterations *int           `json:"iterations"`
	Duration   *int           `json:"duration"`
	TaskMeta   map[string]any `json:"task_meta"`
}

// Questions godoc
// @Summary Fetch the reflection question bank
// @Tags reflection
// @Produce json
// @Success 200 {object} scoring.Bank
// @Router /reflection/questions [get]
func (h *ReflectionHandler) Questions(c echo.Context) error {
	return c.JSON(http.StatusOK, h.reflections.Questions(c.Request().Context()))
}

// Submit godoc
// @Summary Submit scored reflection answers
// @Tags reflection
// @Accept json
// @Produce json
// @Param request body SubmitReflectionRequest true "Answers"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /reflection/submit [post]
func (h *ReflectionHandler) Submit(c echo.Context) error {
	var req SubmitReflectionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "user_id is required")
	}
	err := h.reflections.Submit(c.Request().Context(), service.ReflectionInput{
		UserID:     req.UserID,
		TaskID:     req.TaskID,
		Answers:    req.Answers,
		Iterations: req.Iterations,
		Duration:   req.Duration,
		TaskMeta:   req.TaskMeta,
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Results godoc
// @Summary List the user's reflection results
// @Tags reflection
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {array} model.Result
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /reflection/results [get]
func (h *ReflectionHandler) Results(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return badRequest(c, "user_id is required")
	}
	results, err := h.reflections.Results(c.Request().Context(), userID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, results)
}

// PromptHacks godoc
// @Summary List prompt-hack tips
// @Tags reflection
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /prompt-hacks [get]
func (h *ReflectionHandler) PromptHacks(c echo.Context) error {
	hacks := h.questions.PromptHacks(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]any{"hacks": hacks})
}
