package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clarity/internal/service"
)

// OnboardingHandler handles onboarding status and baseline questionnaires.
type OnboardingHandler struct {
	onboarding service.OnboardingService
}

// NewOnboardingHandler creates a new onboarding handler.
func NewOnboardingHandler(onboarding service.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboarding: onboarding}
}

// OnboardingStatusResponse reports a user's onboarding state.
type OnboardingStatusResponse struct {
	UserID      string         `json:"user_id"`
	Completed   bool           `json:"completed"`
	CompletedAt *string        `json:"completed_at"`
	Answers     map[string]any `json:"answers"`
}

// SubmitBaselineRequest is an onboarding questionnaire submission.
type SubmitBaselineRequest struct {
	UserID     string         `json:"user_id" validate:"required"`
	TaskID     string         `json:"task_id"`
	Answers    map[string]any `json:"answers"`
	Iterations int            `json:"iterations"`
	Duration   int            `json:"duration"`
	TaskMeta   map[string]any `json:"task_meta"`
}

// BaselineQuestionsResponse wraps the baseline question bank.
type BaselineQuestionsResponse struct {
	Questions any `json:"questions"`
	Total     int `json:"total"`
	Requested int `json:"requested"`
}

// Status godoc
// @Summary Fetch onboarding status
// @Tags onboarding
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} OnboardingStatusResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /onboarding/status [get]
func (h *OnboardingHandler) Status(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return badRequest(c, "user_id is required")
	}
	entry, err := h.onboarding.Status(c.Request().Context(), userID)
	if err != nil {
		return errorJSON(c, err)
	}
	resp := OnboardingStatusResponse{
		UserID:    userID,
		Completed: entry.Completed,
		Answers:   entry.Answers,
	}
	if resp.Answers == nil {
		resp.Answers = map[string]any{}
	}
	if entry.CompletedAt != "" {
		completedAt := entry.CompletedAt
		resp.CompletedAt = &completedAt
	}
	return c.JSON(http.StatusOK, resp)
}

// BaselineQuestions godoc
// @Summary Fetch the baseline question bank
// @Tags onboarding
// @Produce json
// @Success 200 {object} BaselineQuestionsResponse
// @Router /baseline/questions [get]
func (h *OnboardingHandler) BaselineQuestions(c echo.Context) error {
	questions := h.onboarding.BaselineQuestions(c.Request().Context())
	return c.JSON(http.StatusOK, BaselineQuestionsResponse{
		Questions: questions,
		Total:     len(questions),
		Requested: len(questions),
	})
}

// SubmitBaseline godoc
// @Summary Submit baseline answers and mark onboarding complete
// @Tags onboarding
// @Accept json
// @Produce json
// @Param request body SubmitBaselineRequest true "Answers"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /baseline/submit [post]
func (h *OnboardingHandler) SubmitBaseline(c echo.Context) error {
	var req SubmitBaselineRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "user_id is required")
	}
	err := h.onboarding.SubmitBaseline(c.Request().Context(), service.BaselineInput{
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
	return c.JSON(http.StatusOK, map[string]any{"status": "ok", "completed": true})
}
