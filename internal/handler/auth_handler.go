package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"clarity/internal/model"
	"clarity/internal/service"
)

// AuthHandler handles signup and login.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignupRequest represents a user signup request.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// OnboardingStatus summarizes onboarding completion in auth responses.
type OnboardingStatus struct {
	Completed   bool    `json:"completed"`
	CompletedAt *string `json:"completed_at"`
}

// AuthResponse is returned by both signup and login.
type AuthResponse struct {
	User                 model.User       `json:"user"`
	CredentialsPlaintext bool             `json:"credentials_plaintext"`
	Onboarding           OnboardingStatus `json:"onboarding"`
}

func onboardingStatusOf(entry model.OnboardingEntry) OnboardingStatus {
	status := OnboardingStatus{Completed: entry.Completed}
	if entry.CompletedAt != "" {
		completedAt := entry.CompletedAt
		status.CompletedAt = &completedAt
	}
	return status
}

// Signup godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup data"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "name, email, and password are required")
	}

	user, entry, err := h.authService.Signup(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, AuthResponse{
		User:                 user.Sanitized(),
		CredentialsPlaintext: true,
		Onboarding:           onboardingStatusOf(entry),
	})
}

// Login godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "email and password are required")
	}

	user, entry, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, AuthResponse{
		User:                 user.Sanitized(),
		CredentialsPlaintext: true,
		Onboarding:           onboardingStatusOf(entry),
	})
}
