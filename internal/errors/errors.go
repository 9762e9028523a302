package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user id does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrTaskNotFound is returned when a task is unknown or owned by another user.
	ErrTaskNotFound = errors.New("task not found")
	// ErrMessageNotFound is returned when a message id is not in the task.
	ErrMessageNotFound = errors.New("message not found")
	// ErrCursorNotFound is returned when a pagination cursor does not match a message.
	ErrCursorNotFound = errors.New("cursor not found")
	// ErrEmailTaken is returned when signing up with an already registered email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNoActiveTask is returned when no task id is given and none is active.
	ErrNoActiveTask = errors.New("no active task")
	// ErrNotAssistantMessage is returned when improving a non-assistant message.
	ErrNotAssistantMessage = errors.New("selected message is not an assistant response")
	// ErrGenerationFailed wraps upstream LLM failures on send-message.
	ErrGenerationFailed = errors.New("failed to generate response")
	// ErrImproveFailed wraps upstream LLM failures on improve-message.
	ErrImproveFailed = errors.New("failed to improve response")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrTaskNotFound):
		return NewHTTPError(http.StatusNotFound, ErrTaskNotFound.Error(), "TASK_NOT_FOUND")
	case errors.Is(err, ErrMessageNotFound):
		return NewHTTPError(http.StatusNotFound, ErrMessageNotFound.Error(), "MESSAGE_NOT_FOUND")
	case errors.Is(err, ErrCursorNotFound):
		return NewHTTPError(http.StatusBadRequest, ErrCursorNotFound.Error(), "CURSOR_NOT_FOUND")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, ErrEmailTaken.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrNoActiveTask):
		return NewHTTPError(http.StatusBadRequest, ErrNoActiveTask.Error(), "NO_ACTIVE_TASK")
	case errors.Is(err, ErrNotAssistantMessage):
		return NewHTTPError(http.StatusBadRequest, ErrNotAssistantMessage.Error(), "NOT_ASSISTANT_MESSAGE")
	case errors.Is(err, ErrGenerationFailed), errors.Is(err, ErrImproveFailed):
		// Keep the upstream detail: failed exchanges surface the cause.
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "GENERATION_FAILED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
