package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"clarity/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	authHandler *handler.AuthHandler,
	taskHandler *handler.TaskHandler,
	chatHandler *handler.ChatHandler,
	reflectionHandler *handler.ReflectionHandler,
	onboardingHandler *handler.OnboardingHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"message": "Clarity chat API is running",
		})
	})

	// Auth
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)

	// Onboarding / baseline
	api.GET("/onboarding/status", onboardingHandler.Status)
	api.GET("/baseline/questions", onboardingHandler.BaselineQuestions)
	api.POST("/baseline/submit", onboardingHandler.SubmitBaseline)

	// Task lifecycle
	api.POST("/new-task", taskHandler.NewTask)
	api.GET("/get-task/:task_id", taskHandler.GetTask)
	api.GET("/task-messages", taskHandler.TaskMessages)
	api.GET("/get-all-tasks", taskHandler.ListTasks)
	api.POST("/complete-task", taskHandler.CompleteTask)
	api.POST("/switch-task", taskHandler.SwitchTask)

	// Conversation
	api.POST("/send-message", chatHandler.SendMessage)
	api.POST("/improve-message", chatHandler.ImproveMessage)

	// Reflection
	api.GET("/reflection/questions", reflectionHandler.Questions)
	api.POST("/reflection/submit", reflectionHandler.Submit)
	api.GET("/reflection/results", reflectionHandler.Results)
	api.GET("/prompt-hacks", reflectionHandler.PromptHacks)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
