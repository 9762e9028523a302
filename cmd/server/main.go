package main

import (
	"context"
	"log"
	"net/http"

	_ "clarity/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"clarity/internal/cache"
	"clarity/internal/config"
	"clarity/internal/handler"
	"clarity/internal/llm"
	"clarity/internal/registry"
	"clarity/internal/repository"
	"clarity/internal/router"
	"clarity/internal/service"
	"clarity/internal/store"
)

// @title Clarity Chat API
// @version 1.0
// @description Reflective-learning chat backend with task tracking, scored questionnaires, and LLM-assisted conversations.
// @host localhost:5050
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()
	if cfg.GeminiAPIKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable is not set")
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	fileStore := store.New()

	var cacheClient *cache.Client
	if cfg.RedisAddr != "" {
		cacheClient = cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer cacheClient.Close()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(fileStore, cfg.UsersPath())
	taskRepo := repository.NewTaskRepository(fileStore, cfg.TaskHistoryDir())
	resultRepo := repository.NewResultRepository(fileStore, cfg.ResultsPath(), cfg.ClarityResultsPath())
	onboardingRepo := repository.NewOnboardingRepository(fileStore, cfg.OnboardingPath())
	questionRepo := repository.NewQuestionRepository(fileStore, cacheClient,
		cfg.QuestionsPath(), cfg.ClarityQuestionsPath(), cfg.PromptHacksPath())

	taskRegistry := registry.New(taskRepo)
	generator := llm.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)

	// Initialize services
	authService := service.NewAuthService(userRepo, onboardingRepo)
	taskService := service.NewTaskService(userRepo, taskRepo, taskRegistry)
	conversationService := service.NewConversationService(userRepo, taskRepo, taskRegistry, generator)
	reflectionService := service.NewReflectionService(userRepo, questionRepo, resultRepo, taskRegistry)
	onboardingService := service.NewOnboardingService(userRepo, questionRepo, resultRepo, onboardingRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)
	chatHandler := handler.NewChatHandler(conversationService)
	reflectionHandler := handler.NewReflectionHandler(reflectionService, questionRepo)
	onboardingHandler := handler.NewOnboardingHandler(onboardingService)

	// Register routes
	router.Register(
		e,
		authHandler,
		taskHandler,
		chatHandler,
		reflectionHandler,
		onboardingHandler,
	)

	if err := userRepo.EnsureSeedUser(context.Background()); err != nil {
		log.Fatalf("seed user: %v", err)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
