package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort   string
	DataDir      string
	GeminiAPIKey string
	GeminiModel  string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
}

// Load builds Config from environment with sensible defaults. Local .env and
// local.env files are loaded first when present; already-set variables win.
func Load() *Config {
	for _, name := range []string{".env", "local.env"} {
		if _, err := os.Stat(name); err == nil {
			_ = godotenv.Load(name)
		}
	}

	return &Config{
		ServerPort:   getEnv("SERVER_PORT", "5050"),
		DataDir:      getEnv("DATA_DIR", "data"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		RedisDB:      getEnvInt("REDIS_DB", 0),
		RedisPass:    os.Getenv("REDIS_PASSWORD"),
	}
}

// UsersPath is the users document inside the data directory.
func (c *Config) UsersPath() string { return filepath.Join(c.DataDir, "users.json") }

// ResultsPath is the append-only reflection/baseline results document.
func (c *Config) ResultsPath() string { return filepath.Join(c.DataDir, "results.json") }

// ClarityResultsPath is the baseline-only results document.
func (c *Config) ClarityResultsPath() string {
	return filepath.Join(c.DataDir, "clarity_results.json")
}

// OnboardingPath is the per-user onboarding state document.
func (c *Config) OnboardingPath() string {
	return filepath.Join(c.DataDir, "onboarding_responses.json")
}

// QuestionsPath is the reflection question bank document.
func (c *Config) QuestionsPath() string { return filepath.Join(c.DataDir, "questions.json") }

// ClarityQuestionsPath is the baseline question bank document.
func (c *Config) ClarityQuestionsPath() string {
	return filepath.Join(c.DataDir, "clarity_questions.json")
}

// PromptHacksPath is the prompt-hack tips document.
func (c *Config) PromptHacksPath() string { return filepath.Join(c.DataDir, "prompt_hacks.json") }

// TaskHistoryDir holds one task-history document per user.
func (c *Config) TaskHistoryDir() string { return filepath.Join(c.DataDir, "task_history") }

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
