package model

import "clarity/internal/scoring"

// Result is one append-only reflection or baseline record.
type Result struct {
	Timestamp  string          `json:"timestamp"`
	UserID     string          `json:"user_id"`
	TaskID     string          `json:"task_id"`
	Answers    map[string]any  `json:"answers"`
	Iterations *int            `json:"iterations"`
	Duration   *int            `json:"duration"`
	Score      *scoring.Result `json:"score"`
	Context    string          `json:"context"`
	TaskMeta   map[string]any  `json:"task_meta"`
}

// OnboardingEntry is the per-user onboarding state, overwritten on each
// baseline submission.
type OnboardingEntry struct {
	Completed   bool            `json:"completed"`
	CompletedAt string          `json:"completed_at,omitempty"`
	Answers     map[string]any  `json:"answers,omitempty"`
	Score       *scoring.Result `json:"score,omitempty"`
}
