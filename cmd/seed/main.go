// Command seed provisions a data directory with the demo user and default
// question banks. Existing documents are left untouched.
package main

import (
	"context"
	"encoding/json"
	"log"

	"clarity/internal/config"
	"clarity/internal/repository"
	"clarity/internal/scoring"
	"clarity/internal/store"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()
	fileStore := store.New()

	userRepo := repository.NewUserRepository(fileStore, cfg.UsersPath())
	if err := userRepo.EnsureSeedUser(context.Background()); err != nil {
		log.Fatalf("seed user: %v", err)
	}

	// Read creates the document with the default when absent.
	store.Read(fileStore, cfg.QuestionsPath(), defaultReflectionBank())
	store.Read(fileStore, cfg.ClarityQuestionsPath(), defaultClarityBank())
	store.Read(fileStore, cfg.PromptHacksPath(), defaultPromptHacks())

	log.Printf("data directory %s ready", cfg.DataDir)
}

func defaultReflectionBank() scoring.Bank {
	return scoring.Bank{
		Version: 1,
		Questions: []scoring.Question{
			{
				ID:    "clarity_confidence",
				Type:  "scale",
				Text:  "How confident are you that the assistant understood your task?",
				Scale: &scoring.Scale{Min: 1, Max: 5},
			},
			{
				ID:    "effort",
				Type:  "scale",
				Text:  "How much rework did the first answer need?",
				Scale: &scoring.Scale{Min: 1, Max: 5},
			},
			{
				ID:      "prompt_quality",
				Type:    "single",
				Text:    "Did you give the assistant the context it needed up front?",
				Options: []string{"Yes, all of it (+1)", "Some of it", "No"},
			},
			{
				ID:   "techniques",
				Type: "multi",
				Text: "Which of these did you try during this task?",
				Options: []string{
					"Broke the task into steps (+1)",
					"Gave examples of the output I wanted (+1)",
					"Pasted the whole problem and hoped",
					"Asked the assistant to critique its own answer (+1)",
				},
			},
		},
	}
}

func defaultClarityBank() scoring.Bank {
	return scoring.Bank{
		Version: 1,
		Questions: []scoring.Question{
			{
				ID:    "baseline_experience",
				Type:  "scale",
				Text:  "How experienced are you with AI assistants?",
				Scale: &scoring.Scale{Min: 1, Max: 5},
			},
			{
				ID:      "baseline_planning",
				Type:    "single",
				Text:    "Before asking an assistant for help, do you outline what you need?",
				Options: []string{"Usually (+1)", "Sometimes", "Rarely"},
			},
		},
	}
}

func defaultPromptHacks() map[string]any {
	hacks := []map[string]any{
		{
			"id":    "hack-context",
			"title": "Lead with context",
			"body":  "State your goal, constraints, and audience before the request itself.",
		},
		{
			"id":    "hack-examples",
			"title": "Show, don't tell",
			"body":  "One concrete example of the output you want beats a paragraph of description.",
		},
		{
			"id":    "hack-iterate",
			"title": "Iterate in small steps",
			"body":  "Ask for an outline first, then expand the sections that matter.",
		},
	}
	raw := make([]json.RawMessage, 0, len(hacks))
	for _, hack := range hacks {
		encoded, _ := json.Marshal(hack)
		raw = append(raw, encoded)
	}
	return map[string]any{"hacks": raw}
}
