package repository

import (
	"context"
	"encoding/json"
	"time"

	"clarity/internal/cache"
	"clarity/internal/scoring"
	"clarity/internal/store"
)

const questionCacheTTL = 5 * time.Minute

// QuestionRepository serves the question banks and prompt hacks. Banks change
// rarely, so reads go through the fail-safe cache when one is configured.
type QuestionRepository interface {
	ReflectionBank(ctx context.Context) scoring.Bank
	ClarityQuestions(ctx context.Context) []scoring.Question
	PromptHacks(ctx context.Context) []json.RawMessage
}

type questionRepository struct {
	store         *store.Store
	cache         *cache.Client
	questionsPath string
	clarityPath   string
	hacksPath     string
}

// NewQuestionRepository builds a question-bank repository. cacheClient may be
// nil, which disables caching.
func NewQuestionRepository(s *store.Store, cacheClient *cache.Client, questionsPath, clarityPath, hacksPath string) QuestionRepository {
	return &questionRepository{
		store:         s,
		cache:         cacheClient,
		questionsPath: questionsPath,
		clarityPath:   clarityPath,
		hacksPath:     hacksPath,
	}
}

func (r *questionRepository) ReflectionBank(ctx context.Context) scoring.Bank {
	var bank scoring.Bank
	if r.cached(ctx, "clarity:questions:reflection", &bank) {
		return bank
	}
	bank = store.Read(r.store, r.questionsPath, scoring.Bank{Version: 1, Questions: []scoring.Question{}})
	if bank.Questions == nil {
		bank.Questions = []scoring.Question{}
	}
	r.remember(ctx, "clarity:questions:reflection", bank)
	return bank
}

func (r *questionRepository) ClarityQuestions(ctx context.Context) []scoring.Question {
	var questions []scoring.Question
	if r.cached(ctx, "clarity:questions:baseline", &questions) {
		return questions
	}
	doc := store.Read(r.store, r.clarityPath, scoring.Bank{Questions: []scoring.Question{}})
	questions = doc.Questions
	if questions == nil {
		questions = []scoring.Question{}
	}
	r.remember(ctx, "clarity:questions:baseline", questions)
	return questions
}

func (r *questionRepository) PromptHacks(ctx context.Context) []json.RawMessage {
	var hacks []json.RawMessage
	if r.cached(ctx, "clarity:prompt-hacks", &hacks) {
		return hacks
	}
	doc := store.Read(r.store, r.hacksPath, hacksDoc{Hacks: []json.RawMessage{}})
	hacks = doc.Hacks
	if hacks == nil {
		hacks = []json.RawMessage{}
	}
	r.remember(ctx, "clarity:prompt-hacks", hacks)
	return hacks
}

type hacksDoc struct {
	Hacks []json.RawMessage `json:"hacks"`
}

func (r *questionRepository) cached(ctx context.Context, key string, out any) bool {
	raw, _ := r.cache.Get(ctx, key)
	if raw == nil {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func (r *questionRepository) remember(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = r.cache.Set(ctx, key, raw, questionCacheTTL)
}
