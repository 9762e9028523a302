package service

import (
	"context"

	"clarity/internal/model"
	"clarity/internal/repository"
	"clarity/internal/scoring"
)

// BaselineInput is an onboarding questionnaire submission.
type BaselineInput struct {
	UserID     string
	TaskID     string
	Answers    map[string]any
	Iterations int
	Duration   int
	TaskMeta   map[string]any
}

// OnboardingService tracks baseline submissions and onboarding completion.
type OnboardingService interface {
	Status(ctx context.Context, userID string) (model.OnboardingEntry, error)
	BaselineQuestions(ctx context.Context) []scoring.Question
	SubmitBaseline(ctx context.Context, input BaselineInput) error
}

type onboardingService struct {
	users      repository.UserRepository
	questions  repository.QuestionRepository
	results    repository.ResultRepository
	onboarding repository.OnboardingRepository
}

// NewOnboardingService creates an onboarding service.
func NewOnboardingService(users repository.UserRepository, questions repository.QuestionRepository, results repository.ResultRepository, onboarding repository.OnboardingRepository) OnboardingService {
	return &onboardingService{users: users, questions: questions, results: results, onboarding: onboarding}
}

func (s *onboardingService) Status(ctx context.Context, userID string) (model.OnboardingEntry, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return model.OnboardingEntry{}, err
	}
	entry, _ := s.onboarding.Get(ctx, userID)
	return entry, nil
}

func (s *onboardingService) BaselineQuestions(ctx context.Context) []scoring.Question {
	return s.questions.ClarityQuestions(ctx)
}

// SubmitBaseline appends the scored record to both the shared results log and
// the baseline-only log, then overwrites the user's onboarding entry. The two
// writes are not transactional; a crash in between can leave them divergent.
func (s *onboardingService) SubmitBaseline(ctx context.Context, input BaselineInput) error {
	if _, err := s.users.FindByID(ctx, input.UserID); err != nil {
		return err
	}
	answers := input.Answers
	if answers == nil {
		answers = map[string]any{}
	}
	taskMeta := input.TaskMeta
	if taskMeta == nil {
		taskMeta = map[string]any{}
	}

	var score *scoring.Result
	if len(answers) > 0 {
		computed := scoring.Score(s.questions.ClarityQuestions(ctx), answers)
		score = &computed
	}

	timestamp := model.NowISO()
	record := model.Result{
		Timestamp:  timestamp,
		UserID:     input.UserID,
		TaskID:     input.TaskID,
		Answers:    answers,
		Iterations: &input.Iterations,
		Duration:   &input.Duration,
		Score:      score,
		Context:    "baseline",
		TaskMeta:   taskMeta,
	}
	if err := s.results.Append(ctx, record); err != nil {
		return err
	}
	if err := s.results.AppendClarity(ctx, record); err != nil {
		return err
	}

	return s.onboarding.Put(ctx, input.UserID, model.OnboardingEntry{
		Completed:   true,
		CompletedAt: timestamp,
		Answers:     answers,
		Score:       score,
	})
}
