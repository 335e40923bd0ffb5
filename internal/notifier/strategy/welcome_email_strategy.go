package strategy

import (
	"context"
	"encoding/json"
	"fmt"

	"go-signalist/internal/entity"
	"go-signalist/internal/notifier/dto"
	"go-signalist/internal/notifier/repository"
	"go-signalist/internal/notifier/workflow"
	"go-signalist/pkg/logger"
	"go-signalist/pkg/mailer"

	"github.com/google/uuid"
)

// WelcomeEmailStrategy handles the user-onboarding notification: mirror the
// user record, generate a personalized intro, send the welcome email.
type WelcomeEmailStrategy struct {
	logger   *logger.Logger
	runner   *workflow.Runner
	userRepo repository.UserRepository
	aiRepo   repository.AIRepository
	notifier mailer.Notifier
}

// NewWelcomeEmailStrategy creates a new instance of WelcomeEmailStrategy.
func NewWelcomeEmailStrategy(
	log *logger.Logger,
	runner *workflow.Runner,
	userRepo repository.UserRepository,
	aiRepo repository.AIRepository,
	notifier mailer.Notifier,
) *WelcomeEmailStrategy {
	return &WelcomeEmailStrategy{
		logger:   log,
		runner:   runner,
		userRepo: userRepo,
		aiRepo:   aiRepo,
		notifier: notifier,
	}
}

// GetType returns the event type this strategy handles.
func (s *WelcomeEmailStrategy) GetType() entity.EventType {
	return entity.EventTypeUserCreated
}

// Execute runs the onboarding workflow for a user-created event.
func (s *WelcomeEmailStrategy) Execute(ctx context.Context, payload json.RawMessage) (string, error) {
	var event dto.UserCreatedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return FAILED, fmt.Errorf("failed to unmarshal user created event: %w", err)
	}
	if event.Email == "" {
		return FAILED, fmt.Errorf("user created event carries no email")
	}

	_, err := workflow.Do(ctx, s.runner, "upsert-user", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.userRepo.Upsert(ctx, &entity.User{
			ID:                uuid.NewString(),
			Email:             event.Email,
			Name:              event.Name,
			Country:           event.Country,
			InvestmentGoals:   event.InvestmentGoals,
			RiskTolerance:     event.RiskTolerance,
			PreferredIndustry: event.PreferredIndustry,
		})
	})
	if err != nil {
		return FAILED, err
	}

	userProfile := fmt.Sprintf(
		"- Country: %s\n- Investment goals: %s\n- Risk tolerance: %s\n- Preferred industry: %s",
		event.Country, event.InvestmentGoals, event.RiskTolerance, event.PreferredIndustry,
	)

	// The AI call is best-effort: any failure or empty response falls back to
	// the fixed generic intro.
	intro, err := workflow.Do(ctx, s.runner, "generate-welcome-intro", func(ctx context.Context) (string, error) {
		return s.aiRepo.GenerateWelcomeIntro(ctx, userProfile)
	})
	if err != nil || intro == "" {
		if err != nil {
			s.logger.Warn("Falling back to generic welcome intro", logger.ErrorField(err), logger.StringField("email", event.Email))
		}
		intro = mailer.DefaultWelcomeIntro
	}

	_, err = workflow.Do(ctx, s.runner, "send-welcome-email", func(ctx context.Context) (struct{}, error) {
		msg := mailer.BuildWelcomeEmail(event.Name, intro)
		return struct{}{}, s.notifier.Send(event.Email, msg)
	})
	if err != nil {
		return FAILED, err
	}

	s.logger.Info("Welcome email sent", logger.StringField("email", event.Email))
	return SUCCESS, nil
}
