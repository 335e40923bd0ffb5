package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-signalist/internal/entity"
	"go-signalist/internal/notifier/dto"
	"go-signalist/internal/notifier/repository"
	"go-signalist/internal/notifier/workflow"
	"go-signalist/pkg/logger"
	"go-signalist/pkg/mailer"
	"go-signalist/pkg/utils"
)

// PriceAlertStrategy delivers a price-threshold email and stamps the alert's
// last notification time. The trigger event carries no alert id, so records
// are matched by their natural key.
type PriceAlertStrategy struct {
	logger         *logger.Logger
	runner         *workflow.Runner
	alertRepo      repository.AlertRepository
	notifier       mailer.Notifier
	resendCooldown time.Duration
}

// NewPriceAlertStrategy creates a new instance of PriceAlertStrategy.
func NewPriceAlertStrategy(
	log *logger.Logger,
	runner *workflow.Runner,
	alertRepo repository.AlertRepository,
	notifier mailer.Notifier,
	resendCooldown time.Duration,
) *PriceAlertStrategy {
	return &PriceAlertStrategy{
		logger:         log,
		runner:         runner,
		alertRepo:      alertRepo,
		notifier:       notifier,
		resendCooldown: resendCooldown,
	}
}

// GetType returns the event type this strategy handles.
func (s *PriceAlertStrategy) GetType() entity.EventType {
	return entity.EventTypePriceAlert
}

type priceDisplay struct {
	current   string
	threshold string
}

// Execute runs the price alert workflow.
func (s *PriceAlertStrategy) Execute(ctx context.Context, payload json.RawMessage) (string, error) {
	var event dto.PriceAlertEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return FAILED, fmt.Errorf("failed to unmarshal price alert event: %w", err)
	}
	if event.UserEmail == "" || event.Symbol == "" {
		return FAILED, fmt.Errorf("price alert event missing user email or symbol")
	}

	if s.resendCooldown > 0 {
		alert, err := s.alertRepo.FindByNaturalKey(ctx, event.UserEmail, event.Symbol, event.AlertName, event.AlertType)
		if err != nil {
			return FAILED, err
		}
		if alert != nil && alert.LastSent != nil && time.Since(*alert.LastSent) < s.resendCooldown {
			s.logger.Info("Alert still in resend cooldown, skipping",
				logger.StringField("symbol", event.Symbol),
				logger.StringField("email", event.UserEmail))
			return SKIPPED, nil
		}
	}

	prices, err := workflow.Do(ctx, s.runner, "format-price-data", func(ctx context.Context) (priceDisplay, error) {
		return priceDisplay{
			current:   utils.FormatUSD(event.CurrentValue),
			threshold: utils.FormatUSD(event.ThresholdValue),
		}, nil
	})
	if err != nil {
		return FAILED, err
	}

	_, err = workflow.Do(ctx, s.runner, "send-alert-email", func(ctx context.Context) (struct{}, error) {
		msg, err := mailer.BuildPriceAlertEmail(mailer.PriceAlertData{
			Symbol:         event.Symbol,
			Company:        event.Company,
			AlertType:      event.AlertType,
			AlertName:      event.AlertName,
			CurrentPrice:   prices.current,
			ThresholdPrice: prices.threshold,
		})
		if err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.notifier.Send(event.UserEmail, msg)
	})
	if err != nil {
		return FAILED, err
	}

	_, err = workflow.Do(ctx, s.runner, "update-alert-last-sent", func(ctx context.Context) (int64, error) {
		matched, err := s.alertRepo.StampLastSent(ctx, event.UserEmail, event.Symbol, event.AlertName, event.AlertType, time.Now().UTC())
		if err != nil {
			return 0, err
		}
		if matched == 0 {
			s.logger.Warn("No alert record matched for last-sent stamp",
				logger.StringField("symbol", event.Symbol),
				logger.StringField("email", event.UserEmail))
		}
		return matched, nil
	})
	if err != nil {
		return FAILED, err
	}

	return SUCCESS, nil
}
