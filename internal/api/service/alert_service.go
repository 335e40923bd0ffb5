package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go-signalist/internal/api/dto"
	"go-signalist/internal/api/repository"
	"go-signalist/internal/entity"
	"go-signalist/internal/marketdata"
	"go-signalist/pkg/logger"
	"go-signalist/pkg/utils"

	gocache "github.com/patrickmn/go-cache"
)

// placeholder shown in place of market data the gateway could not deliver.
const displayPlaceholder = "—"

// AlertService manages price alerts scoped to the authenticated user.
type AlertService interface {
	Create(ctx context.Context, sess Session, req *dto.CreateAlertRequest) (*entity.Alert, error)
	// Update patches an alert matched by id and owner. A zero-row match (wrong
	// owner or missing id) is reported as an unsuccessful result, not an error.
	Update(ctx context.Context, sess Session, alertID uint, req *dto.UpdateAlertRequest) (bool, error)
	Delete(ctx context.Context, sess Session, alertID uint) error
	// ListWithMarketData joins each active alert with a fresh market snapshot.
	// A failed snapshot degrades that alert's display fields to placeholders
	// instead of dropping it.
	ListWithMarketData(ctx context.Context, sess Session) ([]dto.AlertWithMarketData, error)
}

// NewAlertService creates a new AlertService. viewCache is the shared
// watchlist-view cache invalidated on every alert mutation.
func NewAlertService(
	log *logger.Logger,
	alertRepo repository.AlertRepository,
	gateway marketdata.Gateway,
	viewCache *gocache.Cache,
) AlertService {
	return &alertService{
		logger:    log,
		alertRepo: alertRepo,
		gateway:   gateway,
		viewCache: viewCache,
	}
}

type alertService struct {
	logger    *logger.Logger
	alertRepo repository.AlertRepository
	gateway   marketdata.Gateway
	viewCache *gocache.Cache
}

func parseThreshold(raw string) (float64, error) {
	threshold, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, NewValidationError("threshold", "must be a number")
	}
	return threshold, nil
}

func validateAlertType(alertType string) error {
	if alertType != entity.AlertTypeUpper && alertType != entity.AlertTypeLower {
		return NewValidationError("alert_type", `must be "upper" or "lower"`)
	}
	return nil
}

func (s *alertService) Create(ctx context.Context, sess Session, req *dto.CreateAlertRequest) (*entity.Alert, error) {
	threshold, err := parseThreshold(req.Threshold)
	if err != nil {
		return nil, err
	}
	if err := validateAlertType(req.AlertType); err != nil {
		return nil, err
	}

	alert := &entity.Alert{
		UserID:    sess.UserID,
		UserEmail: sess.Email,
		Symbol:    strings.ToUpper(strings.TrimSpace(req.Symbol)),
		Company:   strings.TrimSpace(req.Company),
		AlertName: req.AlertName,
		AlertType: req.AlertType,
		Threshold: threshold,
		IsActive:  true,
	}

	if err := s.alertRepo.Create(ctx, alert); err != nil {
		s.logger.Error("Failed to create alert", logger.ErrorField(err), logger.StringField("symbol", alert.Symbol))
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}

	invalidateWatchlistView(s.viewCache, sess.UserID)
	return alert, nil
}

func (s *alertService) Update(ctx context.Context, sess Session, alertID uint, req *dto.UpdateAlertRequest) (bool, error) {
	threshold, err := parseThreshold(req.Threshold)
	if err != nil {
		return false, err
	}
	if err := validateAlertType(req.AlertType); err != nil {
		return false, err
	}

	fields := map[string]interface{}{
		"symbol":     strings.ToUpper(strings.TrimSpace(req.Symbol)),
		"company":    strings.TrimSpace(req.Company),
		"alert_name": req.AlertName,
		"alert_type": req.AlertType,
		"threshold":  threshold,
	}

	matched, err := s.alertRepo.Update(ctx, alertID, sess.UserID, fields)
	if err != nil {
		s.logger.Error("Failed to update alert", logger.ErrorField(err), logger.IntField("alert_id", int(alertID)))
		return false, fmt.Errorf("failed to update alert: %w", err)
	}

	invalidateWatchlistView(s.viewCache, sess.UserID)
	return matched > 0, nil
}

func (s *alertService) Delete(ctx context.Context, sess Session, alertID uint) error {
	if err := s.alertRepo.Delete(ctx, alertID, sess.UserID); err != nil {
		s.logger.Error("Failed to delete alert", logger.ErrorField(err), logger.IntField("alert_id", int(alertID)))
		return fmt.Errorf("failed to delete alert: %w", err)
	}
	invalidateWatchlistView(s.viewCache, sess.UserID)
	return nil
}

func (s *alertService) ListWithMarketData(ctx context.Context, sess Session) ([]dto.AlertWithMarketData, error) {
	alerts, err := s.alertRepo.FindActiveByUser(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch alerts: %w", err)
	}
	if len(alerts) == 0 {
		return []dto.AlertWithMarketData{}, nil
	}

	// One slot per alert keeps the created-descending order stable under the
	// concurrent fan-out.
	rows := make([]dto.AlertWithMarketData, len(alerts))
	var wg sync.WaitGroup
	for i, alert := range alerts {
		wg.Add(1)
		i, alert := i, alert
		utils.GoSafe(func() {
			defer wg.Done()
			row := dto.AlertWithMarketData{
				ID:              alert.ID,
				Symbol:          alert.Symbol,
				Company:         alert.Company,
				AlertName:       alert.AlertName,
				AlertType:       alert.AlertType,
				Threshold:       alert.Threshold,
				PriceFormatted:  displayPlaceholder,
				ChangeFormatted: displayPlaceholder,
			}

			snapshot, err := s.gateway.GetSnapshot(ctx, alert.Symbol)
			if err != nil {
				s.logger.Warn("Failed to fetch snapshot for alert", logger.ErrorField(err), logger.StringField("symbol", alert.Symbol))
			} else {
				row.CurrentPrice = snapshot.CurrentPrice
				row.ChangePercent = snapshot.ChangePercent
				row.PriceFormatted = snapshot.PriceFormatted
				row.ChangeFormatted = snapshot.ChangeFormatted
			}
			rows[i] = row
		})
	}
	wg.Wait()

	return rows, nil
}

func watchlistViewKey(userID string) string {
	return "watchlist-view:" + userID
}

func invalidateWatchlistView(viewCache *gocache.Cache, userID string) {
	viewCache.Delete(watchlistViewKey(userID))
}
