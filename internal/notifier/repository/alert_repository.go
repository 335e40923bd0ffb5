package repository

import (
	"context"
	"errors"
	"time"

	"go-signalist/internal/entity"

	"gorm.io/gorm"
)

// AlertRepository defines the notifier's view of alert records. The price
// trigger event carries no alert id, so records are matched by their natural
// key (user email, symbol, alert name, alert type).
type AlertRepository interface {
	// StampLastSent records the notification time on every alert matching the
	// natural key and returns the number of rows touched.
	StampLastSent(ctx context.Context, userEmail, symbol, alertName, alertType string, at time.Time) (int64, error)
	// FindByNaturalKey returns the most recently created matching alert, or
	// nil when none exists.
	FindByNaturalKey(ctx context.Context, userEmail, symbol, alertName, alertType string) (*entity.Alert, error)
}

// NewAlertRepository creates a new instance of AlertRepository.
func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

type alertRepository struct {
	db *gorm.DB
}

func (r *alertRepository) StampLastSent(ctx context.Context, userEmail, symbol, alertName, alertType string, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Alert{}).
		Where("user_email = ? AND symbol = ? AND alert_name = ? AND alert_type = ?", userEmail, symbol, alertName, alertType).
		Update("last_sent", at)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *alertRepository) FindByNaturalKey(ctx context.Context, userEmail, symbol, alertName, alertType string) (*entity.Alert, error) {
	var alert entity.Alert
	result := r.db.WithContext(ctx).
		Where("user_email = ? AND symbol = ? AND alert_name = ? AND alert_type = ?", userEmail, symbol, alertName, alertType).
		Order("created_at desc").
		First(&alert)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &alert, nil
}
