package repository

import (
	"context"

	"go-signalist/internal/entity"

	"gorm.io/gorm"
)

// AlertRepository defines the interface for interacting with alert records.
// Every mutating query is scoped by the owning user id.
type AlertRepository interface {
	Create(ctx context.Context, alert *entity.Alert) error
	// Update patches the alert matched by id and owner. It returns the number
	// of matched rows; cross-owner updates match zero rows and are not errors.
	Update(ctx context.Context, id uint, userID string, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id uint, userID string) error
	FindActiveByUser(ctx context.Context, userID string) ([]entity.Alert, error)
	// DeactivateBySymbol soft-disables every active alert the user holds on a
	// symbol, preserving the rows for history.
	DeactivateBySymbol(ctx context.Context, userID, symbol string) (int64, error)
}

// NewAlertRepository creates a new instance of AlertRepository.
func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

type alertRepository struct {
	db *gorm.DB
}

func (r *alertRepository) Create(ctx context.Context, alert *entity.Alert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

func (r *alertRepository) Update(ctx context.Context, id uint, userID string, fields map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Alert{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *alertRepository) Delete(ctx context.Context, id uint, userID string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entity.Alert{}).Error
}

func (r *alertRepository) FindActiveByUser(ctx context.Context, userID string) ([]entity.Alert, error) {
	var alerts []entity.Alert
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at desc").
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *alertRepository) DeactivateBySymbol(ctx context.Context, userID, symbol string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Alert{}).
		Where("user_id = ? AND symbol = ? AND is_active = ?", userID, symbol, true).
		Update("is_active", false)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
