package repository

import (
	"context"

	"go-signalist/internal/entity"

	"gorm.io/gorm"
)

// WatchlistRepository defines the interface for interacting with watchlist
// records. Inserts rely on the (user_id, symbol) unique index; callers match
// gorm.ErrDuplicatedKey instead of pre-checking, avoiding a race window.
type WatchlistRepository interface {
	Create(ctx context.Context, item *entity.WatchlistItem) error
	Delete(ctx context.Context, userID, symbol string) error
	FindByUser(ctx context.Context, userID string) ([]entity.WatchlistItem, error)
	GetSymbols(ctx context.Context, userID string) ([]string, error)
}

// NewWatchlistRepository creates a new instance of WatchlistRepository.
func NewWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

type watchlistRepository struct {
	db *gorm.DB
}

func (r *watchlistRepository) Create(ctx context.Context, item *entity.WatchlistItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *watchlistRepository) Delete(ctx context.Context, userID, symbol string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Delete(&entity.WatchlistItem{}).Error
}

func (r *watchlistRepository) FindByUser(ctx context.Context, userID string) ([]entity.WatchlistItem, error) {
	var items []entity.WatchlistItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *watchlistRepository) GetSymbols(ctx context.Context, userID string) ([]string, error) {
	var symbols []string
	err := r.db.WithContext(ctx).
		Model(&entity.WatchlistItem{}).
		Where("user_id = ?", userID).
		Pluck("symbol", &symbols).Error
	if err != nil {
		return nil, err
	}
	return symbols, nil
}
