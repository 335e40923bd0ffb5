package repository

import (
	"context"

	"go-signalist/internal/entity"

	"gorm.io/gorm"
)

// WatchlistRepository defines the notifier's read-only view of watchlists.
type WatchlistRepository interface {
	// GetSymbolsByEmail returns the symbols a user tracks. An unknown email
	// yields an empty list, not an error.
	GetSymbolsByEmail(ctx context.Context, email string) ([]string, error)
}

// NewWatchlistRepository creates a new instance of WatchlistRepository.
func NewWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

type watchlistRepository struct {
	db *gorm.DB
}

func (r *watchlistRepository) GetSymbolsByEmail(ctx context.Context, email string) ([]string, error) {
	var symbols []string
	err := r.db.WithContext(ctx).
		Model(&entity.WatchlistItem{}).
		Joins("JOIN users ON users.id = watchlist_items.user_id").
		Where("users.email = ?", email).
		Pluck("watchlist_items.symbol", &symbols).Error
	if err != nil {
		return nil, err
	}
	return symbols, nil
}
