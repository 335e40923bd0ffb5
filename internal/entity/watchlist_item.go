package entity

import "time"

// WatchlistItem is a symbol a user tracks. Uniqueness on (user_id, symbol) is
// enforced by a composite unique index, not application logic, so concurrent
// adds resolve through the store's duplicate-key failure.
type WatchlistItem struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	UserID  string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_watchlist_user_symbol" json:"user_id"`
	Symbol  string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_watchlist_user_symbol" json:"symbol"`
	Company string    `gorm:"type:varchar(255)" json:"company"`
	AddedAt time.Time `gorm:"autoCreateTime" json:"added_at"`
}

// TableName specifies the table name for the WatchlistItem model.
func (WatchlistItem) TableName() string {
	return "watchlist_items"
}
