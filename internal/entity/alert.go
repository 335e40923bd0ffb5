package entity

import "time"

// Alert direction relative to the threshold.
const (
	AlertTypeUpper = "upper"
	AlertTypeLower = "lower"
)

// Alert is a user-configured price-threshold alert. A watchlist removal
// deactivates matching alerts instead of deleting them, preserving history.
type Alert struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    string     `gorm:"type:varchar(64);not null;index" json:"user_id"`
	UserEmail string     `gorm:"type:varchar(255);not null" json:"user_email"`
	Symbol    string     `gorm:"type:varchar(20);not null" json:"symbol"`
	Company   string     `gorm:"type:varchar(255)" json:"company"`
	AlertName string     `gorm:"type:varchar(255)" json:"alert_name"`
	AlertType string     `gorm:"type:varchar(10);not null" json:"alert_type"`
	Threshold float64    `gorm:"not null" json:"threshold"`
	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	LastSent  *time.Time `json:"last_sent,omitempty"`
}

// TableName specifies the table name for the Alert model.
func (Alert) TableName() string {
	return "alerts"
}
