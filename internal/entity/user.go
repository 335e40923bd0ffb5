package entity

import "time"

// User mirrors the account record owned by the auth collaborator. Rows are
// upserted from user-created events and read by the daily digest.
type User struct {
	ID                string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	Email             string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Name              string    `gorm:"type:varchar(255)" json:"name"`
	Country           string    `gorm:"type:varchar(100)" json:"country"`
	InvestmentGoals   string    `gorm:"type:varchar(255)" json:"investment_goals"`
	RiskTolerance     string    `gorm:"type:varchar(100)" json:"risk_tolerance"`
	PreferredIndustry string    `gorm:"type:varchar(100)" json:"preferred_industry"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}
