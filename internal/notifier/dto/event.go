package dto

// UserCreatedEvent is emitted by the auth collaborator when an account is
// created. Field names are the event wire contract.
type UserCreatedEvent struct {
	Email             string `json:"email"`
	Name              string `json:"name"`
	Country           string `json:"country"`
	InvestmentGoals   string `json:"investmentGoals"`
	RiskTolerance     string `json:"riskTolerance"`
	PreferredIndustry string `json:"preferredIndustry"`
}

// SendDailyNewsEvent triggers an on-demand digest run. It carries no data.
type SendDailyNewsEvent struct{}

// PriceAlertEvent is emitted by the external price monitor when a threshold
// condition is observed. It carries no alert id; the alert record is matched
// by its natural key.
type PriceAlertEvent struct {
	Symbol         string  `json:"symbol"`
	UserEmail      string  `json:"userEmail"`
	Company        string  `json:"company"`
	AlertType      string  `json:"alertType"`
	AlertName      string  `json:"alertName"`
	ThresholdValue float64 `json:"thresholdValue"`
	CurrentValue   float64 `json:"currentValue"`
}
