package dto

// CreateAlertRequest is the payload for creating a price alert. The threshold
// arrives as text from the form and is parsed server-side.
type CreateAlertRequest struct {
	Symbol    string `json:"symbol"`
	Company   string `json:"company"`
	AlertName string `json:"alert_name"`
	AlertType string `json:"alert_type"`
	Threshold string `json:"threshold"`
}

// UpdateAlertRequest is the payload for editing an existing alert.
type UpdateAlertRequest struct {
	Symbol    string `json:"symbol"`
	Company   string `json:"company"`
	AlertName string `json:"alert_name"`
	AlertType string `json:"alert_type"`
	Threshold string `json:"threshold"`
}

// AlertWithMarketData is an active alert joined with a live market snapshot
// for display. Enrichment fields fall back to placeholders when the snapshot
// fetch fails.
type AlertWithMarketData struct {
	ID              uint    `json:"id"`
	Symbol          string  `json:"symbol"`
	Company         string  `json:"company"`
	AlertName       string  `json:"alert_name"`
	AlertType       string  `json:"alert_type"`
	Threshold       float64 `json:"threshold"`
	CurrentPrice    float64 `json:"current_price"`
	ChangePercent   float64 `json:"change_percent"`
	PriceFormatted  string  `json:"price_formatted"`
	ChangeFormatted string  `json:"change_formatted"`
}
