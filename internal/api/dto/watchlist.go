package dto

import "time"

// AddWatchlistRequest is the payload for adding a symbol to the watchlist.
type AddWatchlistRequest struct {
	Symbol  string `json:"symbol"`
	Company string `json:"company"`
}

// WatchlistRow is a watchlist entry joined with a live market snapshot. When
// the snapshot fetch fails the display fields carry placeholders and the row
// is still returned.
type WatchlistRow struct {
	Symbol          string    `json:"symbol"`
	Company         string    `json:"company"`
	CurrentPrice    float64   `json:"current_price"`
	ChangePercent   float64   `json:"change_percent"`
	PriceFormatted  string    `json:"price_formatted"`
	ChangeFormatted string    `json:"change_formatted"`
	MarketCap       string    `json:"market_cap"`
	PERatio         string    `json:"pe_ratio"`
	AddedAt         time.Time `json:"added_at"`
}
