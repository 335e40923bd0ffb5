package marketdata

import (
	"context"
	"errors"
)

// ErrIncompleteData is returned when the provider answers without a quote
// price or company name. The snapshot is fatal for that symbol; callers
// iterating many symbols tolerate it per item.
var ErrIncompleteData = errors.New("incomplete stock data received from provider")

// Snapshot is the transient market view joined onto alerts and watchlist rows.
// It is recomputed on every read and never persisted.
type Snapshot struct {
	Symbol             string  `json:"symbol"`
	Company            string  `json:"company"`
	CurrentPrice       float64 `json:"current_price"`
	ChangePercent      float64 `json:"change_percent"`
	PriceFormatted     string  `json:"price_formatted"`
	ChangeFormatted    string  `json:"change_formatted"`
	PERatio            string  `json:"pe_ratio"`
	MarketCapFormatted string  `json:"market_cap_formatted"`
}

// SearchResult is a single symbol-search hit. Watchlist membership is
// annotated by the caller, which owns the watchlist store.
type SearchResult struct {
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	Exchange      string `json:"exchange"`
	Type          string `json:"type"`
	IsInWatchlist bool   `json:"isInWatchlist"`
}

// NewsArticle is a normalized provider news item.
type NewsArticle struct {
	ID       int64  `json:"id"`
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	Source   string `json:"source"`
	URL      string `json:"url"`
	Datetime int64  `json:"datetime"`
	Category string `json:"category"`
	Related  string `json:"related"`
}

// Gateway fetches and normalizes market data from the quotes/news provider.
type Gateway interface {
	// GetSnapshot joins quote, profile and financial metrics for one symbol.
	GetSnapshot(ctx context.Context, symbol string) (*Snapshot, error)
	// Search resolves symbols by free text, or lists popular symbols when the
	// query is empty.
	Search(ctx context.Context, query string) ([]SearchResult, error)
	// GetNews returns watchlist-specific news for the given symbols, or
	// general market news when none are provided.
	GetNews(ctx context.Context, symbols []string) ([]NewsArticle, error)
}
