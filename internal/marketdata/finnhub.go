package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"go-signalist/pkg/logger"
	"go-signalist/pkg/utils"

	gocache "github.com/patrickmn/go-cache"
)

// Cache freshness per operation. Quotes are never cached for accuracy.
const (
	profileCacheTTL = time.Hour
	metricsCacheTTL = 30 * time.Minute
	newsCacheTTL    = time.Hour
	searchCacheTTL  = 30 * time.Minute

	newsLookbackDays = 5
	maxGeneralNews   = 6
	maxSymbolNews    = 6
	maxSearchResults = 15
	maxPopularStocks = 10
)

// popularStockSymbols backs the pseudo-search shown before a user types.
var popularStockSymbols = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA",
	"TSLA", "META", "NFLX", "AMD", "INTC",
	"JPM", "V", "DIS", "BABA", "UBER",
}

// Config holds the settings for the Finnhub gateway.
type Config struct {
	BaseURL string
	APIKey  string
}

type quoteResponse struct {
	CurrentPrice  float64 `json:"c"`
	ChangePercent float64 `json:"dp"`
}

type profileResponse struct {
	Name                 string  `json:"name"`
	MarketCapitalization float64 `json:"marketCapitalization"`
	Exchange             string  `json:"exchange"`
}

type metricsResponse struct {
	Metric struct {
		PENormalizedAnnual *float64 `json:"peNormalizedAnnual"`
	} `json:"metric"`
}

type searchResponse struct {
	Result []searchHit `json:"result"`
}

type searchHit struct {
	Symbol        string `json:"symbol"`
	Description   string `json:"description"`
	DisplaySymbol string `json:"displaySymbol"`
	Type          string `json:"type"`
}

// finnhubGateway is the Finnhub-backed implementation of Gateway.
type finnhubGateway struct {
	client  *http.Client
	baseURL string
	apiKey  string
	cache   *gocache.Cache
	logger  *logger.Logger
}

// NewFinnhubGateway creates a Gateway talking to the Finnhub HTTP API.
func NewFinnhubGateway(cfg Config, log *logger.Logger) Gateway {
	return &finnhubGateway{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		cache:   gocache.New(30*time.Minute, time.Hour),
		logger:  log,
	}
}

// fetchJSON issues a GET and decodes the JSON body into out. When ttl > 0 the
// raw body is cached under cacheKey; a zero ttl bypasses the cache entirely.
func (g *finnhubGateway) fetchJSON(ctx context.Context, rawURL, cacheKey string, ttl time.Duration, out interface{}) error {
	if ttl > 0 {
		if cached, ok := g.cache.Get(cacheKey); ok {
			return json.Unmarshal(cached.([]byte), out)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch from provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read provider response: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode provider response: %w", err)
	}

	if ttl > 0 {
		g.cache.Set(cacheKey, body, ttl)
	}
	return nil
}

func (g *finnhubGateway) endpoint(path string, params url.Values) string {
	params.Set("token", g.apiKey)
	return fmt.Sprintf("%s%s?%s", g.baseURL, path, params.Encode())
}

// GetSnapshot fetches quote, profile and metrics concurrently. Quote and
// profile are both required; a metrics failure only degrades the P/E ratio.
func (g *finnhubGateway) GetSnapshot(ctx context.Context, symbol string) (*Snapshot, error) {
	cleanSymbol := strings.ToUpper(strings.TrimSpace(symbol))

	var (
		wg      sync.WaitGroup
		quote   quoteResponse
		profile profileResponse
		metrics metricsResponse

		quoteErr, profileErr, metricsErr error
	)

	wg.Add(3)
	utils.GoSafe(func() {
		defer wg.Done()
		quoteErr = g.fetchJSON(ctx, g.endpoint("/quote", url.Values{"symbol": {cleanSymbol}}), "", 0, &quote)
	})
	utils.GoSafe(func() {
		defer wg.Done()
		profileErr = g.fetchJSON(ctx, g.endpoint("/stock/profile2", url.Values{"symbol": {cleanSymbol}}), "profile:"+cleanSymbol, profileCacheTTL, &profile)
	})
	utils.GoSafe(func() {
		defer wg.Done()
		metricsErr = g.fetchJSON(ctx, g.endpoint("/stock/metric", url.Values{"symbol": {cleanSymbol}, "metric": {"all"}}), "metrics:"+cleanSymbol, metricsCacheTTL, &metrics)
	})
	wg.Wait()

	if quoteErr != nil {
		return nil, fmt.Errorf("failed to fetch quote for %s: %w", cleanSymbol, quoteErr)
	}
	if profileErr != nil {
		return nil, fmt.Errorf("failed to fetch profile for %s: %w", cleanSymbol, profileErr)
	}
	if quote.CurrentPrice == 0 || profile.Name == "" {
		return nil, fmt.Errorf("%w: symbol %s", ErrIncompleteData, cleanSymbol)
	}

	peRatio := "—"
	if metricsErr != nil {
		g.logger.Warn("Failed to fetch financial metrics", logger.ErrorField(metricsErr), logger.StringField("symbol", cleanSymbol))
	} else if metrics.Metric.PENormalizedAnnual != nil {
		peRatio = fmt.Sprintf("%.1f", *metrics.Metric.PENormalizedAnnual)
	}

	return &Snapshot{
		Symbol:             cleanSymbol,
		Company:            profile.Name,
		CurrentPrice:       quote.CurrentPrice,
		ChangePercent:      quote.ChangePercent,
		PriceFormatted:     utils.FormatPrice(quote.CurrentPrice),
		ChangeFormatted:    utils.FormatChangePercent(quote.ChangePercent),
		PERatio:            peRatio,
		MarketCapFormatted: utils.FormatMarketCap(profile.MarketCapitalization),
	}, nil
}

// Search resolves symbols by query, falling back to profile lookups for the
// popular symbol set when the query is empty. Individual popular-symbol
// failures are omitted rather than failing the whole search.
func (g *finnhubGateway) Search(ctx context.Context, query string) ([]SearchResult, error) {
	cleanQuery := strings.TrimSpace(query)

	var hits []searchHit
	if cleanQuery == "" {
		var (
			wg sync.WaitGroup
			mu sync.Mutex
		)
		for _, symbol := range popularStockSymbols[:maxPopularStocks] {
			wg.Add(1)
			sym := symbol
			utils.GoSafe(func() {
				defer wg.Done()
				var profile profileResponse
				err := g.fetchJSON(ctx, g.endpoint("/stock/profile2", url.Values{"symbol": {sym}}), "profile:"+sym, profileCacheTTL, &profile)
				if err != nil || profile.Name == "" {
					if err != nil {
						g.logger.Warn("Failed to fetch profile for popular symbol", logger.ErrorField(err), logger.StringField("symbol", sym))
					}
					return
				}
				mu.Lock()
				hits = append(hits, searchHit{
					Symbol:        sym,
					Description:   profile.Name,
					DisplaySymbol: sym,
					Type:          "Common Stock",
				})
				mu.Unlock()
			})
		}
		wg.Wait()
	} else {
		var resp searchResponse
		err := g.fetchJSON(ctx, g.endpoint("/search", url.Values{"q": {cleanQuery}}), "search:"+strings.ToLower(cleanQuery), searchCacheTTL, &resp)
		if err != nil {
			return nil, fmt.Errorf("failed to search symbols: %w", err)
		}
		hits = resp.Result
	}

	if len(hits) > maxSearchResults {
		hits = hits[:maxSearchResults]
	}

	results := make([]SearchResult, 0, len(hits))
	for _, hit := range hits {
		exchange := hit.DisplaySymbol
		if exchange == "" {
			exchange = "US"
		}
		typ := hit.Type
		if typ == "" {
			typ = "Stock"
		}
		results = append(results, SearchResult{
			Symbol:   strings.ToUpper(hit.Symbol),
			Name:     hit.Description,
			Exchange: exchange,
			Type:     typ,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})
	return results, nil
}

// GetNews aggregates provider news. With symbols it selects articles
// round-robin across them so no single symbol dominates the digest; without,
// it returns deduplicated general market news.
func (g *finnhubGateway) GetNews(ctx context.Context, symbols []string) ([]NewsArticle, error) {
	from, to := utils.DateRange(newsLookbackDays)

	cleanSymbols := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			cleanSymbols = append(cleanSymbols, s)
		}
	}

	if len(cleanSymbols) > 0 {
		return g.roundRobinNews(ctx, cleanSymbols, from, to)
	}
	return g.generalNews(ctx, from, to)
}

// roundRobinNews runs exactly maxSymbolNews iterations: iteration i reads from
// symbol i%count and picks article i/count from that symbol's valid-article
// list, skipping symbols whose list is exhausted at that index. The company
// news responses are cached, so revisiting a symbol does not refetch.
func (g *finnhubGateway) roundRobinNews(ctx context.Context, symbols []string, from, to string) ([]NewsArticle, error) {
	var selected []NewsArticle

	for i := 0; i < maxSymbolNews; i++ {
		symbol := symbols[i%len(symbols)]

		var articles []NewsArticle
		err := g.fetchJSON(ctx,
			g.endpoint("/company-news", url.Values{"symbol": {symbol}, "from": {from}, "to": {to}}),
			fmt.Sprintf("company-news:%s:%s:%s", symbol, from, to), newsCacheTTL, &articles)
		if err != nil {
			g.logger.Warn("Failed to fetch company news", logger.ErrorField(err), logger.StringField("symbol", symbol))
			continue
		}

		valid := filterValidArticles(articles)
		articleIndex := i / len(symbols)
		if articleIndex >= len(valid) {
			continue
		}

		article := valid[articleIndex]
		article.Related = symbol
		selected = append(selected, article)
	}

	sort.Slice(selected, func(i, j int) bool {
		return selected[i].Datetime > selected[j].Datetime
	})
	return selected, nil
}

// generalNews deduplicates by id, url, then headline, first-seen wins, capped
// at maxGeneralNews.
func (g *finnhubGateway) generalNews(ctx context.Context, from, to string) ([]NewsArticle, error) {
	var articles []NewsArticle
	err := g.fetchJSON(ctx,
		g.endpoint("/news", url.Values{"category": {"general"}, "from": {from}, "to": {to}}),
		fmt.Sprintf("general-news:%s:%s", from, to), newsCacheTTL, &articles)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch general news: %w", err)
	}

	seen := make(map[string]struct{})
	var result []NewsArticle
	for _, article := range filterValidArticles(articles) {
		key := article.Headline
		if article.ID != 0 {
			key = fmt.Sprintf("id:%d", article.ID)
		} else if article.URL != "" {
			key = article.URL
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		result = append(result, article)
		if len(result) == maxGeneralNews {
			break
		}
	}
	return result, nil
}

func filterValidArticles(articles []NewsArticle) []NewsArticle {
	valid := make([]NewsArticle, 0, len(articles))
	for _, a := range articles {
		if a.Headline != "" && a.Summary != "" && a.URL != "" && a.Datetime > 0 {
			valid = append(valid, a)
		}
	}
	return valid
}
