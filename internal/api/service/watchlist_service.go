package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go-signalist/internal/api/dto"
	"go-signalist/internal/api/repository"
	"go-signalist/internal/entity"
	"go-signalist/internal/marketdata"
	"go-signalist/pkg/logger"
	"go-signalist/pkg/utils"

	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

// watchlistViewTTL bounds how stale the cached watchlist-with-data view may
// get between mutations.
const watchlistViewTTL = time.Minute

// WatchlistService manages the user's tracked symbols and their market-data
// joined views.
type WatchlistService interface {
	// Add inserts a watchlist entry. A duplicate (user, symbol) pair comes
	// back as an unsuccessful result with the store unchanged.
	Add(ctx context.Context, sess Session, req *dto.AddWatchlistRequest) (*dto.ActionResponse, error)
	// Remove deletes the entry and deactivates every active alert the user
	// holds on that symbol.
	Remove(ctx context.Context, sess Session, symbol string) error
	List(ctx context.Context, sess Session) ([]entity.WatchlistItem, error)
	ListWithData(ctx context.Context, sess Session) ([]dto.WatchlistRow, error)
	// Search annotates provider search results with watchlist membership.
	Search(ctx context.Context, sess Session, query string) ([]marketdata.SearchResult, error)
	// News returns watchlist-specific news, or general market news for an
	// empty watchlist.
	News(ctx context.Context, sess Session) ([]marketdata.NewsArticle, error)
}

// NewWatchlistService creates a new WatchlistService.
func NewWatchlistService(
	log *logger.Logger,
	watchlistRepo repository.WatchlistRepository,
	alertRepo repository.AlertRepository,
	gateway marketdata.Gateway,
	viewCache *gocache.Cache,
) WatchlistService {
	return &watchlistService{
		logger:        log,
		watchlistRepo: watchlistRepo,
		alertRepo:     alertRepo,
		gateway:       gateway,
		viewCache:     viewCache,
	}
}

type watchlistService struct {
	logger        *logger.Logger
	watchlistRepo repository.WatchlistRepository
	alertRepo     repository.AlertRepository
	gateway       marketdata.Gateway
	viewCache     *gocache.Cache
}

func (s *watchlistService) Add(ctx context.Context, sess Session, req *dto.AddWatchlistRequest) (*dto.ActionResponse, error) {
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		return nil, NewValidationError("symbol", "must not be empty")
	}

	item := &entity.WatchlistItem{
		UserID:  sess.UserID,
		Symbol:  symbol,
		Company: strings.TrimSpace(req.Company),
	}

	// Insert relies on the unique (user_id, symbol) index; a pre-check would
	// leave a race window between concurrent adds.
	if err := s.watchlistRepo.Create(ctx, item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &dto.ActionResponse{Success: false, Message: "Stock already in watchlist"}, nil
		}
		s.logger.Error("Failed to add to watchlist", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return nil, fmt.Errorf("failed to add stock to watchlist: %w", err)
	}

	invalidateWatchlistView(s.viewCache, sess.UserID)
	return &dto.ActionResponse{Success: true, Message: "Stock added to watchlist", Data: item}, nil
}

func (s *watchlistService) Remove(ctx context.Context, sess Session, symbol string) error {
	cleanSymbol := strings.ToUpper(strings.TrimSpace(symbol))

	if err := s.watchlistRepo.Delete(ctx, sess.UserID, cleanSymbol); err != nil {
		s.logger.Error("Failed to remove from watchlist", logger.ErrorField(err), logger.StringField("symbol", cleanSymbol))
		return fmt.Errorf("failed to remove stock from watchlist: %w", err)
	}

	deactivated, err := s.alertRepo.DeactivateBySymbol(ctx, sess.UserID, cleanSymbol)
	if err != nil {
		s.logger.Error("Failed to deactivate alerts", logger.ErrorField(err), logger.StringField("symbol", cleanSymbol))
		return fmt.Errorf("failed to deactivate alerts: %w", err)
	}
	if deactivated > 0 {
		s.logger.Info("Deactivated alerts after watchlist removal",
			logger.StringField("symbol", cleanSymbol),
			logger.IntField("count", int(deactivated)))
	}

	invalidateWatchlistView(s.viewCache, sess.UserID)
	return nil
}

func (s *watchlistService) List(ctx context.Context, sess Session) ([]entity.WatchlistItem, error) {
	items, err := s.watchlistRepo.FindByUser(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch watchlist: %w", err)
	}
	return items, nil
}

func (s *watchlistService) ListWithData(ctx context.Context, sess Session) ([]dto.WatchlistRow, error) {
	if cached, ok := s.viewCache.Get(watchlistViewKey(sess.UserID)); ok {
		return cached.([]dto.WatchlistRow), nil
	}

	items, err := s.watchlistRepo.FindByUser(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch watchlist: %w", err)
	}
	if len(items) == 0 {
		return []dto.WatchlistRow{}, nil
	}

	rows := make([]dto.WatchlistRow, len(items))
	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		i, item := i, item
		utils.GoSafe(func() {
			defer wg.Done()
			row := dto.WatchlistRow{
				Symbol:          item.Symbol,
				Company:         item.Company,
				PriceFormatted:  displayPlaceholder,
				ChangeFormatted: displayPlaceholder,
				MarketCap:       displayPlaceholder,
				PERatio:         displayPlaceholder,
				AddedAt:         item.AddedAt,
			}

			snapshot, err := s.gateway.GetSnapshot(ctx, item.Symbol)
			if err != nil {
				s.logger.Warn("Failed to fetch snapshot for watchlist item", logger.ErrorField(err), logger.StringField("symbol", item.Symbol))
			} else {
				row.Company = snapshot.Company
				row.CurrentPrice = snapshot.CurrentPrice
				row.ChangePercent = snapshot.ChangePercent
				row.PriceFormatted = snapshot.PriceFormatted
				row.ChangeFormatted = snapshot.ChangeFormatted
				row.MarketCap = snapshot.MarketCapFormatted
				row.PERatio = snapshot.PERatio
			}
			rows[i] = row
		})
	}
	wg.Wait()

	s.viewCache.Set(watchlistViewKey(sess.UserID), rows, watchlistViewTTL)
	return rows, nil
}

func (s *watchlistService) Search(ctx context.Context, sess Session, query string) ([]marketdata.SearchResult, error) {
	symbols, err := s.watchlistRepo.GetSymbols(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch watchlist symbols: %w", err)
	}
	inWatchlist := make(map[string]struct{}, len(symbols))
	for _, sym := range symbols {
		inWatchlist[sym] = struct{}{}
	}

	results, err := s.gateway.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search stocks: %w", err)
	}

	for i := range results {
		_, ok := inWatchlist[results[i].Symbol]
		results[i].IsInWatchlist = ok
	}
	return results, nil
}

func (s *watchlistService) News(ctx context.Context, sess Session) ([]marketdata.NewsArticle, error) {
	symbols, err := s.watchlistRepo.GetSymbols(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch watchlist symbols: %w", err)
	}

	news, err := s.gateway.GetNews(ctx, symbols)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news: %w", err)
	}
	return news, nil
}
