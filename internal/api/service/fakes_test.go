package service

import (
	"context"
	"errors"
	"sync"

	"go-signalist/internal/entity"
	"go-signalist/internal/marketdata"
)

type fakeAlertRepo struct {
	mu     sync.Mutex
	nextID uint
	alerts []entity.Alert

	createErr error
	updateErr error
}

func (f *fakeAlertRepo) Create(_ context.Context, alert *entity.Alert) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	alert.ID = f.nextID
	f.alerts = append(f.alerts, *alert)
	return nil
}

func (f *fakeAlertRepo) Update(_ context.Context, id uint, userID string, fields map[string]interface{}) (int64, error) {
	if f.updateErr != nil {
		return 0, f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched int64
	for i := range f.alerts {
		if f.alerts[i].ID != id || f.alerts[i].UserID != userID {
			continue
		}
		matched++
		if symbol, ok := fields["symbol"].(string); ok {
			f.alerts[i].Symbol = symbol
		}
		if threshold, ok := fields["threshold"].(float64); ok {
			f.alerts[i].Threshold = threshold
		}
	}
	return matched, nil
}

func (f *fakeAlertRepo) Delete(_ context.Context, id uint, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.alerts[:0]
	for _, a := range f.alerts {
		if a.ID == id && a.UserID == userID {
			continue
		}
		kept = append(kept, a)
	}
	f.alerts = kept
	return nil
}

func (f *fakeAlertRepo) FindActiveByUser(_ context.Context, userID string) ([]entity.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []entity.Alert
	for _, a := range f.alerts {
		if a.UserID == userID && a.IsActive {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeAlertRepo) DeactivateBySymbol(_ context.Context, userID, symbol string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for i := range f.alerts {
		if f.alerts[i].UserID == userID && f.alerts[i].Symbol == symbol && f.alerts[i].IsActive {
			f.alerts[i].IsActive = false
			count++
		}
	}
	return count, nil
}

type fakeWatchlistRepo struct {
	mu    sync.Mutex
	items []entity.WatchlistItem

	createErr error
}

func (f *fakeWatchlistRepo) Create(_ context.Context, item *entity.WatchlistItem) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeWatchlistRepo) Delete(_ context.Context, userID, symbol string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.items[:0]
	for _, it := range f.items {
		if it.UserID == userID && it.Symbol == symbol {
			continue
		}
		kept = append(kept, it)
	}
	f.items = kept
	return nil
}

func (f *fakeWatchlistRepo) FindByUser(_ context.Context, userID string) ([]entity.WatchlistItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []entity.WatchlistItem
	for _, it := range f.items {
		if it.UserID == userID {
			result = append(result, it)
		}
	}
	return result, nil
}

func (f *fakeWatchlistRepo) GetSymbols(_ context.Context, userID string) ([]string, error) {
	items, _ := f.FindByUser(context.Background(), userID)
	symbols := make([]string, 0, len(items))
	for _, it := range items {
		symbols = append(symbols, it.Symbol)
	}
	return symbols, nil
}

var errSnapshotUnavailable = errors.New("snapshot unavailable")

type fakeGateway struct {
	mu        sync.Mutex
	snapshots map[string]*marketdata.Snapshot
	searches  []marketdata.SearchResult
	news      []marketdata.NewsArticle

	newsSymbols []string
}

func (f *fakeGateway) GetSnapshot(_ context.Context, symbol string) (*marketdata.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if snap, ok := f.snapshots[symbol]; ok {
		return snap, nil
	}
	return nil, errSnapshotUnavailable
}

func (f *fakeGateway) Search(_ context.Context, _ string) ([]marketdata.SearchResult, error) {
	return f.searches, nil
}

func (f *fakeGateway) GetNews(_ context.Context, symbols []string) ([]marketdata.NewsArticle, error) {
	f.mu.Lock()
	f.newsSymbols = symbols
	f.mu.Unlock()
	return f.news, nil
}
