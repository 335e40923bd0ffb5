package service

import (
	"context"
	"testing"
	"time"

	"go-signalist/internal/api/dto"
	"go-signalist/internal/marketdata"
	"go-signalist/pkg/logger"

	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSession = Session{UserID: "user-1", Email: "user@example.com", Name: "User One"}

func newAlertFixture(t *testing.T) (AlertService, *fakeAlertRepo, *fakeGateway, *gocache.Cache) {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)

	alertRepo := &fakeAlertRepo{}
	gateway := &fakeGateway{snapshots: map[string]*marketdata.Snapshot{}}
	viewCache := gocache.New(time.Minute, time.Minute)
	return NewAlertService(log, alertRepo, gateway, viewCache), alertRepo, gateway, viewCache
}

func TestCreateAlert_NormalizesSymbol(t *testing.T) {
	svc, repo, _, _ := newAlertFixture(t)

	alert, err := svc.Create(context.Background(), testSession, &dto.CreateAlertRequest{
		Symbol:    " aapl ",
		Company:   "Apple Inc",
		AlertName: "My Alert",
		AlertType: "upper",
		Threshold: "150.50",
	})
	require.NoError(t, err)

	assert.Equal(t, "AAPL", alert.Symbol)
	assert.Equal(t, 150.50, alert.Threshold)
	assert.True(t, alert.IsActive)
	assert.Equal(t, testSession.UserID, alert.UserID)
	assert.Equal(t, testSession.Email, alert.UserEmail)
	require.Len(t, repo.alerts, 1)
}

func TestCreateAlert_RejectsNonNumericThreshold(t *testing.T) {
	svc, repo, _, _ := newAlertFixture(t)

	_, err := svc.Create(context.Background(), testSession, &dto.CreateAlertRequest{
		Symbol:    "AAPL",
		AlertType: "upper",
		Threshold: "not-a-number",
	})

	require.Error(t, err)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Empty(t, repo.alerts)
}

func TestCreateAlert_RejectsUnknownAlertType(t *testing.T) {
	svc, _, _, _ := newAlertFixture(t)

	_, err := svc.Create(context.Background(), testSession, &dto.CreateAlertRequest{
		Symbol:    "AAPL",
		AlertType: "sideways",
		Threshold: "10",
	})

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestUpdateAlert_CrossOwnerMatchesNothing(t *testing.T) {
	svc, repo, _, _ := newAlertFixture(t)

	created, err := svc.Create(context.Background(), testSession, &dto.CreateAlertRequest{
		Symbol:    "AAPL",
		AlertType: "upper",
		Threshold: "150",
	})
	require.NoError(t, err)

	otherUser := Session{UserID: "user-2", Email: "other@example.com"}
	matched, err := svc.Update(context.Background(), otherUser, created.ID, &dto.UpdateAlertRequest{
		Symbol:    "TSLA",
		AlertType: "lower",
		Threshold: "99",
	})
	require.NoError(t, err)

	assert.False(t, matched)
	assert.Equal(t, "AAPL", repo.alerts[0].Symbol, "the other user's update must not touch the record")
}

func TestUpdateAlert_OwnerMatch(t *testing.T) {
	svc, repo, _, _ := newAlertFixture(t)

	created, err := svc.Create(context.Background(), testSession, &dto.CreateAlertRequest{
		Symbol:    "AAPL",
		AlertType: "upper",
		Threshold: "150",
	})
	require.NoError(t, err)

	matched, err := svc.Update(context.Background(), testSession, created.ID, &dto.UpdateAlertRequest{
		Symbol:    "tsla",
		AlertType: "lower",
		Threshold: "99",
	})
	require.NoError(t, err)

	assert.True(t, matched)
	assert.Equal(t, "TSLA", repo.alerts[0].Symbol)
	assert.Equal(t, 99.0, repo.alerts[0].Threshold)
}

func TestListWithMarketData_FailedSnapshotKeepsAlert(t *testing.T) {
	svc, _, gateway, _ := newAlertFixture(t)

	_, err := svc.Create(context.Background(), testSession, &dto.CreateAlertRequest{
		Symbol:    "AAPL",
		AlertType: "upper",
		Threshold: "150",
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), testSession, &dto.CreateAlertRequest{
		Symbol:    "FAIL",
		AlertType: "lower",
		Threshold: "10",
	})
	require.NoError(t, err)

	gateway.snapshots["AAPL"] = &marketdata.Snapshot{
		Symbol:          "AAPL",
		Company:         "Apple Inc",
		CurrentPrice:    162.34,
		PriceFormatted:  "$162.34",
		ChangeFormatted: "+1.25%",
	}

	rows, err := svc.ListWithMarketData(context.Background(), testSession)
	require.NoError(t, err)
	require.Len(t, rows, 2, "a failed snapshot must not drop the alert")

	bySymbol := map[string]dto.AlertWithMarketData{}
	for _, row := range rows {
		bySymbol[row.Symbol] = row
	}
	assert.Equal(t, "$162.34", bySymbol["AAPL"].PriceFormatted)
	assert.Equal(t, "—", bySymbol["FAIL"].PriceFormatted)
	assert.Equal(t, "—", bySymbol["FAIL"].ChangeFormatted)
	assert.Zero(t, bySymbol["FAIL"].CurrentPrice)
}

func TestAlertMutationsInvalidateWatchlistView(t *testing.T) {
	svc, _, _, viewCache := newAlertFixture(t)

	viewCache.Set(watchlistViewKey(testSession.UserID), []dto.WatchlistRow{{Symbol: "AAPL"}}, time.Minute)

	_, err := svc.Create(context.Background(), testSession, &dto.CreateAlertRequest{
		Symbol:    "AAPL",
		AlertType: "upper",
		Threshold: "150",
	})
	require.NoError(t, err)

	_, cached := viewCache.Get(watchlistViewKey(testSession.UserID))
	assert.False(t, cached)
}
