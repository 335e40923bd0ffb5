package strategy

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-signalist/internal/entity"
	"go-signalist/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func priceAlertPayload(t *testing.T, overrides map[string]interface{}) json.RawMessage {
	t.Helper()
	payload := map[string]interface{}{
		"symbol":         "AAPL",
		"userEmail":      "user@example.com",
		"company":        "Apple Inc",
		"alertType":      "upper",
		"alertName":      "My Apple Alert",
		"thresholdValue": 150.0,
		"currentValue":   162.34,
	}
	for k, v := range overrides {
		payload[k] = v
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return raw
}

func TestPriceAlertStrategy_HappyPath(t *testing.T) {
	mail := &fakeMailer{}
	alertRepo := &fakeAlertRepo{matched: 1}
	s := NewPriceAlertStrategy(testLogger(t), newTestRunner(t), alertRepo, mail, 0)

	result, err := s.Execute(context.Background(), priceAlertPayload(t, nil))
	require.NoError(t, err)
	assert.Equal(t, SUCCESS, result)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "user@example.com", mail.sent[0].to)
	assert.Contains(t, mail.sent[0].msg.Subject, "Price Above $150.00")

	require.Len(t, alertRepo.stamps, 1)
	stamp := alertRepo.stamps[0]
	assert.Equal(t, "user@example.com", stamp.userEmail)
	assert.Equal(t, "AAPL", stamp.symbol)
	assert.Equal(t, "My Apple Alert", stamp.alertName)
	assert.Equal(t, "upper", stamp.alertType)
	assert.WithinDuration(t, time.Now().UTC(), stamp.at, time.Minute)
}

func TestPriceAlertStrategy_UnsupportedTypeSendsNothing(t *testing.T) {
	mail := &fakeMailer{}
	alertRepo := &fakeAlertRepo{matched: 1}
	s := NewPriceAlertStrategy(testLogger(t), newTestRunner(t), alertRepo, mail, 0)

	result, err := s.Execute(context.Background(), priceAlertPayload(t, map[string]interface{}{"alertType": "invalid"}))

	require.Error(t, err)
	assert.Equal(t, FAILED, result)
	assert.Empty(t, mail.sent, "no email on unsupported alert type")
	assert.Empty(t, alertRepo.stamps, "no last-sent stamp on failure")
}

func TestPriceAlertStrategy_FormatsCurrencyWithGrouping(t *testing.T) {
	mail := &fakeMailer{}
	s := NewPriceAlertStrategy(testLogger(t), newTestRunner(t), &fakeAlertRepo{matched: 1}, mail, 0)

	_, err := s.Execute(context.Background(), priceAlertPayload(t, map[string]interface{}{
		"thresholdValue": 1500.0,
		"currentValue":   1623.45,
	}))
	require.NoError(t, err)

	require.Len(t, mail.sent, 1)
	assert.Contains(t, mail.sent[0].msg.Subject, utils.FormatUSD(1500))
	assert.Contains(t, mail.sent[0].msg.HTML, utils.FormatUSD(1623.45))
}

func TestPriceAlertStrategy_CooldownSkipsRecentlySent(t *testing.T) {
	recent := time.Now().UTC().Add(-time.Minute)
	mail := &fakeMailer{}
	alertRepo := &fakeAlertRepo{
		matched:  1,
		existing: &entity.Alert{LastSent: &recent},
	}
	s := NewPriceAlertStrategy(testLogger(t), newTestRunner(t), alertRepo, mail, time.Hour)

	result, err := s.Execute(context.Background(), priceAlertPayload(t, nil))
	require.NoError(t, err)

	assert.Equal(t, SKIPPED, result)
	assert.Empty(t, mail.sent)
	assert.Empty(t, alertRepo.stamps)
}

func TestPriceAlertStrategy_ZeroCooldownAlwaysResends(t *testing.T) {
	recent := time.Now().UTC().Add(-time.Second)
	mail := &fakeMailer{}
	alertRepo := &fakeAlertRepo{
		matched:  1,
		existing: &entity.Alert{LastSent: &recent},
	}
	s := NewPriceAlertStrategy(testLogger(t), newTestRunner(t), alertRepo, mail, 0)

	result, err := s.Execute(context.Background(), priceAlertPayload(t, nil))
	require.NoError(t, err)

	assert.Equal(t, SUCCESS, result)
	assert.Len(t, mail.sent, 1)
}

func TestPriceAlertStrategy_MissingEmailFails(t *testing.T) {
	mail := &fakeMailer{}
	s := NewPriceAlertStrategy(testLogger(t), newTestRunner(t), &fakeAlertRepo{}, mail, 0)

	result, err := s.Execute(context.Background(), priceAlertPayload(t, map[string]interface{}{"userEmail": ""}))

	require.Error(t, err)
	assert.Equal(t, FAILED, result)
	assert.Empty(t, mail.sent)
}
