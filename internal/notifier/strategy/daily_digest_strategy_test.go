package strategy

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go-signalist/internal/entity"
	"go-signalist/internal/marketdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func digestFixture(t *testing.T, users []entity.User, watchlist *fakeWatchlistRepo, gateway *fakeGateway, ai *fakeAIRepo, mail *fakeMailer) *DailyDigestStrategy {
	t.Helper()
	userRepo := &fakeUserRepo{users: users}
	return NewDailyDigestStrategy(testLogger(t), newTestRunner(t), userRepo, watchlist, gateway, ai, mail)
}

func TestDailyDigest_NoUsersIsSkipped(t *testing.T) {
	mail := &fakeMailer{}
	s := digestFixture(t, nil, &fakeWatchlistRepo{}, &fakeGateway{}, &fakeAIRepo{}, mail)

	result, err := s.Execute(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, SKIPPED, result)
	assert.Empty(t, mail.sent)
}

func TestDailyDigest_SendsPerUserSummaries(t *testing.T) {
	users := []entity.User{
		{ID: "u1", Email: "one@example.com"},
		{ID: "u2", Email: "two@example.com"},
	}
	watchlist := &fakeWatchlistRepo{symbolsByEmail: map[string][]string{
		"one@example.com": {"AAPL"},
		"two@example.com": {"TSLA"},
	}}
	gateway := &fakeGateway{newsByFirst: map[string][]marketdata.NewsArticle{
		"AAPL": {{ID: 1, Headline: "apple-news"}},
		"TSLA": {{ID: 2, Headline: "tesla-news"}},
	}}
	ai := &fakeAIRepo{summaries: map[string]string{
		"apple-news": "<p>Apple had a big day.</p>",
		"tesla-news": "<p>Tesla dipped.</p>",
	}}
	mail := &fakeMailer{}
	s := digestFixture(t, users, watchlist, gateway, ai, mail)

	result, err := s.Execute(context.Background(), nil)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result, SUCCESS))
	assert.Contains(t, result, "sent 2 of 2")
	assert.ElementsMatch(t, []string{"one@example.com", "two@example.com"}, mail.sentTo())
}

func TestDailyDigest_OneUsersAIFailureDoesNotBlockOthers(t *testing.T) {
	users := []entity.User{
		{ID: "u1", Email: "one@example.com"},
		{ID: "u2", Email: "two@example.com"},
	}
	watchlist := &fakeWatchlistRepo{symbolsByEmail: map[string][]string{
		"one@example.com": {"AAPL"},
		"two@example.com": {"TSLA"},
	}}
	gateway := &fakeGateway{newsByFirst: map[string][]marketdata.NewsArticle{
		"AAPL": {{ID: 1, Headline: "apple-news"}},
		"TSLA": {{ID: 2, Headline: "tesla-news"}},
	}}
	ai := &fakeAIRepo{
		summaries:  map[string]string{"tesla-news": "<p>Tesla dipped.</p>"},
		summaryErr: map[string]error{"apple-news": errors.New("model unavailable")},
	}
	mail := &fakeMailer{}
	s := digestFixture(t, users, watchlist, gateway, ai, mail)

	result, err := s.Execute(context.Background(), nil)
	require.NoError(t, err)

	assert.Contains(t, result, "sent 1 of 2")
	assert.Equal(t, []string{"two@example.com"}, mail.sentTo())
}

func TestDailyDigest_EmptySummaryFallsBackToNoNewsContent(t *testing.T) {
	users := []entity.User{{ID: "u1", Email: "one@example.com"}}
	watchlist := &fakeWatchlistRepo{symbolsByEmail: map[string][]string{}}
	gateway := &fakeGateway{newsByFirst: map[string][]marketdata.NewsArticle{}}
	ai := &fakeAIRepo{summaries: map[string]string{}}
	mail := &fakeMailer{}
	s := digestFixture(t, users, watchlist, gateway, ai, mail)

	result, err := s.Execute(context.Background(), nil)
	require.NoError(t, err)

	assert.Contains(t, result, "sent 1 of 1")
	require.Len(t, mail.sent, 1)
	assert.Contains(t, mail.sent[0].msg.HTML, "No major market news today")
}

func TestDailyDigest_NewsFetchFailureDegradesToEmptyNews(t *testing.T) {
	users := []entity.User{{ID: "u1", Email: "one@example.com"}}
	watchlist := &fakeWatchlistRepo{symbolsByEmail: map[string][]string{
		"one@example.com": {"AAPL"},
	}}
	gateway := &fakeGateway{newsErr: errors.New("provider down")}
	ai := &fakeAIRepo{summaries: map[string]string{"": "<p>Quiet day.</p>"}}
	mail := &fakeMailer{}
	s := digestFixture(t, users, watchlist, gateway, ai, mail)

	result, err := s.Execute(context.Background(), nil)
	require.NoError(t, err)

	// The failed fetch leaves the user with empty news, which still produces
	// a digest via the AI summary of nothing.
	assert.Contains(t, result, "sent 1 of 1")
	require.Len(t, mail.sent, 1)
	assert.Contains(t, mail.sent[0].msg.Subject, "Market News Summary Today")
}
