package strategy

import (
	"context"
	"sync"
	"testing"
	"time"

	"go-signalist/internal/entity"
	"go-signalist/internal/marketdata"
	"go-signalist/internal/notifier/workflow"
	"go-signalist/pkg/logger"
	"go-signalist/pkg/mailer"

	"github.com/stretchr/testify/require"
)

func newTestRunner(t *testing.T) *workflow.Runner {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)
	return workflow.NewRunner(log, workflow.NoRetry, nil)
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)
	return log
}

type sentMail struct {
	to  string
	msg mailer.Message
}

type fakeMailer struct {
	mu      sync.Mutex
	sent    []sentMail
	sendErr error
}

func (f *fakeMailer) Send(to string, msg mailer.Message) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{to: to, msg: msg})
	return nil
}

func (f *fakeMailer) sentTo() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	recipients := make([]string, 0, len(f.sent))
	for _, s := range f.sent {
		recipients = append(recipients, s.to)
	}
	return recipients
}

type fakeUserRepo struct {
	mu       sync.Mutex
	users    []entity.User
	upserted []entity.User
	listErr  error
}

func (f *fakeUserRepo) GetAllForNewsDelivery(_ context.Context) ([]entity.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.users, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			return &f.users[i], nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Upsert(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserted = append(f.upserted, *user)
	return nil
}

type stampCall struct {
	userEmail string
	symbol    string
	alertName string
	alertType string
	at        time.Time
}

type fakeAlertRepo struct {
	mu       sync.Mutex
	stamps   []stampCall
	matched  int64
	existing *entity.Alert
}

func (f *fakeAlertRepo) StampLastSent(_ context.Context, userEmail, symbol, alertName, alertType string, at time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stamps = append(f.stamps, stampCall{userEmail: userEmail, symbol: symbol, alertName: alertName, alertType: alertType, at: at})
	return f.matched, nil
}

func (f *fakeAlertRepo) FindByNaturalKey(_ context.Context, _, _, _, _ string) (*entity.Alert, error) {
	return f.existing, nil
}

type fakeWatchlistRepo struct {
	symbolsByEmail map[string][]string
	errByEmail     map[string]error
}

func (f *fakeWatchlistRepo) GetSymbolsByEmail(_ context.Context, email string) ([]string, error) {
	if err, ok := f.errByEmail[email]; ok {
		return nil, err
	}
	return f.symbolsByEmail[email], nil
}

type fakeAIRepo struct {
	introText  string
	introErr   error
	summaries  map[string]string
	summaryErr map[string]error
}

func (f *fakeAIRepo) GenerateWelcomeIntro(_ context.Context, _ string) (string, error) {
	return f.introText, f.introErr
}

// SummarizeNews keys its canned responses by the first article's headline so
// per-user behavior can differ in digest tests.
func (f *fakeAIRepo) SummarizeNews(_ context.Context, articles []marketdata.NewsArticle) (string, error) {
	key := ""
	if len(articles) > 0 {
		key = articles[0].Headline
	}
	if err, ok := f.summaryErr[key]; ok {
		return "", err
	}
	return f.summaries[key], nil
}

type fakeGateway struct {
	mu          sync.Mutex
	newsByFirst map[string][]marketdata.NewsArticle
	newsErr     error
	calls       [][]string
}

func (f *fakeGateway) GetSnapshot(_ context.Context, _ string) (*marketdata.Snapshot, error) {
	return nil, marketdata.ErrIncompleteData
}

func (f *fakeGateway) Search(_ context.Context, _ string) ([]marketdata.SearchResult, error) {
	return nil, nil
}

func (f *fakeGateway) GetNews(_ context.Context, symbols []string) ([]marketdata.NewsArticle, error) {
	f.mu.Lock()
	f.calls = append(f.calls, symbols)
	f.mu.Unlock()
	if f.newsErr != nil {
		return nil, f.newsErr
	}
	if len(symbols) == 0 {
		return f.newsByFirst[""], nil
	}
	return f.newsByFirst[symbols[0]], nil
}
