package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go-signalist/internal/entity"
	"go-signalist/internal/marketdata"
	"go-signalist/internal/notifier/repository"
	"go-signalist/internal/notifier/workflow"
	"go-signalist/pkg/logger"
	"go-signalist/pkg/mailer"
	"go-signalist/pkg/utils"
)

// noMarketNewsContent is the digest body used when the AI produced nothing
// for an otherwise healthy user.
const noMarketNewsContent = "<p>No major market news today. Markets are quiet — check back tomorrow for updates on your watchlist.</p>"

// DailyDigestStrategy handles the per-user daily news digest: fetch each
// user's watchlist news, summarize it with the AI collaborator, and send all
// digest emails concurrently. One user's failure never blocks the others.
type DailyDigestStrategy struct {
	logger        *logger.Logger
	runner        *workflow.Runner
	userRepo      repository.UserRepository
	watchlistRepo repository.WatchlistRepository
	gateway       marketdata.Gateway
	aiRepo        repository.AIRepository
	notifier      mailer.Notifier
}

// NewDailyDigestStrategy creates a new instance of DailyDigestStrategy.
func NewDailyDigestStrategy(
	log *logger.Logger,
	runner *workflow.Runner,
	userRepo repository.UserRepository,
	watchlistRepo repository.WatchlistRepository,
	gateway marketdata.Gateway,
	aiRepo repository.AIRepository,
	notifier mailer.Notifier,
) *DailyDigestStrategy {
	return &DailyDigestStrategy{
		logger:        log,
		runner:        runner,
		userRepo:      userRepo,
		watchlistRepo: watchlistRepo,
		gateway:       gateway,
		aiRepo:        aiRepo,
		notifier:      notifier,
	}
}

// GetType returns the event type this strategy handles.
func (s *DailyDigestStrategy) GetType() entity.EventType {
	return entity.EventTypeSendDailyNews
}

type userNews struct {
	user entity.User
	news []marketdata.NewsArticle
}

type userDigest struct {
	user    entity.User
	content *string
}

// Execute runs the daily digest workflow.
func (s *DailyDigestStrategy) Execute(ctx context.Context, _ json.RawMessage) (string, error) {
	users, err := workflow.Do(ctx, s.runner, "get-all-users", func(ctx context.Context) ([]entity.User, error) {
		return s.userRepo.GetAllForNewsDelivery(ctx)
	})
	if err != nil {
		return FAILED, err
	}
	if len(users) == 0 {
		s.logger.Info("No users found for news delivery")
		return SKIPPED, nil
	}

	newsPerUser, err := workflow.Do(ctx, s.runner, "fetch-user-news", func(ctx context.Context) ([]userNews, error) {
		return s.fetchUserNews(ctx, users), nil
	})
	if err != nil {
		return FAILED, err
	}

	digests := s.summarizeUserNews(ctx, newsPerUser)

	sent, err := workflow.Do(ctx, s.runner, "send-news-emails", func(ctx context.Context) (int, error) {
		return s.sendDigests(digests), nil
	})
	if err != nil {
		return FAILED, err
	}

	return fmt.Sprintf("%s: sent %d of %d digests", SUCCESS, sent, len(users)), nil
}

// fetchUserNews fans out across users; each branch writes only its own slot.
// Per-user failures degrade to an empty news list instead of failing the run.
func (s *DailyDigestStrategy) fetchUserNews(ctx context.Context, users []entity.User) []userNews {
	result := make([]userNews, len(users))
	var wg sync.WaitGroup
	for i, user := range users {
		wg.Add(1)
		i, user := i, user
		utils.GoSafe(func() {
			defer wg.Done()
			result[i] = userNews{user: user}

			symbols, err := s.watchlistRepo.GetSymbolsByEmail(ctx, user.Email)
			if err != nil {
				s.logger.Error("Failed to fetch watchlist symbols", logger.ErrorField(err), logger.StringField("email", user.Email))
				return
			}

			news, err := s.gateway.GetNews(ctx, symbols)
			if err != nil {
				s.logger.Error("Failed to fetch news", logger.ErrorField(err), logger.StringField("email", user.Email))
				return
			}
			result[i].news = news
		})
	}
	wg.Wait()
	return result
}

// summarizeUserNews calls the AI collaborator once per user, sequentially to
// respect the provider's rate limits. A failed summary yields nil content,
// which suppresses sending for that user only.
func (s *DailyDigestStrategy) summarizeUserNews(ctx context.Context, newsPerUser []userNews) []userDigest {
	digests := make([]userDigest, 0, len(newsPerUser))
	for _, un := range newsPerUser {
		content, err := s.aiRepo.SummarizeNews(ctx, un.news)
		if err != nil {
			s.logger.Error("Failed to summarize news", logger.ErrorField(err), logger.StringField("email", un.user.Email))
			digests = append(digests, userDigest{user: un.user})
			continue
		}
		if content == "" {
			content = noMarketNewsContent
		}
		digests = append(digests, userDigest{user: un.user, content: utils.ToPointer(content)})
	}
	return digests
}

func (s *DailyDigestStrategy) sendDigests(digests []userDigest) int {
	date := utils.FormatDateToday()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		sent int
	)
	for _, digest := range digests {
		if digest.content == nil {
			continue
		}
		wg.Add(1)
		digest := digest
		utils.GoSafe(func() {
			defer wg.Done()
			msg := mailer.BuildNewsSummaryEmail(date, *digest.content)
			if err := s.notifier.Send(digest.user.Email, msg); err != nil {
				s.logger.Error("Failed to send digest email", logger.ErrorField(err), logger.StringField("email", digest.user.Email))
				return
			}
			mu.Lock()
			sent++
			mu.Unlock()
		})
	}
	wg.Wait()
	return sent
}
