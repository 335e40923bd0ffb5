package consumer

import (
	"context"
	"sync"
	"time"

	"go-signalist/internal/notifier/config"
	"go-signalist/internal/notifier/service"
	"go-signalist/pkg/common"
	"go-signalist/pkg/logger"
	"go-signalist/pkg/utils"

	"github.com/robfig/cron/v3"
)

// RedisConsumer manages the consumption of notification events from the Redis
// streams and schedules the daily digest trigger.
type RedisConsumer struct {
	cfg             *config.Config
	notifierService service.NotifierService
	logger          *logger.Logger
	cron            *cron.Cron
	stopChan        chan struct{}
	wg              sync.WaitGroup
}

// NewRedisConsumer creates a new RedisConsumer.
func NewRedisConsumer(
	cfg *config.Config,
	notifierService service.NotifierService,
	log *logger.Logger,
) *RedisConsumer {
	return &RedisConsumer{
		cfg:             cfg,
		notifierService: notifierService,
		logger:          log,
		cron:            cron.New(cron.WithLocation(time.UTC)),
		stopChan:        make(chan struct{}),
	}
}

// Start begins the consumer's event processing loops and the digest cron.
func (c *RedisConsumer) Start(ctx context.Context) error {
	c.logger.Info("Redis consumer started")
	c.RegisterStreamHandler(ctx, c.notifierService.ProcessUserCreated, common.RedisStreamUserCreated, c.cfg.Notifier.StreamReadTimeout)
	c.RegisterStreamHandler(ctx, c.notifierService.ProcessDailyNews, common.RedisStreamSendDailyNews, c.cfg.Notifier.StreamReadTimeout)
	c.RegisterStreamHandler(ctx, c.notifierService.ProcessPriceAlert, common.RedisStreamPriceAlert, c.cfg.Notifier.StreamReadTimeout)

	digestCron := c.cfg.Notifier.DigestCron
	if digestCron == "" {
		digestCron = common.DailyNewsCron
	}
	if _, err := c.cron.AddFunc(digestCron, func() {
		if err := c.notifierService.PublishDailyNews(ctx); err != nil {
			c.logger.Error("Failed to publish daily news event", logger.ErrorField(err))
		}
	}); err != nil {
		return err
	}
	c.cron.Start()
	return nil
}

func (c *RedisConsumer) RegisterStreamHandler(ctx context.Context, fn func(ctx context.Context), streamName string, timeout time.Duration) {
	c.logger.Info("Registering stream handler", logger.StringField("stream", streamName))
	c.wg.Add(1)
	utils.GoSafe(func() {
		defer c.wg.Done()
		for {
			select {
			case <-ctx.Done():
				c.logger.Info("Redis consumer stopping due to context cancellation")
				return
			case <-c.stopChan:
				c.logger.Info("Redis consumer stopping")
				return
			default:
				ctxTimeout, cancel := context.WithTimeout(ctx, timeout)
				fn(ctxTimeout)
				cancel()
			}
		}
	})
}

// Stop gracefully shuts down the consumer.
func (c *RedisConsumer) Stop() {
	cronCtx := c.cron.Stop()
	<-cronCtx.Done()
	close(c.stopChan)
	c.wg.Wait()
	c.logger.Info("Redis consumer stopped")
}
