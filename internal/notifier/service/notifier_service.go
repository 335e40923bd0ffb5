package service

import (
	"context"
	"encoding/json"
	"time"

	"go-signalist/internal/entity"
	"go-signalist/internal/notifier/strategy"
	"go-signalist/pkg/common"
	"go-signalist/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const defaultStreamMaxLen = 1000

// NotifierService consumes notification events from the Redis streams and
// dispatches them to the matching workflow strategy.
type NotifierService interface {
	ProcessUserCreated(ctx context.Context)
	ProcessDailyNews(ctx context.Context)
	ProcessPriceAlert(ctx context.Context)
	PublishDailyNews(ctx context.Context) error
}

// NewNotifierService creates a new NotifierService. streamMaxLen bounds the
// streams this service publishes to; a non-positive value falls back to the
// default.
func NewNotifierService(
	redisClient *redis.Client,
	log *logger.Logger,
	strategies []strategy.NotificationStrategy,
	streamMaxLen int64,
) NotifierService {
	strategyMap := make(map[entity.EventType]strategy.NotificationStrategy)
	for _, s := range strategies {
		strategyMap[s.GetType()] = s
	}
	if streamMaxLen <= 0 {
		streamMaxLen = defaultStreamMaxLen
	}

	return &notifierService{
		redisClient:  redisClient,
		logger:       log,
		strategies:   strategyMap,
		streamMaxLen: streamMaxLen,
	}
}

type notifierService struct {
	redisClient  *redis.Client
	logger       *logger.Logger
	strategies   map[entity.EventType]strategy.NotificationStrategy
	streamMaxLen int64
}

func (s *notifierService) ProcessUserCreated(ctx context.Context) {
	s.processStream(ctx, common.RedisStreamUserCreated, entity.EventTypeUserCreated)
}

func (s *notifierService) ProcessDailyNews(ctx context.Context) {
	s.processStream(ctx, common.RedisStreamSendDailyNews, entity.EventTypeSendDailyNews)
}

func (s *notifierService) ProcessPriceAlert(ctx context.Context) {
	s.processStream(ctx, common.RedisStreamPriceAlert, entity.EventTypePriceAlert)
}

// PublishDailyNews enqueues an empty digest event so the cron trigger and
// on-demand requests share one consumption path.
func (s *notifierService) PublishDailyNews(ctx context.Context) error {
	return s.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: common.RedisStreamSendDailyNews,
		MaxLen: s.streamMaxLen,
		Approx: true,
		Values: map[string]interface{}{"payload": "{}"},
	}).Err()
}

// processStream dequeues and handles a single event from the given stream.
func (s *notifierService) processStream(ctx context.Context, streamName string, eventType entity.EventType) {
	streams, err := s.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer,
		Streams:  []string{streamName, ">"}, // ">" means only new messages
		Count:    1,
		Block:    2 * time.Second, // Block for 2 seconds to allow graceful shutdown
		NoAck:    true,
	}).Result()

	if err != nil {
		// Ignore context cancellation and timeout errors, as they are expected during shutdown or idle periods.
		if err == context.Canceled || err == redis.Nil || ctx.Err() != nil {
			return
		}
		s.logger.Error("Failed to read from stream", logger.ErrorField(err), logger.StringField("stream", streamName))
		return
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return
	}

	message := streams[0].Messages[0]

	// The event data is expected to be a JSON string in the 'payload' field.
	payload, ok := message.Values["payload"].(string)
	if !ok {
		s.logger.Error("field 'payload' not found or not a string in stream message",
			logger.StringField("stream", streamName),
			logger.Field("message_id", message.ID))
		return
	}

	s.logger.Info("Processing event",
		logger.StringField("stream", streamName),
		logger.Field("message_id", message.ID))

	handler, ok := s.strategies[eventType]
	if !ok {
		s.logger.Error("No strategy registered for event type", logger.StringField("event_type", string(eventType)))
		return
	}

	result, err := handler.Execute(ctx, json.RawMessage(payload))
	if err != nil {
		s.logger.Error("Event handling failed",
			logger.ErrorField(err),
			logger.StringField("stream", streamName),
			logger.StringField("result", result),
			logger.Field("message_id", message.ID))
		return
	}

	s.logger.Info("Event handled",
		logger.StringField("stream", streamName),
		logger.StringField("result", result),
		logger.Field("message_id", message.ID))
}
