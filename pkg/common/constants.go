package common

const (
	RedisStreamUserCreated   = "app.user.created"
	RedisStreamSendDailyNews = "app.send.daily.news"
	RedisStreamPriceAlert    = "alert.price.triggered"

	RedisStreamGroup    = "notifier-group"
	RedisStreamConsumer = "notifier-consumer"
)

// DailyNewsCron is the schedule for the daily news digest, 12:00 UTC.
const DailyNewsCron = "0 12 * * *"
