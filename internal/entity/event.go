package entity

// EventType identifies a notification event consumed from a Redis stream.
type EventType string

const (
	EventTypeUserCreated   EventType = "app/user.created"
	EventTypeSendDailyNews EventType = "app/send.daily.news"
	EventTypePriceAlert    EventType = "alert/price.triggered"
)
