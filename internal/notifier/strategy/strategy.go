package strategy

import (
	"context"
	"encoding/json"

	"go-signalist/internal/entity"
)

// Execution result statuses recorded on the consumed event.
const (
	SUCCESS = "SUCCESS"
	FAILED  = "FAILED"
	SKIPPED = "SKIPPED"
)

// NotificationStrategy defines the interface for the event-driven
// notification workflows.
type NotificationStrategy interface {
	Execute(ctx context.Context, payload json.RawMessage) (string, error)
	GetType() entity.EventType
}
