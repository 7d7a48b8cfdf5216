// Package queue publishes marketplace activity events to RabbitMQ so that
// downstream consumers (search indexers, notification workers) can react to
// writes without coupling to the request path.
package queue

import "time"

// Queue names. Durable, declared idempotently on every publish.
const (
	ActivityQueueName = "activity.recorded"
)

// ActivityEvent mirrors a row appended to the activity log.
type ActivityEvent struct {
	ID         string         `json:"id"`
	UserID     string         `json:"user_id"`
	Type       string         `json:"type"`
	EntityID   string         `json:"entity_id"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	RecordedAt time.Time      `json:"recorded_at"`
}
