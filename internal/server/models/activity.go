package models

import "time"

// Activity is an append-only log row: insert-only by its own owner, immutable
// after creation, visible only to its owner.
type Activity struct {
	ID        string
	UserID    string
	Type      string
	EntityID  string
	Metadata  map[string]any
	CreatedAt time.Time
}
