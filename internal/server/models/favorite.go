package models

import "time"

// Favorite is a pure join entity: unique per (UserID, ListingID), created and
// deleted strictly by its owning user, never updated.
type Favorite struct {
	UserID    string
	ListingID string
	CreatedAt time.Time
}
