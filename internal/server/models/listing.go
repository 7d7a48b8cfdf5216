package models

import "time"

// Listing statuses. Status is owner-immutable: only an admin-authored update
// may move a listing between statuses.
const (
	ListingStatusActive   = "active"
	ListingStatusPending  = "pending"
	ListingStatusRejected = "rejected"
)

// Listing is an individually-owned marketplace ad for a vehicle.
//
// OwnerID, Status and CreatedAt are immutable under an owner-authored update;
// SoldAt is derived from IsSold transitions and never client-settable. The
// policy package enforces both.
type Listing struct {
	ID      string
	OwnerID string
	Status  string

	Title        string
	Make         string
	Model        string
	Year         int
	Price        int64
	Mileage      int
	Transmission string
	FuelType     string
	Condition    string
	Location     string
	Description  string
	Images       []string

	IsSold bool
	SoldAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone returns a copy of the listing with its own Images slice.
func (l *Listing) Clone() *Listing {
	c := *l
	if l.Images != nil {
		c.Images = make([]string, len(l.Images))
		copy(c.Images, l.Images)
	}
	if l.SoldAt != nil {
		t := *l.SoldAt
		c.SoldAt = &t
	}
	return &c
}
