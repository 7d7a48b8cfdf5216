package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/models"
)

const listingTTL = 5 * time.Minute

// ListingCache stores individual listings by ID as JSON. Only the raw row is
// cached, never an authorization decision: visibility is re-evaluated on every
// read, so a cached pending listing still comes back not-found for strangers.
type ListingCache struct {
	cache Cache
}

func NewListingCache(cache Cache) *ListingCache {
	return &ListingCache{cache: cache}
}

func listingKey(id string) string {
	return "listing:" + id
}

// Get returns the cached listing or ErrCacheMiss.
func (c *ListingCache) Get(ctx context.Context, id string) (*models.Listing, error) {
	raw, err := c.cache.Get(ctx, listingKey(id))
	if err != nil {
		return nil, err
	}

	listing := &models.Listing{}
	if err := json.Unmarshal([]byte(raw), listing); err != nil {
		// Stale or corrupt payload, treat as a miss.
		_ = c.cache.Del(ctx, listingKey(id))
		return nil, ErrCacheMiss
	}

	return listing, nil
}

func (c *ListingCache) Set(ctx context.Context, listing *models.Listing) error {
	raw, err := json.Marshal(listing)
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, listingKey(listing.ID), string(raw), listingTTL)
}

func (c *ListingCache) Invalidate(ctx context.Context, id string) error {
	return c.cache.Del(ctx, listingKey(id))
}
