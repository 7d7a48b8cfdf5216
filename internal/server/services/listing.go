package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/common"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/logging"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/cache"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/models"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/policy"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ListingService implements the listing lifecycle. Every read re-applies the
// visibility predicate even when the row came from the cache, and every
// write goes through the policy evaluator before touching the database.
type ListingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	evaluator   *policy.Evaluator
	cache       *cache.ListingCache
	activity    *ActivityService
	logger      logging.Logger
}

func NewListingService(db *sql.DB, m repomanager.RepositoryManager, evaluator *policy.Evaluator,
	listingCache *cache.ListingCache, activity *ActivityService, logger logging.Logger) *ListingService {
	return &ListingService{
		db:          db,
		repomanager: m,
		evaluator:   evaluator,
		cache:       listingCache,
		activity:    activity,
		logger:      logger.With("module", "listing_service"),
	}
}

// Create inserts a new listing owned by the principal. Status, sold flags
// and timestamps come out of the enforcement hooks, not the payload.
func (s *ListingService) Create(ctx context.Context, p policy.Principal, newRow *models.Listing) (*models.Listing, error) {
	row, err := s.evaluator.ListingCreate(ctx, p, newRow)
	if err != nil {
		return nil, err
	}
	row.ID = uuid.NewString()

	repo := s.repomanager.Listings(s.db)
	created, err := repo.Create(ctx, row)
	if err != nil {
		return nil, err
	}

	s.recordActivity(ctx, p, "listing.created", created.ID, map[string]any{"title": created.Title})
	return created, nil
}

// Get returns the listing if the principal may see it; otherwise the row is
// reported as absent. The cache only ever short-circuits the row fetch,
// never the visibility decision.
func (s *ListingService) Get(ctx context.Context, p policy.Principal, id string) (*models.Listing, error) {
	listing, err := s.cache.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn(ctx, "listing cache read failed", "listing", id, "error", err)
		}
		repo := s.repomanager.Listings(s.db)
		listing, err = repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, listing); err != nil {
			s.logger.Warn(ctx, "listing cache write failed", "listing", id, "error", err)
		}
	}

	if !s.evaluator.CanReadListing(ctx, p, listing) {
		return nil, common.ErrorNotFound
	}
	return listing, nil
}

// List returns the listings visible to the principal: everything for admins,
// active rows plus the principal's own rows otherwise.
func (s *ListingService) List(ctx context.Context, p policy.Principal) ([]*models.Listing, error) {
	repo := s.repomanager.Listings(s.db)
	return repo.ListVisible(ctx, p.Identity, s.evaluator.IsAdmin(ctx, p))
}

// Update applies an update through the policy evaluator and persists the
// clamped row.
func (s *ListingService) Update(ctx context.Context, p policy.Principal, id string, updated *models.Listing) (*models.Listing, error) {
	repo := s.repomanager.Listings(s.db)
	old, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.evaluator.CanReadListing(ctx, p, old) {
		return nil, common.ErrorNotFound
	}

	row, err := s.evaluator.ListingUpdate(ctx, p, old, updated)
	if err != nil {
		return nil, err
	}

	if err := repo.Update(ctx, row); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)

	s.recordActivity(ctx, p, "listing.updated", id, nil)
	return row, nil
}

// Delete removes the listing if the principal may delete it.
func (s *ListingService) Delete(ctx context.Context, p policy.Principal, id string) error {
	repo := s.repomanager.Listings(s.db)
	old, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.evaluator.CanReadListing(ctx, p, old) {
		return common.ErrorNotFound
	}

	if err := s.evaluator.ListingDelete(ctx, p, old); err != nil {
		return err
	}

	if err := repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)

	s.recordActivity(ctx, p, "listing.deleted", id, nil)
	return nil
}

func (s *ListingService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn(ctx, "listing cache invalidation failed", "listing", id, "error", err)
	}
}

// recordActivity appends a log row for the principal's own action. Failures
// are logged, not propagated: the primary write already succeeded.
func (s *ListingService) recordActivity(ctx context.Context, p policy.Principal, typ, entityID string, metadata map[string]any) {
	if _, err := s.activity.Record(ctx, p, typ, entityID, metadata); err != nil {
		s.logger.Warn(ctx, "activity not recorded", "type", typ, "entity", entityID, "error", err)
	}
}
