package services

import (
	"context"
	"database/sql"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/common"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/logging"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/models"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/policy"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/repositories/repomanager"
)

// FavoriteService manages the favorites join table. A favorite always
// belongs to the acting principal; even admins cannot favorite on someone
// else's behalf.
type FavoriteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	evaluator   *policy.Evaluator
	activity    *ActivityService
	logger      logging.Logger
}

func NewFavoriteService(db *sql.DB, m repomanager.RepositoryManager, evaluator *policy.Evaluator,
	activity *ActivityService, logger logging.Logger) *FavoriteService {
	return &FavoriteService{
		db:          db,
		repomanager: m,
		evaluator:   evaluator,
		activity:    activity,
		logger:      logger.With("module", "favorite_service"),
	}
}

// Add favorites the listing for the principal. The listing must be visible
// to the principal; favoriting it twice yields common.ErrorConflict straight
// from the unique constraint, so no duplicate row can slip through under
// concurrency.
func (s *FavoriteService) Add(ctx context.Context, p policy.Principal, listingID string) (*models.Favorite, error) {
	listingRepo := s.repomanager.Listings(s.db)
	listing, err := listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !s.evaluator.CanReadListing(ctx, p, listing) {
		return nil, common.ErrorNotFound
	}

	row := &models.Favorite{UserID: p.Identity, ListingID: listingID}
	if err := s.evaluator.FavoriteCreate(ctx, p, row); err != nil {
		return nil, err
	}

	repo := s.repomanager.Favorites(s.db)
	if err := repo.Create(ctx, row); err != nil {
		return nil, err
	}

	if _, err := s.activity.Record(ctx, p, "favorite.created", listingID, nil); err != nil {
		s.logger.Warn(ctx, "activity not recorded", "type", "favorite.created", "entity", listingID, "error", err)
	}
	return row, nil
}

// Remove deletes the principal's favorite of the listing. An absent pair
// yields common.ErrorNotFound.
func (s *FavoriteService) Remove(ctx context.Context, p policy.Principal, listingID string) error {
	row := &models.Favorite{UserID: p.Identity, ListingID: listingID}
	if err := s.evaluator.FavoriteDelete(ctx, p, row); err != nil {
		return err
	}

	repo := s.repomanager.Favorites(s.db)
	if err := repo.Delete(ctx, p.Identity, listingID); err != nil {
		return err
	}

	if _, err := s.activity.Record(ctx, p, "favorite.deleted", listingID, nil); err != nil {
		s.logger.Warn(ctx, "activity not recorded", "type", "favorite.deleted", "entity", listingID, "error", err)
	}
	return nil
}

// ListForUser returns the favorites of userID if the principal may read
// them: the owner, or an admin. Someone else's favorites are reported as
// absent.
func (s *FavoriteService) ListForUser(ctx context.Context, p policy.Principal, userID string) ([]*models.Favorite, error) {
	if !s.evaluator.CanReadFavorite(ctx, p, &models.Favorite{UserID: userID}) {
		return nil, common.ErrorNotFound
	}

	repo := s.repomanager.Favorites(s.db)
	return repo.ListByUser(ctx, userID)
}
