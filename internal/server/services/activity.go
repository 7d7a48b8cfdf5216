package services

import (
	"context"
	"database/sql"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/common"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/logging"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/models"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/policy"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/queue"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// EventPublisher delivers activity events to the broker. Implemented by
// *queue.Publisher; tests substitute a fake.
type EventPublisher interface {
	Publish(ctx context.Context, event *queue.ActivityEvent) error
}

// ActivityService appends to and reads the per-user activity log. Rows are
// append-only: there is no update or delete path anywhere in the service.
type ActivityService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	evaluator   *policy.Evaluator
	publisher   EventPublisher
	logger      logging.Logger
}

func NewActivityService(db *sql.DB, m repomanager.RepositoryManager, evaluator *policy.Evaluator,
	publisher EventPublisher, logger logging.Logger) *ActivityService {
	return &ActivityService{
		db:          db,
		repomanager: m,
		evaluator:   evaluator,
		publisher:   publisher,
		logger:      logger.With("module", "activity_service"),
	}
}

// Record appends an activity row authored by the principal and mirrors it to
// the broker. Publishing is best effort: a broker outage must never fail the
// write that triggered the event.
func (s *ActivityService) Record(ctx context.Context, p policy.Principal, typ, entityID string, metadata map[string]any) (*models.Activity, error) {
	row := &models.Activity{
		ID:       uuid.NewString(),
		UserID:   p.Identity,
		Type:     typ,
		EntityID: entityID,
		Metadata: metadata,
	}

	if err := s.evaluator.ActivityAppend(ctx, p, row); err != nil {
		return nil, err
	}

	repo := s.repomanager.Activities(s.db)
	if err := repo.Append(ctx, row); err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(ctx, &queue.ActivityEvent{
		ID:         row.ID,
		UserID:     row.UserID,
		Type:       row.Type,
		EntityID:   row.EntityID,
		Metadata:   row.Metadata,
		RecordedAt: row.CreatedAt,
	}); err != nil {
		s.logger.Warn(ctx, "activity event not published", "activity", row.ID, "error", err)
	}

	return row, nil
}

// ListForUser returns the activity rows of userID if the principal may read
// them. Someone else's log is reported as absent.
func (s *ActivityService) ListForUser(ctx context.Context, p policy.Principal, userID string) ([]*models.Activity, error) {
	if !s.evaluator.CanReadActivity(ctx, p, &models.Activity{UserID: userID}) {
		return nil, common.ErrorNotFound
	}

	repo := s.repomanager.Activities(s.db)
	return repo.ListByUser(ctx, userID)
}
