package policy

import (
	"context"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/models"
)

// ActivityRule gates the append-only activity log: insert-only by the owning
// user, immutable after creation, visible only to its owner. There is no
// update or delete operation to gate.
type ActivityRule struct{}

func NewActivityRule() *ActivityRule {
	return &ActivityRule{}
}

func (r *ActivityRule) CanRead(ctx context.Context, p Principal, row *models.Activity) bool {
	return p.Is(row.UserID)
}

func (r *ActivityRule) CanCreate(ctx context.Context, p Principal, row *models.Activity) bool {
	return p.Is(row.UserID)
}
