package activities

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/dbx"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, activity *models.Activity) error {
	query :=
		`INSERT INTO activity_log (id, user_id, type, entity_id, metadata)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at
		 `

	metadata := []byte(`{}`)
	if activity.Metadata != nil {
		var err error
		metadata, err = json.Marshal(activity.Metadata)
		if err != nil {
			return fmt.Errorf("metadata encode error: %w", err)
		}
	}

	err := r.db.QueryRowContext(ctx, query,
		activity.ID, activity.UserID, activity.Type, activity.EntityID, metadata).
		Scan(&activity.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Activity, error) {
	query :=
		`SELECT id, user_id, type, entity_id, metadata, created_at FROM activity_log
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Activity
	for rows.Next() {
		activity := &models.Activity{}
		var metadata []byte
		if err := rows.Scan(&activity.ID, &activity.UserID, &activity.Type,
			&activity.EntityID, &metadata, &activity.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &activity.Metadata); err != nil {
				return nil, fmt.Errorf("metadata decode error: %w", err)
			}
		}
		result = append(result, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
