package favorites

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/common"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/dbx"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, favorite *models.Favorite) error {
	query :=
		`INSERT INTO favorites (user_id, listing_id)
         VALUES ($1, $2)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query, favorite.UserID, favorite.ListingID).Scan(&favorite.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorConflict
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, listingID string) (*models.Favorite, error) {
	query :=
		`SELECT user_id, listing_id, created_at FROM favorites
		 WHERE user_id = $1 AND listing_id = $2
		 `

	favorite := &models.Favorite{}
	err := r.db.QueryRowContext(ctx, query, userID, listingID).
		Scan(&favorite.UserID, &favorite.ListingID, &favorite.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return favorite, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Favorite, error) {
	query :=
		`SELECT user_id, listing_id, created_at FROM favorites
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Favorite
	for rows.Next() {
		favorite := &models.Favorite{}
		if err := rows.Scan(&favorite.UserID, &favorite.ListingID, &favorite.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, favorite)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, listingID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND listing_id = $2`, userID, listingID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
