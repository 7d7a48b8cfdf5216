package listings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/common"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/dbx"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/models"
)

const listingColumns = `id, owner_id, status, title, make, model, year, price, mileage,
	transmission, fuel_type, condition, location, description, images,
	is_sold, sold_at, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, listing *models.Listing) (*models.Listing, error) {
	query :=
		`INSERT INTO listings (id, owner_id, status, title, make, model, year, price, mileage,
		    transmission, fuel_type, condition, location, description, images,
		    is_sold, sold_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		 `

	images, err := json.Marshal(listing.Images)
	if err != nil {
		return nil, fmt.Errorf("images encode error: %w", err)
	}
	if listing.Images == nil {
		images = []byte(`[]`)
	}

	_, err = r.db.ExecContext(ctx, query,
		listing.ID, listing.OwnerID, listing.Status, listing.Title, listing.Make, listing.Model,
		listing.Year, listing.Price, listing.Mileage, listing.Transmission, listing.FuelType,
		listing.Condition, listing.Location, listing.Description, images,
		listing.IsSold, listing.SoldAt, listing.CreatedAt, listing.UpdatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return listing, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	listing, err := scanListing(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return listing, nil
}

func (r *PostgresRepository) ListVisible(ctx context.Context, viewerID string, admin bool) ([]*models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings`

	var (
		rows *sql.Rows
		err  error
	)

	switch {
	case admin:
		query += ` ORDER BY created_at DESC`
		rows, err = r.db.QueryContext(ctx, query)
	case viewerID == "":
		query += ` WHERE status = $1 ORDER BY created_at DESC`
		rows, err = r.db.QueryContext(ctx, query, models.ListingStatusActive)
	default:
		query += ` WHERE status = $1 OR owner_id = $2 ORDER BY created_at DESC`
		rows, err = r.db.QueryContext(ctx, query, models.ListingStatusActive, viewerID)
	}

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, listing *models.Listing) error {
	query :=
		`UPDATE listings SET owner_id = $2, status = $3, title = $4, make = $5, model = $6,
		    year = $7, price = $8, mileage = $9, transmission = $10, fuel_type = $11,
		    condition = $12, location = $13, description = $14, images = $15,
		    is_sold = $16, sold_at = $17, updated_at = $18
		 WHERE id = $1
		 `

	images, err := json.Marshal(listing.Images)
	if err != nil {
		return fmt.Errorf("images encode error: %w", err)
	}
	if listing.Images == nil {
		images = []byte(`[]`)
	}

	res, err := r.db.ExecContext(ctx, query,
		listing.ID, listing.OwnerID, listing.Status, listing.Title, listing.Make, listing.Model,
		listing.Year, listing.Price, listing.Mileage, listing.Transmission, listing.FuelType,
		listing.Condition, listing.Location, listing.Description, images,
		listing.IsSold, listing.SoldAt, listing.UpdatedAt)
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

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM listings WHERE id = $1`, id)
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

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanListing(s scanner) (*models.Listing, error) {
	listing := &models.Listing{}
	var images []byte

	err := s.Scan(
		&listing.ID, &listing.OwnerID, &listing.Status, &listing.Title, &listing.Make,
		&listing.Model, &listing.Year, &listing.Price, &listing.Mileage, &listing.Transmission,
		&listing.FuelType, &listing.Condition, &listing.Location, &listing.Description, &images,
		&listing.IsSold, &listing.SoldAt, &listing.CreatedAt, &listing.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(images) > 0 {
		if err := json.Unmarshal(images, &listing.Images); err != nil {
			return nil, fmt.Errorf("images decode error: %w", err)
		}
	}

	return listing, nil
}
