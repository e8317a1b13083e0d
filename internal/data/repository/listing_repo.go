package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	FindByID(ctx context.Context, id int64) (*entity.Listing, error)
	FindAll(ctx context.Context, limit, offset int, locationFilter *string) ([]*entity.Listing, error)
	CountAll(ctx context.Context, locationFilter *string) (int64, error)
	Update(ctx context.Context, listing *entity.Listing) error
	Delete(ctx context.Context, id int64) error
}

type listingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewListingRepository(db database.PgxIface, log *zap.Logger) ListingRepository {
	return &listingRepository{
		db:  db,
		log: log.With(zap.String("repository", "listing")),
	}
}

const listingColumns = `id, title, description, price_per_night, location, created_at, updated_at`

func scanListing(row rowScanner) (*entity.Listing, error) {
	var listing entity.Listing
	err := row.Scan(
		&listing.ID,
		&listing.Title,
		&listing.Description,
		&listing.PricePerNight,
		&listing.Location,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	query := `
		INSERT INTO listings (title, description, price_per_night, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		listing.Title,
		listing.Description,
		listing.PricePerNight,
		listing.Location,
	).Scan(&listing.ID, &listing.CreatedAt, &listing.UpdatedAt)

	if err != nil {
		r.log.Error("Failed to create listing",
			zap.Error(err),
			zap.String("title", listing.Title),
		)
		return fmt.Errorf("create listing %s: %w", listing.Title, err)
	}

	return nil
}

func (r *listingRepository) FindByID(ctx context.Context, id int64) (*entity.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	listing, err := scanListing(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find listing by ID",
			zap.Error(err),
			zap.Int64("listing_id", id),
		)
		return nil, fmt.Errorf("find listing by ID %d: %w", id, err)
	}

	return listing, nil
}

func (r *listingRepository) FindAll(ctx context.Context, limit, offset int, locationFilter *string) ([]*entity.Listing, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + listingColumns + ` FROM listings WHERE 1=1`)

	args := []interface{}{}
	argCount := 1

	if locationFilter != nil && *locationFilter != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND location ILIKE $%d", argCount))
		args = append(args, "%"+*locationFilter+"%")
		argCount++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all listings",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all listings: %w", err)
	}
	defer rows.Close()

	var listings []*entity.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			r.log.Error("Failed to scan listing row", zap.Error(err))
			return nil, fmt.Errorf("scan listing row: %w", err)
		}
		listings = append(listings, listing)
	}

	return listings, rows.Err()
}

func (r *listingRepository) CountAll(ctx context.Context, locationFilter *string) (int64, error) {
	query := `SELECT COUNT(*) FROM listings`
	args := []interface{}{}

	if locationFilter != nil && *locationFilter != "" {
		query += ` WHERE location ILIKE $1`
		args = append(args, "%"+*locationFilter+"%")
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count listings", zap.Error(err))
		return 0, fmt.Errorf("count listings: %w", err)
	}

	return count, nil
}

func (r *listingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	query := `
		UPDATE listings
		SET title = $2, description = $3, price_per_night = $4, location = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		listing.ID,
		listing.Title,
		listing.Description,
		listing.PricePerNight,
		listing.Location,
	).Scan(&listing.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("listing %d: %w", listing.ID, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to update listing",
			zap.Error(err),
			zap.Int64("listing_id", listing.ID),
		)
		return fmt.Errorf("update listing %d: %w", listing.ID, err)
	}

	return nil
}

// Delete removes the listing; bookings, reviews and payments go with it via ON DELETE CASCADE.
func (r *listingRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM listings WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete listing",
			zap.Error(err),
			zap.Int64("listing_id", id),
		)
		return fmt.Errorf("delete listing %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("listing %d: %w", id, ErrNotFound)
	}

	r.log.Info("Listing deleted", zap.Int64("listing_id", id))
	return nil
}
