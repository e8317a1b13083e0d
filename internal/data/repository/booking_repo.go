package repository

import (
	"context"
	"errors"
	"fmt"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id int64) (*entity.Booking, error)
	FindAll(ctx context.Context, limit, offset int, listingID *int64) ([]*entity.Booking, error)
	CountAll(ctx context.Context, listingID *int64) (int64, error)
	Update(ctx context.Context, booking *entity.Booking) error
	Delete(ctx context.Context, id int64) error

	// Business queries
	FindWithPrice(ctx context.Context, id int64) (*entity.BookingWithPrice, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, listing_id, user_name, start_date, end_date, created_at, updated_at`

func scanBooking(row rowScanner) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.ListingID,
		&booking.UserName,
		&booking.StartDate,
		&booking.EndDate,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (listing_id, user_name, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		booking.ListingID,
		booking.UserName,
		booking.StartDate,
		booking.EndDate,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.Int64("listing_id", booking.ListingID),
			zap.String("user_name", booking.UserName),
		)
		return fmt.Errorf("create booking for listing %d: %w", booking.ListingID, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id int64) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.Int64("booking_id", id),
		)
		return nil, fmt.Errorf("find booking by ID %d: %w", id, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindWithPrice(ctx context.Context, id int64) (*entity.BookingWithPrice, error) {
	query := `
		SELECT b.id, b.listing_id, b.user_name, b.start_date, b.end_date, b.created_at, b.updated_at,
		       l.price_per_night
		FROM bookings b
		JOIN listings l ON l.id = b.listing_id
		WHERE b.id = $1
	`

	var booking entity.BookingWithPrice
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.ListingID,
		&booking.UserName,
		&booking.StartDate,
		&booking.EndDate,
		&booking.CreatedAt,
		&booking.UpdatedAt,
		&booking.PricePerNight,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking with price",
			zap.Error(err),
			zap.Int64("booking_id", id),
		)
		return nil, fmt.Errorf("find booking with price %d: %w", id, err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, limit, offset int, listingID *int64) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings`
	args := []interface{}{}

	if listingID != nil {
		query += ` WHERE listing_id = $1 ORDER BY id LIMIT $2 OFFSET $3`
		args = append(args, *listingID, limit, offset)
	} else {
		query += ` ORDER BY id LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find bookings",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func (r *bookingRepository) CountAll(ctx context.Context, listingID *int64) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings`
	args := []interface{}{}

	if listingID != nil {
		query += ` WHERE listing_id = $1`
		args = append(args, *listingID)
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET listing_id = $2, user_name = $3, start_date = $4, end_date = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		booking.ID,
		booking.ListingID,
		booking.UserName,
		booking.StartDate,
		booking.EndDate,
	).Scan(&booking.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("booking %d: %w", booking.ID, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.Int64("booking_id", booking.ID),
		)
		return fmt.Errorf("update booking %d: %w", booking.ID, err)
	}

	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM bookings WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.Int64("booking_id", id),
		)
		return fmt.Errorf("delete booking %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %d: %w", id, ErrNotFound)
	}

	r.log.Info("Booking deleted", zap.Int64("booking_id", id))
	return nil
}
