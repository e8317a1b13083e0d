package repository

import (
	"errors"

	"travel-booking/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned by Update/Delete when no row matched.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateTransactionID is returned when a payment reuses a transaction_id.
	ErrDuplicateTransactionID = errors.New("duplicate transaction id")
)

const uniqueViolation = "23505"

type Repository struct {
	Listing ListingRepository
	Booking BookingRepository
	Review  ReviewRepository
	Payment PaymentRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Listing: NewListingRepository(db, log),
		Booking: NewBookingRepository(db, log),
		Review:  NewReviewRepository(db, log),
		Payment: NewPaymentRepository(db, log),
	}
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == uniqueViolation && (constraint == "" || pgErr.ConstraintName == constraint)
}
