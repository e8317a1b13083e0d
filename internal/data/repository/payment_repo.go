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

const paymentTransactionIDKey = "payments_transaction_id_key"

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByID(ctx context.Context, id int64) (*entity.Payment, error)
	FindByTransactionID(ctx context.Context, txRef string) (*entity.Payment, error)
	FindByBookingID(ctx context.Context, bookingID int64) ([]*entity.Payment, error)

	// TransitionStatus moves a payment from one status to another only if it is
	// still in from. The bool is false when no row matched.
	TransitionStatus(ctx context.Context, txRef string, from, to entity.PaymentStatus) (*entity.Payment, bool, error)
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

const paymentColumns = `id, booking_id, amount, status, transaction_id, created_at, updated_at`

func scanPayment(row rowScanner) (*entity.Payment, error) {
	var payment entity.Payment
	err := row.Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.Amount,
		&payment.Status,
		&payment.TransactionID,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (booking_id, amount, status, transaction_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	if payment.Status == "" {
		payment.Status = entity.PaymentStatusPending
	}

	err := r.db.QueryRow(ctx, query,
		payment.BookingID,
		payment.Amount,
		payment.Status,
		payment.TransactionID,
	).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)

	if isUniqueViolation(err, paymentTransactionIDKey) {
		r.log.Error("Duplicate payment transaction id",
			zap.Int64("booking_id", payment.BookingID),
			zap.Stringp("transaction_id", payment.TransactionID),
		)
		return fmt.Errorf("create payment: %w", ErrDuplicateTransactionID)
	}
	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.Int64("booking_id", payment.BookingID),
			zap.Stringp("transaction_id", payment.TransactionID),
		)
		return fmt.Errorf("create payment for booking %d: %w", payment.BookingID, err)
	}

	r.log.Info("Payment created",
		zap.Int64("payment_id", payment.ID),
		zap.Int64("booking_id", payment.BookingID),
		zap.String("amount", payment.Amount.StringFixed(2)),
	)
	return nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id int64) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by ID",
			zap.Error(err),
			zap.Int64("payment_id", id),
		)
		return nil, fmt.Errorf("find payment by ID %d: %w", id, err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByTransactionID(ctx context.Context, txRef string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE transaction_id = $1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, txRef))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by transaction id",
			zap.Error(err),
			zap.String("transaction_id", txRef),
		)
		return nil, fmt.Errorf("find payment by transaction id %s: %w", txRef, err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByBookingID(ctx context.Context, bookingID int64) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find payments by booking",
			zap.Error(err),
			zap.Int64("booking_id", bookingID),
		)
		return nil, fmt.Errorf("find payments by booking %d: %w", bookingID, err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			r.log.Error("Failed to scan payment row", zap.Error(err))
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, payment)
	}

	return payments, rows.Err()
}

func (r *paymentRepository) TransitionStatus(ctx context.Context, txRef string, from, to entity.PaymentStatus) (*entity.Payment, bool, error) {
	query := `
		UPDATE payments
		SET status = $3, updated_at = NOW()
		WHERE transaction_id = $1 AND status = $2
		RETURNING ` + paymentColumns

	payment, err := scanPayment(r.db.QueryRow(ctx, query, txRef, from, to))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		r.log.Error("Failed to transition payment status",
			zap.Error(err),
			zap.String("transaction_id", txRef),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return nil, false, fmt.Errorf("transition payment %s to %s: %w", txRef, to, err)
	}

	r.log.Info("Payment status changed",
		zap.Int64("payment_id", payment.ID),
		zap.String("transaction_id", txRef),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	return payment, true, nil
}
