package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"travel-booking/internal/data/entity"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var paymentRowColumns = []string{"id", "booking_id", "amount", "status", "transaction_id", "created_at", "updated_at"}

const transitionSQL = `UPDATE payments SET status = $3, updated_at = NOW() WHERE transaction_id = $1 AND status = $2 RETURNING`

func newPaymentMock(t *testing.T) (pgxmock.PgxPoolIface, PaymentRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherFunc(matchCompactSQL)))
	if err != nil {
		t.Fatalf("pgxmock.NewPool() error = %v", err)
	}
	t.Cleanup(mock.Close)
	return mock, NewPaymentRepository(mock, zap.NewNop())
}

var whitespace = regexp.MustCompile(`\s+`)

// matchCompactSQL requires the expected text as a prefix of the query, ignoring indentation.
func matchCompactSQL(expected, actual string) error {
	want := whitespace.ReplaceAllString(strings.TrimSpace(expected), " ")
	got := whitespace.ReplaceAllString(strings.TrimSpace(actual), " ")
	if !strings.HasPrefix(got, want) {
		return errors.New("unexpected query: " + got)
	}
	return nil
}

func TestPaymentRepository_TransitionStatus(t *testing.T) {
	ref := "booking-7-1700000000-0123456789ab"
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("pending row is moved", func(t *testing.T) {
		mock, repo := newPaymentMock(t)
		mock.ExpectQuery(transitionSQL).
			WithArgs(ref, entity.PaymentStatusPending, entity.PaymentStatusCompleted).
			WillReturnRows(pgxmock.NewRows(paymentRowColumns).
				AddRow(int64(3), int64(7), decimal.RequireFromString("300.00"), entity.PaymentStatusCompleted, &ref, now, now))

		payment, applied, err := repo.TransitionStatus(context.Background(), ref, entity.PaymentStatusPending, entity.PaymentStatusCompleted)
		if err != nil {
			t.Fatalf("TransitionStatus() error = %v", err)
		}
		if !applied {
			t.Fatal("applied = false, want true")
		}
		if payment.ID != 3 || payment.Status != entity.PaymentStatusCompleted {
			t.Errorf("payment = %+v", payment)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
	})

	t.Run("row no longer pending", func(t *testing.T) {
		mock, repo := newPaymentMock(t)
		mock.ExpectQuery(transitionSQL).
			WithArgs(ref, entity.PaymentStatusPending, entity.PaymentStatusFailed).
			WillReturnRows(pgxmock.NewRows(paymentRowColumns))

		payment, applied, err := repo.TransitionStatus(context.Background(), ref, entity.PaymentStatusPending, entity.PaymentStatusFailed)
		if err != nil {
			t.Fatalf("TransitionStatus() error = %v", err)
		}
		if applied || payment != nil {
			t.Errorf("TransitionStatus() = %+v, %v, want nil, false", payment, applied)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
	})

	t.Run("database error", func(t *testing.T) {
		mock, repo := newPaymentMock(t)
		dbErr := errors.New("connection reset")
		mock.ExpectQuery(transitionSQL).
			WithArgs(ref, entity.PaymentStatusPending, entity.PaymentStatusCompleted).
			WillReturnError(dbErr)

		_, applied, err := repo.TransitionStatus(context.Background(), ref, entity.PaymentStatusPending, entity.PaymentStatusCompleted)
		if !errors.Is(err, dbErr) {
			t.Fatalf("error = %v, want %v", err, dbErr)
		}
		if applied {
			t.Error("applied = true on error")
		}
	})
}

func TestPaymentRepository_Create(t *testing.T) {
	ref := "booking-7-1700000000-0123456789ab"
	insertSQL := `INSERT INTO payments (booking_id, amount, status, transaction_id, created_at, updated_at)`

	t.Run("defaults to pending", func(t *testing.T) {
		mock, repo := newPaymentMock(t)
		now := time.Now()
		mock.ExpectQuery(insertSQL).
			WithArgs(int64(7), pgxmock.AnyArg(), entity.PaymentStatusPending, &ref).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(11), now, now))

		payment := &entity.Payment{BookingID: 7, Amount: decimal.RequireFromString("300.00"), TransactionID: &ref}
		if err := repo.Create(context.Background(), payment); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if payment.ID != 11 || payment.Status != entity.PaymentStatusPending {
			t.Errorf("payment = %+v", payment)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
	})

	t.Run("duplicate transaction id", func(t *testing.T) {
		mock, repo := newPaymentMock(t)
		mock.ExpectQuery(insertSQL).
			WithArgs(int64(7), pgxmock.AnyArg(), entity.PaymentStatusPending, &ref).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: paymentTransactionIDKey})

		payment := &entity.Payment{BookingID: 7, Amount: decimal.RequireFromString("300.00"), TransactionID: &ref}
		err := repo.Create(context.Background(), payment)
		if !errors.Is(err, ErrDuplicateTransactionID) {
			t.Fatalf("error = %v, want ErrDuplicateTransactionID", err)
		}
	})
}

func TestPaymentRepository_FindByTransactionIDMissing(t *testing.T) {
	mock, repo := newPaymentMock(t)
	mock.ExpectQuery(`SELECT id, booking_id, amount, status, transaction_id, created_at, updated_at FROM payments WHERE transaction_id = $1`).
		WithArgs("nope").
		WillReturnRows(pgxmock.NewRows(paymentRowColumns))

	payment, err := repo.FindByTransactionID(context.Background(), "nope")
	if err != nil || payment != nil {
		t.Errorf("FindByTransactionID() = %+v, %v, want nil, nil", payment, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
