package entity

import (
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// IsTerminal reports whether no further transition is allowed.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusFailed
}

// CanTransitionTo allows only pending -> completed and pending -> failed.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	return s == PaymentStatusPending && next.IsTerminal()
}

type Payment struct {
	Base
	BookingID     int64           `db:"booking_id"`
	Amount        decimal.Decimal `db:"amount"`
	Status        PaymentStatus   `db:"status"`
	TransactionID *string         `db:"transaction_id"`
}
