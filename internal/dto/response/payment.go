package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

type InitiatePaymentResponse struct {
	Message     string `json:"message"`
	CheckoutURL string `json:"checkout_url"`
	PaymentID   int64  `json:"payment_id"`
}

type VerifyPaymentResponse struct {
	Message       string `json:"message"`
	PaymentStatus string `json:"payment_status"`
	Amount        string `json:"amount"`
	BookingID     int64  `json:"booking_id"`
}

type PaymentResponse struct {
	ID            int64     `json:"id"`
	BookingID     int64     `json:"booking"`
	Amount        string    `json:"amount"`
	Status        string    `json:"status"`
	TransactionID *string   `json:"transaction_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            payment.ID,
		BookingID:     payment.BookingID,
		Amount:        payment.Amount.StringFixed(2),
		Status:        string(payment.Status),
		TransactionID: payment.TransactionID,
		CreatedAt:     payment.CreatedAt,
		UpdatedAt:     payment.UpdatedAt,
	}
}
