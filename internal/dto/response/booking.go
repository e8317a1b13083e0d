package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

type BookingResponse struct {
	ID        int64     `json:"id"`
	ListingID int64     `json:"listing"`
	UserName  string    `json:"user_name"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Nights    int       `json:"nights"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:        booking.ID,
		ListingID: booking.ListingID,
		UserName:  booking.UserName,
		StartDate: booking.StartDate.Format("2006-01-02"),
		EndDate:   booking.EndDate.Format("2006-01-02"),
		Nights:    booking.Nights(),
		CreatedAt: booking.CreatedAt,
		UpdatedAt: booking.UpdatedAt,
	}
}
