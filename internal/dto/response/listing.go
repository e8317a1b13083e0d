package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

type ListingResponse struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	PricePerNight string    `json:"price_per_night"`
	Location      string    `json:"location"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ListingToResponse(listing *entity.Listing) ListingResponse {
	return ListingResponse{
		ID:            listing.ID,
		Title:         listing.Title,
		Description:   listing.Description,
		PricePerNight: listing.PricePerNight.StringFixed(2),
		Location:      listing.Location,
		CreatedAt:     listing.CreatedAt,
		UpdatedAt:     listing.UpdatedAt,
	}
}
