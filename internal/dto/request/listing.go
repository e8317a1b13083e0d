package request

import "github.com/shopspring/decimal"

// price_per_night accepts both "150.00" and 150. Positivity is checked by the service.
type CreateListingRequest struct {
	Title         string          `json:"title" validate:"required,max=100"`
	Description   string          `json:"description" validate:"required"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	Location      string          `json:"location" validate:"required,max=100"`
}

type UpdateListingRequest struct {
	Title         *string          `json:"title,omitempty" validate:"omitempty,min=1,max=100"`
	Description   *string          `json:"description,omitempty"`
	PricePerNight *decimal.Decimal `json:"price_per_night,omitempty"`
	Location      *string          `json:"location,omitempty" validate:"omitempty,min=1,max=100"`
}

type ListListingsRequest struct {
	PaginatedRequest
	Location *string
}
