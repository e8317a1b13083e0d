package request

const DateLayout = "2006-01-02"

type CreateBookingRequest struct {
	ListingID int64  `json:"listing" validate:"required,gt=0"`
	UserName  string `json:"user_name" validate:"required,max=100"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

type UpdateBookingRequest struct {
	ListingID *int64  `json:"listing,omitempty" validate:"omitempty,gt=0"`
	UserName  *string `json:"user_name,omitempty" validate:"omitempty,min=1,max=100"`
	StartDate *string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type ListBookingsRequest struct {
	PaginatedRequest
	ListingID *int64
}
