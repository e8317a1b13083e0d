package request

type CreateReviewRequest struct {
	ListingID int64  `json:"listing" validate:"required,gt=0"`
	UserName  string `json:"user_name" validate:"required,max=100"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

type UpdateReviewRequest struct {
	UserName *string `json:"user_name,omitempty" validate:"omitempty,min=1,max=100"`
	Rating   *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Comment  *string `json:"comment,omitempty"`
}

type ListReviewsRequest struct {
	PaginatedRequest
	ListingID *int64
}
