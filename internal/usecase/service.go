package usecase

import (
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/events"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Listing ListingService
	Booking BookingService
	Review  ReviewService
	Payment PaymentService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	gateway PaymentGateway,
	publisher events.Publisher,
	log *zap.Logger,
) *Service {
	return &Service{
		Listing: NewListingService(repo, log),
		Booking: NewBookingService(repo, log),
		Review:  NewReviewService(repo, log),
		Payment: NewPaymentService(repo, gateway, publisher, config.Gateway, log),
	}
}

const msgValidationFailed = "Validation failed"

func validationFailed(errs map[string]string) *Error {
	return ValidationError(msgValidationFailed, errs)
}
