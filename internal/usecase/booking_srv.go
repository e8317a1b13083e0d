package usecase

import (
	"context"
	"errors"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, id int64) (*response.BookingResponse, error)
	ListBookings(ctx context.Context, req *request.ListBookingsRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	UpdateBooking(ctx context.Context, id int64, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	DeleteBooking(ctx context.Context, id int64) error

	// Payments attached to a booking, newest first
	GetBookingPayments(ctx context.Context, id int64) ([]response.PaymentResponse, error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

const msgBookingNotFound = "Booking not found"

// checkDates requires start strictly before end. Both are validated YYYY-MM-DD strings.
func checkDates(start, end time.Time, errs map[string]string) map[string]string {
	if start.Before(end) {
		return errs
	}
	if errs == nil {
		errs = make(map[string]string)
	}
	errs["end_date"] = "Must be after start_date"
	return errs
}

// listingExists reports a missing listing as a field error, not a 404.
func (s *bookingService) listingExists(ctx context.Context, listingID int64, errs map[string]string) (map[string]string, error) {
	listing, err := s.repo.Listing.FindByID(ctx, listingID)
	if err != nil {
		return errs, InternalError("Failed to get listing", err)
	}
	if listing != nil {
		return errs, nil
	}
	if errs == nil {
		errs = make(map[string]string)
	}
	errs["listing"] = msgListingNotFound
	return errs, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	start, _ := time.Parse(request.DateLayout, req.StartDate)
	end, _ := time.Parse(request.DateLayout, req.EndDate)

	errs := checkDates(start, end, nil)
	errs, err := s.listingExists(ctx, req.ListingID, errs)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	booking := &entity.Booking{
		ListingID: req.ListingID,
		UserName:  req.UserName,
		StartDate: start,
		EndDate:   end,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		return nil, InternalError("Failed to create booking", err)
	}

	s.log.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("listing_id", booking.ListingID),
		zap.Int("nights", booking.Nights()),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id int64) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, InternalError("Failed to get booking", err)
	}
	if booking == nil {
		return nil, NotFoundError(msgBookingNotFound)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) ListBookings(ctx context.Context, req *request.ListBookingsRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindAll(ctx, req.Limit(), req.Offset(), req.ListingID)
	if err != nil {
		return nil, InternalError("Failed to list bookings", err)
	}

	total, err := s.repo.Booking.CountAll(ctx, req.ListingID)
	if err != nil {
		return nil, InternalError("Failed to count bookings", err)
	}

	data := make([]response.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		data = append(data, response.BookingToResponse(booking))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, id int64, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update booking validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, InternalError("Failed to get booking", err)
	}
	if booking == nil {
		return nil, NotFoundError(msgBookingNotFound)
	}

	if req.UserName != nil {
		booking.UserName = *req.UserName
	}
	if req.StartDate != nil {
		booking.StartDate, _ = time.Parse(request.DateLayout, *req.StartDate)
	}
	if req.EndDate != nil {
		booking.EndDate, _ = time.Parse(request.DateLayout, *req.EndDate)
	}

	errs := checkDates(booking.StartDate, booking.EndDate, nil)
	if req.ListingID != nil && *req.ListingID != booking.ListingID {
		booking.ListingID = *req.ListingID
		if errs, err = s.listingExists(ctx, booking.ListingID, errs); err != nil {
			return nil, err
		}
	}
	if len(errs) > 0 {
		s.log.Warn("Update booking validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFoundError(msgBookingNotFound)
		}
		return nil, InternalError("Failed to update booking", err)
	}

	s.log.Info("Booking updated", zap.Int64("booking_id", id))

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, id int64) error {
	if err := s.repo.Booking.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFoundError(msgBookingNotFound)
		}
		return InternalError("Failed to delete booking", err)
	}
	return nil
}

func (s *bookingService) GetBookingPayments(ctx context.Context, id int64) ([]response.PaymentResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, InternalError("Failed to get booking", err)
	}
	if booking == nil {
		return nil, NotFoundError(msgBookingNotFound)
	}

	payments, err := s.repo.Payment.FindByBookingID(ctx, id)
	if err != nil {
		return nil, InternalError("Failed to get payments", err)
	}

	data := make([]response.PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		data = append(data, response.PaymentToResponse(payment))
	}
	return data, nil
}
