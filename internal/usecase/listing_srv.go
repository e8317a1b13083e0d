package usecase

import (
	"context"
	"errors"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ListingService interface {
	CreateListing(ctx context.Context, req *request.CreateListingRequest) (*response.ListingResponse, error)
	GetListing(ctx context.Context, id int64) (*response.ListingResponse, error)
	ListListings(ctx context.Context, req *request.ListListingsRequest) (*response.PaginatedResponse[response.ListingResponse], error)
	UpdateListing(ctx context.Context, id int64, req *request.UpdateListingRequest) (*response.ListingResponse, error)
	DeleteListing(ctx context.Context, id int64) error
}

type listingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewListingService(repo *repository.Repository, log *zap.Logger) ListingService {
	return &listingService{
		repo: repo,
		log:  log.With(zap.String("service", "listing")),
	}
}

const msgListingNotFound = "Listing not found"

func checkPrice(price decimal.Decimal, errs map[string]string) map[string]string {
	if price.IsPositive() {
		return errs
	}
	if errs == nil {
		errs = make(map[string]string)
	}
	errs["price_per_night"] = "Must be greater than 0"
	return errs
}

func (s *listingService) CreateListing(ctx context.Context, req *request.CreateListingRequest) (*response.ListingResponse, error) {
	errs := checkPrice(req.PricePerNight, utils.ValidateStruct(req))
	if len(errs) > 0 {
		s.log.Warn("Create listing validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	listing := &entity.Listing{
		Title:         req.Title,
		Description:   req.Description,
		PricePerNight: req.PricePerNight.Round(2),
		Location:      req.Location,
	}

	if err := s.repo.Listing.Create(ctx, listing); err != nil {
		return nil, InternalError("Failed to create listing", err)
	}

	s.log.Info("Listing created",
		zap.Int64("listing_id", listing.ID),
		zap.String("price_per_night", listing.PricePerNight.StringFixed(2)),
	)

	resp := response.ListingToResponse(listing)
	return &resp, nil
}

func (s *listingService) GetListing(ctx context.Context, id int64) (*response.ListingResponse, error) {
	listing, err := s.repo.Listing.FindByID(ctx, id)
	if err != nil {
		return nil, InternalError("Failed to get listing", err)
	}
	if listing == nil {
		return nil, NotFoundError(msgListingNotFound)
	}

	resp := response.ListingToResponse(listing)
	return &resp, nil
}

func (s *listingService) ListListings(ctx context.Context, req *request.ListListingsRequest) (*response.PaginatedResponse[response.ListingResponse], error) {
	listings, err := s.repo.Listing.FindAll(ctx, req.Limit(), req.Offset(), req.Location)
	if err != nil {
		return nil, InternalError("Failed to list listings", err)
	}

	total, err := s.repo.Listing.CountAll(ctx, req.Location)
	if err != nil {
		return nil, InternalError("Failed to count listings", err)
	}

	data := make([]response.ListingResponse, 0, len(listings))
	for _, listing := range listings {
		data = append(data, response.ListingToResponse(listing))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *listingService) UpdateListing(ctx context.Context, id int64, req *request.UpdateListingRequest) (*response.ListingResponse, error) {
	errs := utils.ValidateStruct(req)
	if req.PricePerNight != nil {
		errs = checkPrice(*req.PricePerNight, errs)
	}
	if len(errs) > 0 {
		s.log.Warn("Update listing validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	listing, err := s.repo.Listing.FindByID(ctx, id)
	if err != nil {
		return nil, InternalError("Failed to get listing", err)
	}
	if listing == nil {
		return nil, NotFoundError(msgListingNotFound)
	}

	if req.Title != nil {
		listing.Title = *req.Title
	}
	if req.Description != nil {
		listing.Description = *req.Description
	}
	if req.PricePerNight != nil {
		listing.PricePerNight = req.PricePerNight.Round(2)
	}
	if req.Location != nil {
		listing.Location = *req.Location
	}

	if err := s.repo.Listing.Update(ctx, listing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFoundError(msgListingNotFound)
		}
		return nil, InternalError("Failed to update listing", err)
	}

	s.log.Info("Listing updated", zap.Int64("listing_id", id))

	resp := response.ListingToResponse(listing)
	return &resp, nil
}

// DeleteListing also removes the listing's bookings, reviews and payments.
func (s *listingService) DeleteListing(ctx context.Context, id int64) error {
	if err := s.repo.Listing.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFoundError(msgListingNotFound)
		}
		return InternalError("Failed to delete listing", err)
	}
	return nil
}
