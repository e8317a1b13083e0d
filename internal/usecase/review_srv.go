package usecase

import (
	"context"
	"errors"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

type ReviewService interface {
	CreateReview(ctx context.Context, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetReview(ctx context.Context, id int64) (*response.ReviewResponse, error)
	ListReviews(ctx context.Context, req *request.ListReviewsRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	UpdateReview(ctx context.Context, id int64, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, id int64) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

const msgReviewNotFound = "Review not found"

func (s *reviewService) CreateReview(ctx context.Context, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	// Check if listing exists
	listing, err := s.repo.Listing.FindByID(ctx, req.ListingID)
	if err != nil {
		return nil, InternalError("Failed to get listing", err)
	}
	if listing == nil {
		return nil, validationFailed(map[string]string{"listing": msgListingNotFound})
	}

	review := &entity.Review{
		ListingID: req.ListingID,
		UserName:  req.UserName,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		return nil, InternalError("Failed to create review", err)
	}

	s.log.Info("Review created",
		zap.Int64("review_id", review.ID),
		zap.Int64("listing_id", review.ListingID),
		zap.Int("rating", review.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) GetReview(ctx context.Context, id int64) (*response.ReviewResponse, error) {
	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		return nil, InternalError("Failed to get review", err)
	}
	if review == nil {
		return nil, NotFoundError(msgReviewNotFound)
	}

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) ListReviews(ctx context.Context, req *request.ListReviewsRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	reviews, err := s.repo.Review.FindAll(ctx, req.Limit(), req.Offset(), req.ListingID)
	if err != nil {
		return nil, InternalError("Failed to list reviews", err)
	}

	total, err := s.repo.Review.CountAll(ctx, req.ListingID)
	if err != nil {
		return nil, InternalError("Failed to count reviews", err)
	}

	data := make([]response.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		data = append(data, response.ReviewToResponse(review))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *reviewService) UpdateReview(ctx context.Context, id int64, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update review validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		return nil, InternalError("Failed to get review", err)
	}
	if review == nil {
		return nil, NotFoundError(msgReviewNotFound)
	}

	if req.UserName != nil {
		review.UserName = *req.UserName
	}
	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}

	if err := s.repo.Review.Update(ctx, review); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFoundError(msgReviewNotFound)
		}
		return nil, InternalError("Failed to update review", err)
	}

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, id int64) error {
	if err := s.repo.Review.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFoundError(msgReviewNotFound)
		}
		return InternalError("Failed to delete review", err)
	}

	s.log.Info("Review deleted", zap.Int64("review_id", id))
	return nil
}
