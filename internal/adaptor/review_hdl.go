package adaptor

import (
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	errs    *errorWriter
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, errs *errorWriter, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		errs:    errs,
		log:     log.With(zap.String("handler", "review")),
	}
}

// CreateReview handles POST /api/reviews/
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req request.CreateReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody, nil)
		return
	}

	review, err := h.service.CreateReview(r.Context(), &req)
	if err != nil {
		h.errs.write(w, r, h.log, err, "create review")
		return
	}

	utils.ResponseCreated(w, review)
}

// ListReviews handles GET /api/reviews/?listing_id=
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	listingID, err := utils.ParseOptionalID(query.Get("listing_id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid listing_id", nil)
		return
	}

	req := &request.ListReviewsRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), request.DefaultPerPage),
		},
		ListingID: listingID,
	}

	reviews, err := h.service.ListReviews(r.Context(), req)
	if err != nil {
		h.errs.write(w, r, h.log, err, "list reviews")
		return
	}

	utils.ResponseSuccess(w, reviews)
}

// GetReview handles GET /api/reviews/{id}/
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, msgInvalidID, nil)
		return
	}

	review, err := h.service.GetReview(r.Context(), id)
	if err != nil {
		h.errs.write(w, r, h.log, err, "get review")
		return
	}

	utils.ResponseSuccess(w, review)
}

// UpdateReview handles PUT and PATCH /api/reviews/{id}/
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, msgInvalidID, nil)
		return
	}

	var req request.UpdateReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody, nil)
		return
	}

	review, err := h.service.UpdateReview(r.Context(), id, &req)
	if err != nil {
		h.errs.write(w, r, h.log, err, "update review")
		return
	}

	utils.ResponseSuccess(w, review)
}

// DeleteReview handles DELETE /api/reviews/{id}/
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, msgInvalidID, nil)
		return
	}

	if err := h.service.DeleteReview(r.Context(), id); err != nil {
		h.errs.write(w, r, h.log, err, "delete review")
		return
	}

	utils.ResponseNoContent(w)
}
