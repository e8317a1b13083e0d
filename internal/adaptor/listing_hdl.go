package adaptor

import (
	"net/http"
	"strings"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ListingHandler struct {
	service usecase.ListingService
	errs    *errorWriter
	log     *zap.Logger
}

func NewListingHandler(service usecase.ListingService, errs *errorWriter, log *zap.Logger) *ListingHandler {
	return &ListingHandler{
		service: service,
		errs:    errs,
		log:     log.With(zap.String("handler", "listing")),
	}
}

// CreateListing handles POST /api/listings/
func (h *ListingHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	var req request.CreateListingRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody, nil)
		return
	}

	listing, err := h.service.CreateListing(r.Context(), &req)
	if err != nil {
		h.errs.write(w, r, h.log, err, "create listing")
		return
	}

	utils.ResponseCreated(w, listing)
}

// ListListings handles GET /api/listings/
func (h *ListingHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ListListingsRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), request.DefaultPerPage),
		},
	}
	if location := strings.TrimSpace(query.Get("location")); location != "" {
		req.Location = &location
	}

	listings, err := h.service.ListListings(r.Context(), req)
	if err != nil {
		h.errs.write(w, r, h.log, err, "list listings")
		return
	}

	utils.ResponseSuccess(w, listings)
}

// GetListing handles GET /api/listings/{id}/
func (h *ListingHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, msgInvalidID, nil)
		return
	}

	listing, err := h.service.GetListing(r.Context(), id)
	if err != nil {
		h.errs.write(w, r, h.log, err, "get listing")
		return
	}

	utils.ResponseSuccess(w, listing)
}

// UpdateListing handles PUT and PATCH /api/listings/{id}/
func (h *ListingHandler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, msgInvalidID, nil)
		return
	}

	var req request.UpdateListingRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody, nil)
		return
	}

	listing, err := h.service.UpdateListing(r.Context(), id, &req)
	if err != nil {
		h.errs.write(w, r, h.log, err, "update listing")
		return
	}

	utils.ResponseSuccess(w, listing)
}

// DeleteListing handles DELETE /api/listings/{id}/
func (h *ListingHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, msgInvalidID, nil)
		return
	}

	if err := h.service.DeleteListing(r.Context(), id); err != nil {
		h.errs.write(w, r, h.log, err, "delete listing")
		return
	}

	utils.ResponseNoContent(w)
}
