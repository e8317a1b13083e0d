package adaptor

import (
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	errs    *errorWriter
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, errs *errorWriter, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		errs:    errs,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings/
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody, nil)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), &req)
	if err != nil {
		h.errs.write(w, r, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, booking)
}

// ListBookings handles GET /api/bookings/?listing_id=
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	listingID, err := utils.ParseOptionalID(query.Get("listing_id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid listing_id", nil)
		return
	}

	req := &request.ListBookingsRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), request.DefaultPerPage),
		},
		ListingID: listingID,
	}

	bookings, err := h.service.ListBookings(r.Context(), req)
	if err != nil {
		h.errs.write(w, r, h.log, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, bookings)
}

// GetBooking handles GET /api/bookings/{id}/
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, msgInvalidID, nil)
		return
	}

	booking, err := h.service.GetBooking(r.Context(), id)
	if err != nil {
		h.errs.write(w, r, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, booking)
}

// UpdateBooking handles PUT and PATCH /api/bookings/{id}/
func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, msgInvalidID, nil)
		return
	}

	var req request.UpdateBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody, nil)
		return
	}

	booking, err := h.service.UpdateBooking(r.Context(), id, &req)
	if err != nil {
		h.errs.write(w, r, h.log, err, "update booking")
		return
	}

	utils.ResponseSuccess(w, booking)
}

// DeleteBooking handles DELETE /api/bookings/{id}/
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, msgInvalidID, nil)
		return
	}

	if err := h.service.DeleteBooking(r.Context(), id); err != nil {
		h.errs.write(w, r, h.log, err, "delete booking")
		return
	}

	utils.ResponseNoContent(w)
}

// GetBookingPayments handles GET /api/bookings/{id}/payments/
func (h *BookingHandler) GetBookingPayments(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, msgInvalidID, nil)
		return
	}

	payments, err := h.service.GetBookingPayments(r.Context(), id)
	if err != nil {
		h.errs.write(w, r, h.log, err, "get booking payments")
		return
	}

	utils.ResponseSuccess(w, payments)
}
