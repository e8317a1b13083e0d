package adaptor

import (
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	errs    *errorWriter
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, errs *errorWriter, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		errs:    errs,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// InitiatePayment handles POST /api/payments/initiate/
func (h *PaymentHandler) InitiatePayment(w http.ResponseWriter, r *http.Request) {
	var req request.InitiatePaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.Warn("Malformed initiate payment body", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid request", err.Error())
		return
	}

	resp, err := h.service.InitiatePayment(r.Context(), &req)
	if err != nil {
		h.errs.write(w, r, h.log, err, "initiate payment")
		return
	}

	utils.ResponseSuccess(w, resp)
}

// VerifyPayment handles GET /api/payments/verify/?tx_ref=
// Chapa's callback sends the reference as trx_ref, both are accepted.
func (h *PaymentHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	txRef := query.Get("tx_ref")
	if txRef == "" {
		txRef = query.Get("trx_ref")
	}

	resp, err := h.service.VerifyPayment(r.Context(), txRef)
	if err != nil {
		h.errs.write(w, r, h.log, err, "verify payment")
		return
	}

	utils.ResponseSuccess(w, resp)
}
