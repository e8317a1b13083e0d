package wire

import (
	"travel-booking/internal/adaptor"
	"travel-booking/pkg/middleware"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	store middleware.IdempotencyStore,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/payments", func(r chi.Router) {
		// POST /api/payments/initiate - replayable with an Idempotency-Key header
		r.With(middleware.Idempotency(store, config.Idempotency.TTL, config.Idempotency.LockTTL, log)).
			Post("/initiate", paymentHandler.InitiatePayment)

		// GET /api/payments/verify?tx_ref= - also the gateway callback target
		r.Get("/verify", paymentHandler.VerifyPayment)
	})
}
