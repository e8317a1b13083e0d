package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Listing *ListingHandler
	Booking *BookingHandler
	Review  *ReviewHandler
	Payment *PaymentHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger, debug bool) *Handler {
	errs := &errorWriter{debug: debug}
	return &Handler{
		Listing: NewListingHandler(service.Listing, errs, log),
		Booking: NewBookingHandler(service.Booking, errs, log),
		Review:  NewReviewHandler(service.Review, errs, log),
		Payment: NewPaymentHandler(service.Payment, errs, log),
	}
}

const (
	msgInvalidBody     = "Invalid request body"
	msgInvalidID       = "Invalid ID"
	msgInternalError   = "Internal server error"
	maxRequestBodySize = 1 << 20
)

// errorWriter turns service errors into {"error", "details"} bodies.
type errorWriter struct {
	debug bool
}

func (e *errorWriter) write(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error, operation string) {
	requestID, _ := utils.GetRequestIDFromContext(r.Context())
	log = log.With(zap.String("operation", operation), zap.String("request_id", requestID))

	var svcErr *usecase.Error
	if !errors.As(err, &svcErr) {
		svcErr = usecase.InternalError(msgInternalError, err)
	}

	switch svcErr.Kind {
	case usecase.KindValidation, usecase.KindNotFound:
		log.Warn(operation+" failed", zap.Error(err))
		utils.ResponseError(w, svcErr.Kind.HTTPStatus(), svcErr.Message, svcErr.Details)

	case usecase.KindGateway:
		log.Warn(operation+" rejected by gateway", zap.Error(err))
		utils.ResponseError(w, svcErr.Kind.HTTPStatus(), svcErr.Message, svcErr.Details)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		message := msgInternalError
		if e.debug {
			message = err.Error()
		}
		utils.ResponseInternalError(w, message)
	}
}

// decodeJSON reads at most maxRequestBodySize bytes. An empty body decodes to the zero value.
func decodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBodySize)).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
