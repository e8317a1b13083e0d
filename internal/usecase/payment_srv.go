package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/chapa"
	"travel-booking/pkg/events"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// PaymentGateway is the remote provider the payment flow talks to.
type PaymentGateway interface {
	Initialize(ctx context.Context, req chapa.InitializeRequest) (*chapa.InitializeResult, error)
	Verify(ctx context.Context, txRef string) (*chapa.VerifyResult, error)
}

type PaymentService interface {
	InitiatePayment(ctx context.Context, req *request.InitiatePaymentRequest) (*response.InitiatePaymentResponse, error)
	VerifyPayment(ctx context.Context, txRef string) (*response.VerifyPaymentResponse, error)
}

const (
	msgMissingFields      = "Missing required fields"
	msgInvalidRequest     = "Invalid request"
	msgPaymentInitiated   = "Payment initiated successfully"
	msgInitiateFailed     = "Failed to initiate payment"
	msgTxRefRequired      = "Transaction reference is required"
	msgPaymentNotFound    = "Payment not found"
	msgPaymentVerified    = "Payment verified"
	msgVerificationFailed = "Verification failed"
	msgGatewayUnavailable = "Payment gateway unavailable"

	providerSuccess = "success"
	providerFailed  = "failed"
)

type paymentService struct {
	repo      *repository.Repository
	gateway   PaymentGateway
	publisher events.Publisher
	config    utils.GatewayConfig
	log       *zap.Logger
	now       func() time.Time

	// verifies of the same tx_ref share one gateway call and one write
	sf singleflight.Group
}

func NewPaymentService(
	repo *repository.Repository,
	gateway PaymentGateway,
	publisher events.Publisher,
	config utils.GatewayConfig,
	log *zap.Logger,
) PaymentService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if config.Timeout <= 0 {
		config.Timeout = 15 * time.Second
	}
	return &paymentService{
		repo:      repo,
		gateway:   gateway,
		publisher: publisher,
		config:    config,
		log:       log.With(zap.String("service", "payment")),
		now:       time.Now,
	}
}

func (s *paymentService) InitiatePayment(ctx context.Context, req *request.InitiatePaymentRequest) (*response.InitiatePaymentResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Initiate payment validation failed", zap.Any("errors", errs))
		if utils.HasMissingFields(errs) {
			return nil, ValidationError(msgMissingFields, nil)
		}
		return nil, ValidationError(msgInvalidRequest, errs)
	}

	bookingID := int64(req.BookingID)
	booking, err := s.repo.Booking.FindWithPrice(ctx, bookingID)
	if err != nil {
		return nil, InternalError("Failed to get booking", err)
	}
	if booking == nil {
		return nil, NotFoundError(msgBookingNotFound)
	}

	// the schema allows zero night bookings and zero prices, neither can be charged
	nights := booking.Nights()
	amount := booking.Amount()
	if nights <= 0 {
		return nil, ValidationError(msgInvalidRequest, map[string]string{"booking_id": "Booking must span at least one night"})
	}
	if !amount.IsPositive() {
		return nil, ValidationError(msgInvalidRequest, map[string]string{"booking_id": "Booking amount must be greater than 0"})
	}

	txRef := utils.GenerateTxRef(bookingID, s.now())
	log := s.log.With(zap.Int64("booking_id", bookingID), zap.String("tx_ref", txRef))

	gctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	result, err := s.gateway.Initialize(gctx, chapa.InitializeRequest{
		Amount:      amount,
		Currency:    s.config.Currency,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		TxRef:       txRef,
		CallbackURL: s.config.CallbackURL,
		ReturnURL:   s.config.ReturnURL,
	})
	if err != nil {
		var apiErr *chapa.APIError
		if errors.As(err, &apiErr) {
			log.Warn("Gateway rejected initialization", zap.Error(err))
			return nil, GatewayError(msgInitiateFailed, apiErr.Body, err)
		}
		log.Error("Gateway initialization failed", zap.Error(err))
		return nil, InternalError(msgGatewayUnavailable, err)
	}

	payment := &entity.Payment{
		BookingID:     bookingID,
		Amount:        amount,
		Status:        entity.PaymentStatusPending,
		TransactionID: &txRef,
	}
	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		// the customer already has a checkout URL for this tx_ref
		log.Error("Failed to save payment after gateway success",
			zap.Error(err),
			zap.String("checkout_url", result.CheckoutURL),
		)
		return nil, InternalError("Failed to save payment", err)
	}

	log.Info("Payment initiated",
		zap.Int64("payment_id", payment.ID),
		zap.String("amount", amount.StringFixed(2)),
		zap.Int("nights", nights),
	)

	return &response.InitiatePaymentResponse{
		Message:     msgPaymentInitiated,
		CheckoutURL: result.CheckoutURL,
		PaymentID:   payment.ID,
	}, nil
}

func (s *paymentService) VerifyPayment(ctx context.Context, txRef string) (*response.VerifyPaymentResponse, error) {
	txRef = strings.TrimSpace(txRef)
	if txRef == "" {
		return nil, ValidationError(msgTxRefRequired, nil)
	}

	// one caller disconnecting must not fail the others sharing this call,
	// the gateway call keeps its own timeout
	v, err, shared := s.sf.Do("verify_"+txRef, func() (interface{}, error) {
		return s.verify(context.WithoutCancel(ctx), txRef)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.log.Debug("Verify result shared", zap.String("tx_ref", txRef))
	}

	resp := *v.(*response.VerifyPaymentResponse)
	return &resp, nil
}

func (s *paymentService) verify(ctx context.Context, txRef string) (*response.VerifyPaymentResponse, error) {
	log := s.log.With(zap.String("tx_ref", txRef))

	payment, err := s.repo.Payment.FindByTransactionID(ctx, txRef)
	if err != nil {
		return nil, InternalError("Failed to get payment", err)
	}
	if payment == nil {
		return nil, NotFoundError(msgPaymentNotFound)
	}

	gctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	result, err := s.gateway.Verify(gctx, txRef)
	if err != nil {
		var apiErr *chapa.APIError
		if errors.As(err, &apiErr) {
			log.Warn("Gateway rejected verification", zap.Error(err))
			return nil, GatewayError(msgVerificationFailed, apiErr.Body, err)
		}
		log.Error("Gateway verification failed", zap.Error(err))
		return nil, InternalError(msgGatewayUnavailable, err)
	}

	target, ok := mapProviderStatus(result.Status)
	if !ok {
		log.Info("Provider status not actionable, payment left unchanged",
			zap.String("provider_status", result.Status),
			zap.String("status", string(payment.Status)),
		)
		return verifiedResponse(payment), nil
	}

	if payment.Status.IsTerminal() {
		if payment.Status != target {
			log.Warn("Provider status contradicts terminal payment",
				zap.Int64("payment_id", payment.ID),
				zap.String("status", string(payment.Status)),
				zap.String("provider_status", result.Status),
			)
		}
		return verifiedResponse(payment), nil
	}

	updated, applied, err := s.repo.Payment.TransitionStatus(ctx, txRef, entity.PaymentStatusPending, target)
	if err != nil {
		return nil, InternalError("Failed to update payment", err)
	}

	if !applied {
		// another writer moved it out of pending first
		current, err := s.repo.Payment.FindByTransactionID(ctx, txRef)
		if err != nil {
			return nil, InternalError("Failed to get payment", err)
		}
		if current == nil {
			return nil, NotFoundError(msgPaymentNotFound)
		}
		if current.Status != target {
			log.Warn("Provider status contradicts terminal payment",
				zap.Int64("payment_id", current.ID),
				zap.String("status", string(current.Status)),
				zap.String("provider_status", result.Status),
			)
		}
		return verifiedResponse(current), nil
	}

	s.publishStatusChanged(ctx, updated)

	return verifiedResponse(updated), nil
}

// publishStatusChanged never fails the caller, the payment row is already committed.
func (s *paymentService) publishStatusChanged(ctx context.Context, payment *entity.Payment) {
	txRef := ""
	if payment.TransactionID != nil {
		txRef = *payment.TransactionID
	}

	event := events.PaymentEvent{
		Type:          events.PaymentStatusChanged,
		PaymentID:     payment.ID,
		BookingID:     payment.BookingID,
		TransactionID: txRef,
		Status:        string(payment.Status),
		Amount:        payment.Amount.StringFixed(2),
		OccurredAt:    payment.UpdatedAt,
	}
	if err := s.publisher.Publish(ctx, txRef, event); err != nil {
		s.log.Warn("Failed to publish payment event",
			zap.Error(err),
			zap.String("tx_ref", txRef),
		)
	}
}

// mapProviderStatus returns false for statuses that must not change the payment.
func mapProviderStatus(status string) (entity.PaymentStatus, bool) {
	switch strings.ToLower(status) {
	case providerSuccess:
		return entity.PaymentStatusCompleted, true
	case providerFailed:
		return entity.PaymentStatusFailed, true
	default:
		return "", false
	}
}

func verifiedResponse(payment *entity.Payment) *response.VerifyPaymentResponse {
	return &response.VerifyPaymentResponse{
		Message:       msgPaymentVerified,
		PaymentStatus: string(payment.Status),
		Amount:        payment.Amount.StringFixed(2),
		BookingID:     payment.BookingID,
	}
}
