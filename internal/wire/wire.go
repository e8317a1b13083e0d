package wire

import (
	"context"
	"net/http"
	"time"

	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/database"
	"travel-booking/pkg/events"
	"travel-booking/pkg/middleware"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/newrelic/go-agent/v3/newrelic"
	"go.uber.org/zap"
)

// App holds the assembled router
type App struct {
	Router *chi.Mux
}

// Deps are the infrastructure pieces built in main. Optional ones may be nil.
type Deps struct {
	DB          database.PgxIface
	Gateway     usecase.PaymentGateway
	Publisher   events.Publisher
	Idempotency middleware.IdempotencyStore
	NewRelic    *newrelic.Application
}

// Wiring builds repositories, services, handlers and routes
func Wiring(deps Deps, config *utils.Config, logger *zap.Logger) *App {
	repo := repository.NewRepository(deps.DB, logger)
	service := usecase.NewService(repo, config, deps.Gateway, deps.Publisher, logger)
	handler := adaptor.NewHandler(service, logger, config.App.Debug)

	router := setupRouter(handler, deps, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	deps Deps,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.StripSlashes)
	r.Use(middleware.RequestID())
	r.Use(middleware.NewRelic(deps.NewRelic))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	// Apply routes
	wireListing(r, handler.Listing)
	wireBooking(r, handler.Booking)
	wireReview(r, handler.Review)
	wirePayment(r, handler.Payment, deps.Idempotency, config, logger)

	// Health check endpoint
	r.Get("/health", healthHandler(deps.DB))

	return r
}

func healthHandler(db database.PgxIface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if db != nil {
			if err := db.Ping(ctx); err != nil {
				utils.ResponseJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "database": "down"})
				return
			}
		}
		utils.ResponseSuccess(w, map[string]string{"status": "ok"})
	}
}
