package wire

import (
	"travel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReview(r chi.Router, reviewHandler *adaptor.ReviewHandler) {
	r.Route("/api/reviews", func(r chi.Router) {
		r.Get("/", reviewHandler.ListReviews)
		r.Post("/", reviewHandler.CreateReview)
		r.Get("/{id}", reviewHandler.GetReview)
		r.Put("/{id}", reviewHandler.UpdateReview)
		r.Patch("/{id}", reviewHandler.UpdateReview)
		r.Delete("/{id}", reviewHandler.DeleteReview)
	})
}
