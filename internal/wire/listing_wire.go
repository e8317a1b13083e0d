package wire

import (
	"travel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// trailing slashes are stripped before routing, /api/listings/ matches /api/listings
func wireListing(r chi.Router, listingHandler *adaptor.ListingHandler) {
	r.Route("/api/listings", func(r chi.Router) {
		r.Get("/", listingHandler.ListListings)
		r.Post("/", listingHandler.CreateListing)
		r.Get("/{id}", listingHandler.GetListing)
		r.Put("/{id}", listingHandler.UpdateListing)
		r.Patch("/{id}", listingHandler.UpdateListing)
		r.Delete("/{id}", listingHandler.DeleteListing)
	})
}
