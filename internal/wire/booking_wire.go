package wire

import (
	"travel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Route("/api/bookings", func(r chi.Router) {
		r.Get("/", bookingHandler.ListBookings)
		r.Post("/", bookingHandler.CreateBooking)
		r.Get("/{id}", bookingHandler.GetBooking)
		r.Put("/{id}", bookingHandler.UpdateBooking)
		r.Patch("/{id}", bookingHandler.UpdateBooking)
		r.Delete("/{id}", bookingHandler.DeleteBooking)

		// GET /api/bookings/{id}/payments - payment attempts for one booking
		r.Get("/{id}/payments", bookingHandler.GetBookingPayments)
	})
}
