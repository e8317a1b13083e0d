package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Booking struct {
	Base
	ListingID int64     `db:"listing_id"`
	UserName  string    `db:"user_name"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
}

// Nights is the number of whole days between the start and end dates.
func (b *Booking) Nights() int {
	return int(b.EndDate.Sub(b.StartDate).Hours() / 24)
}

// BookingWithPrice is a booking joined with its listing's nightly rate.
type BookingWithPrice struct {
	Booking
	PricePerNight decimal.Decimal `db:"price_per_night"`
}

// Amount is price_per_night * nights, rounded to 2 places.
func (b *BookingWithPrice) Amount() decimal.Decimal {
	return b.PricePerNight.Mul(decimal.NewFromInt(int64(b.Nights()))).Round(2)
}
