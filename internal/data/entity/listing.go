package entity

import "github.com/shopspring/decimal"

type Listing struct {
	Base
	Title         string          `db:"title"`
	Description   string          `db:"description"`
	PricePerNight decimal.Decimal `db:"price_per_night"`
	Location      string          `db:"location"`
}
