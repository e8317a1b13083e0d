package request

import (
	"bytes"
	"fmt"
	"strconv"
)

// FlexibleID decodes a JSON number or a numeric string.
type FlexibleID int64

func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*id = 0
		return nil
	}
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("booking_id must be an integer, got %s", data)
	}
	*id = FlexibleID(v)
	return nil
}

type InitiatePaymentRequest struct {
	BookingID FlexibleID `json:"booking_id" validate:"required"`
	Email     string     `json:"email" validate:"required,email"`
	FirstName string     `json:"first_name" validate:"required"`
	LastName  string     `json:"last_name" validate:"required"`
}
