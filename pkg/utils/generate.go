package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateRequestID returns a fresh ID for X-Request-ID.
func GenerateRequestID() string {
	return uuid.New().String()
}

// GenerateTxRef builds the gateway transaction reference for one payment attempt.
// Format: booking-{bookingID}-{unix seconds}-{12 random hex chars}
func GenerateTxRef(bookingID int64, now time.Time) string {
	random := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	return fmt.Sprintf("booking-%d-%d-%s", bookingID, now.Unix(), random)
}
