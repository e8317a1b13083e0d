package usecase

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorKind_HTTPStatus(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindGateway, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.kind.HTTPStatus(); got != tt.want {
			t.Errorf("%s.HTTPStatus() = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestKindOf(t *testing.T) {
	cause := errors.New("db down")
	wrapped := fmt.Errorf("handler: %w", InternalError("Failed to get booking", cause))

	if KindOf(wrapped) != KindInternal {
		t.Errorf("KindOf(wrapped internal) = %s", KindOf(wrapped))
	}
	if !errors.Is(wrapped, cause) {
		t.Error("cause lost from chain")
	}
	if KindOf(NotFoundError("Booking not found")) != KindNotFound {
		t.Error("KindOf(not found) mismatch")
	}
	if KindOf(errors.New("plain")) != KindInternal {
		t.Error("plain errors should be internal")
	}
}
