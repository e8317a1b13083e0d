package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a service failure for the transport layer.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindNotFound
	KindGateway
)

// HTTPStatus maps a kind to its response code.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindValidation, KindGateway:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindGateway:
		return "gateway"
	default:
		return "internal"
	}
}

// Error is returned by every service method that fails.
// Message is safe to show to clients, Details is attached to the body as is.
type Error struct {
	Kind    ErrorKind
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func ValidationError(message string, details any) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

func NotFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func GatewayError(message string, details any, err error) *Error {
	return &Error{Kind: KindGateway, Message: message, Details: details, Err: err}
}

func InternalError(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns KindInternal for errors that did not come from a service.
func KindOf(err error) ErrorKind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}
