package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Service error taxonomy. Services wrap their failures in one of these so
// handlers can map them to HTTP status codes without inspecting messages.

// ValidationError signals malformed or missing input (caller's fault).
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string { return e.Message }

// NotFoundError signals that a referenced entity does not exist.
type NotFoundError struct {
	Message string
}

func (e NotFoundError) Error() string { return e.Message }

// ConflictError signals a session claim collision or duplicate unique field.
type ConflictError struct {
	Message string
}

func (e ConflictError) Error() string { return e.Message }

// PaymentProviderError signals a failure at the external payment capability.
// Safe to retry by the caller; local state is never mutated on this error.
type PaymentProviderError struct {
	Message string
	Err     error
}

func (e PaymentProviderError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e PaymentProviderError) Unwrap() error { return e.Err }

// HandleServiceError maps a service error onto the HTTP response.
func HandleServiceError(c *gin.Context, err error) {
	var (
		validationErr ValidationError
		notFoundErr   NotFoundError
		conflictErr   ConflictError
		providerErr   PaymentProviderError
	)
	switch {
	case errors.As(err, &validationErr):
		JSONError(c, http.StatusBadRequest, "Invalid request", validationErr.Message)
	case errors.As(err, &notFoundErr):
		JSONError(c, http.StatusNotFound, "Not found", notFoundErr.Message)
	case errors.As(err, &conflictErr):
		JSONError(c, http.StatusConflict, "Conflict", conflictErr.Message)
	case errors.As(err, &providerErr):
		JSONError(c, http.StatusBadGateway, "Payment provider error", providerErr.Message)
	default:
		JSONError(c, http.StatusInternalServerError, "Internal error", err.Error())
	}
}
