package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	capabilitydomain "github.com/railzwaylabs/paygate/internal/capability/domain"
	"github.com/railzwaylabs/paygate/internal/paymentmethod/domain"
)

type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *apiError) Error() string { return e.Message }

func newValidationError(field, code, message string) *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: code, Message: field + ": " + message}
}

func invalidRequestError() *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: "invalid_request", Message: "invalid request body"}
}

func invalidSignatureError() *apiError {
	return &apiError{Status: http.StatusUnauthorized, Code: "invalid_signature", Message: "invalid webhook signature"}
}

func respondData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// AbortWithError maps domain errors onto HTTP responses.
func AbortWithError(c *gin.Context, err error) {
	var apiErr *apiError
	if !errors.As(err, &apiErr) {
		apiErr = mapError(err)
	}
	c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
}

func mapError(err error) *apiError {
	switch {
	case errors.Is(err, domain.ErrUnsupportedOperation):
		return &apiError{Status: http.StatusUnprocessableEntity, Code: "unsupported_operation", Message: err.Error()}
	case errors.Is(err, domain.ErrUnknownPaymentMethod):
		return &apiError{Status: http.StatusBadRequest, Code: "unknown_payment_method", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidPaymentRecord):
		return &apiError{Status: http.StatusBadRequest, Code: "invalid_payment_record", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidUser):
		return &apiError{Status: http.StatusBadRequest, Code: "invalid_user", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidOrderAmount):
		return &apiError{Status: http.StatusBadRequest, Code: "invalid_order_amount", Message: err.Error()}
	case errors.Is(err, capabilitydomain.ErrAccountRequired), errors.Is(err, domain.ErrConfigurationMissing):
		return &apiError{Status: http.StatusServiceUnavailable, Code: "configuration_missing", Message: err.Error()}
	default:
		return &apiError{Status: http.StatusInternalServerError, Code: "internal_error", Message: "internal error"}
	}
}
