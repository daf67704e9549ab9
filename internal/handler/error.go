package handler

import (
	"errors"
	"net/http"
	"pharmacy-store/internal/service"

	"github.com/labstack/echo/v4"
)

// httpError maps the service failure taxonomy onto HTTP statuses. Anything
// unrecognised bubbles up to echo's recover middleware as a 500.
func httpError(err error) error {
	var validationErr *service.ValidationError
	var notFoundErr *service.ProductNotFoundError
	var stockErr *service.InsufficientStockError
	var commitErr *service.OrderCommitFailedError

	switch {
	case errors.As(err, &validationErr):
		return echo.NewHTTPError(http.StatusBadRequest, validationErr.Reason)
	case errors.As(err, &notFoundErr):
		return echo.NewHTTPError(http.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &stockErr):
		return echo.NewHTTPError(http.StatusConflict, stockErr.Error())
	case errors.As(err, &commitErr):
		return echo.NewHTTPError(http.StatusInternalServerError, commitErr.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusBadRequest, "invalid credentials")
	case errors.Is(err, service.ErrOrderNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "order not found")
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "access denied")
	case errors.Is(err, service.ErrSignatureInvalid):
		return echo.NewHTTPError(http.StatusBadRequest, "payment verification failed: invalid signature")
	case errors.Is(err, service.ErrGatewayUnavailable):
		return echo.NewHTTPError(http.StatusBadGateway, "failed to create payment order")
	case errors.Is(err, service.ErrGatewayRefundFailed):
		return echo.NewHTTPError(http.StatusBadGateway, "failed to initiate refund")
	default:
		return err
	}
}
