package api

import (
	"errors"

	"Jyotisa/internal/domain/models"
	xhttp "Jyotisa/pkg/http"
)

// toAppError maps core errors onto boundary error codes.
func toAppError(err error) *xhttp.AppError {
	var (
		appErr *xhttp.AppError
		inErr  *models.InputError
	)
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.As(err, &inErr):
		return xhttp.BadRequestError(inErr.Error()).WithField(inErr.Field).WithError(err)
	case errors.Is(err, models.ErrUnknownEventCategory):
		return xhttp.UnprocessableError("ERR_UNKNOWN_EVENT", err.Error()).WithError(err)
	case errors.Is(err, models.ErrLordNotInChart):
		return xhttp.UnprocessableError("ERR_LORD_NOT_FOUND", err.Error()).WithError(err)
	case errors.Is(err, models.ErrProviderUnavailable):
		return xhttp.BadGatewayError("ephemeris provider unavailable").WithError(err)
	default:
		return xhttp.InternalError("Something went wrong").WithError(err)
	}
}
