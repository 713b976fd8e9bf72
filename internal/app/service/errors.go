package service

import (
	"errors"
	"net/http"

	"github.com/Durgesh4254/flight-booking-wizard/internal/pkg/bookingclient"
	"github.com/Durgesh4254/flight-booking-wizard/internal/pkg/exception"
)

var ErrSessionNotFound = exception.ApplicationError{
	Message:    "session not found",
	StatusCode: http.StatusNotFound,
}

// toApplicationError maps booking client failures onto transport statuses.
// Wizard and validation errors already carry a status and pass through.
// The taxonomy message always survives so the user sees what the service
// reported.
func toApplicationError(err error) error {
	var appErr exception.ApplicationError
	if errors.As(err, &appErr) {
		return err
	}

	var transportErr bookingclient.TransportError
	if errors.As(err, &transportErr) {
		return exception.ApplicationError{
			StatusCode: http.StatusBadGateway,
			Message:    transportErr.Error(),
			Cause:      transportErr.Err,
		}
	}

	var svcErr bookingclient.ServiceError
	if errors.As(err, &svcErr) {
		return exception.ApplicationError{
			StatusCode: http.StatusBadGateway,
			Message:    svcErr.Message,
		}
	}

	var bizErr bookingclient.BusinessError
	if errors.As(err, &bizErr) {
		return exception.ApplicationError{
			StatusCode: http.StatusUnprocessableEntity,
			Message:    bizErr.Message,
		}
	}

	return err
}
