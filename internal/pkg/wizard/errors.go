package wizard

import (
	"fmt"
	"net/http"

	"github.com/Durgesh4254/flight-booking-wizard/internal/pkg/exception"
)

// ErrStaleResponse reports a network response that arrived after the wizard
// left the stage that issued the request. The response is discarded.
var ErrStaleResponse = exception.ApplicationError{
	StatusCode: http.StatusConflict,
	Message:    "response discarded: the wizard moved on while the request was in flight",
}

var ErrOfferNotFound = exception.ApplicationError{
	StatusCode: http.StatusNotFound,
	Message:    "offer not found in current results",
}

var ErrNoBooking = exception.ApplicationError{
	StatusCode: http.StatusConflict,
	Message:    "no confirmed booking in this session",
}

var ErrInvalidSeatClass = exception.ApplicationError{
	StatusCode: http.StatusBadRequest,
	Message:    "seat class must be Economy, Business or First",
}

func errWrongStage(action string, stage Stage) error {
	return exception.ApplicationError{
		StatusCode: http.StatusConflict,
		Message:    fmt.Sprintf("cannot %s from stage %s", action, stage),
	}
}

func errPassengerCount(want, got int) error {
	return exception.ApplicationError{
		StatusCode: http.StatusBadRequest,
		Message:    fmt.Sprintf("expected %d passengers, got %d", want, got),
	}
}

func errIncompletePassenger(slot int) error {
	return exception.ApplicationError{
		StatusCode: http.StatusBadRequest,
		Message:    fmt.Sprintf("passenger %d is missing name, age or gender", slot),
	}
}
