package dto

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Durgesh4254/flight-booking-wizard/internal/pkg/exception"
)

// SessionRequest addresses one wizard session. It backs the body-less
// operations: state, confirm, back, reset and export.
type SessionRequest struct {
	SessionID string `json:"-"`
}

func (r *SessionRequest) Bind(req *http.Request) error {
	r.SessionID = chi.URLParam(req, "sessionID")
	if r.SessionID == "" {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    "session id is required",
		}
	}

	return nil
}

// SearchRequest submits the search form of a session.
type SearchRequest struct {
	SessionID string `json:"-"`

	SearchCriteria
}

func (r *SearchRequest) Bind(req *http.Request) error {
	r.SessionID = chi.URLParam(req, "sessionID")

	r.Normalize()

	return r.Validate()
}

// SelectOfferRequest picks one offer from the current results.
type SelectOfferRequest struct {
	SessionID string `json:"-"`
	OfferID   string `json:"offer_id" validate:"required"`
}

func (r *SelectOfferRequest) Bind(req *http.Request) error {
	r.SessionID = chi.URLParam(req, "sessionID")

	return validateRequest(r)
}

// SeatClassRequest submits the seat-class form.
type SeatClassRequest struct {
	SessionID string    `json:"-"`
	SeatClass SeatClass `json:"seat_class" validate:"required,oneof=Economy Business First"`
}

func (r *SeatClassRequest) Bind(req *http.Request) error {
	r.SessionID = chi.URLParam(req, "sessionID")

	return validateRequest(r)
}

// PassengersRequest submits every passenger slot at once. The form layer
// enforces required fields on each slot.
type PassengersRequest struct {
	SessionID  string      `json:"-"`
	Passengers []Passenger `json:"passengers" validate:"required,min=1,dive"`
}

func (r *PassengersRequest) Bind(req *http.Request) error {
	r.SessionID = chi.URLParam(req, "sessionID")

	return validateRequest(r)
}

// HoldRequest reserves seats on a flight ahead of confirmation.
type HoldRequest struct {
	FlightID string `json:"flight_id" validate:"required"`
	Seats    int    `json:"seats" validate:"required,min=1"`
}

func (r *HoldRequest) Bind(_ *http.Request) error {
	return validateRequest(r)
}

// CancelRequest cancels a confirmed booking by PNR.
type CancelRequest struct {
	PNR string `json:"pnr" validate:"required"`
}

func (r *CancelRequest) Bind(_ *http.Request) error {
	return validateRequest(r)
}

// HistoryRequest looks up past bookings by PNR or passenger email.
type HistoryRequest struct {
	PNR   string `json:"-"`
	Email string `json:"-"`
}

func (r *HistoryRequest) Bind(req *http.Request) error {
	r.PNR = strings.TrimSpace(req.URL.Query().Get("pnr"))
	r.Email = strings.TrimSpace(req.URL.Query().Get("email"))

	if r.PNR == "" && r.Email == "" {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    "provide either pnr or email",
		}
	}

	return nil
}

// SuggestRequest queries the airport autocomplete dataset.
type SuggestRequest struct {
	Query string `json:"-"`
}

func (r *SuggestRequest) Bind(req *http.Request) error {
	r.Query = req.URL.Query().Get("q")

	return nil
}

func validateRequest(req interface{}) error {
	if err := ValidateSingleError(req); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	return nil
}
