package dto

import (
	"net/http"
	"strings"
	"time"

	"github.com/Durgesh4254/flight-booking-wizard/internal/pkg/exception"
)

// TripType is the journey shape picked on the search form.
type TripType string

const (
	TripTypeOneWay    TripType = "oneway"
	TripTypeRoundTrip TripType = "roundtrip"
)

// SeatClass is the cabin choice attached to a selected offer.
type SeatClass string

const (
	SeatClassEconomy  SeatClass = "Economy"
	SeatClassBusiness SeatClass = "Business"
	SeatClassFirst    SeatClass = "First"
)

// SearchCriteria is the user-entered search form. Origin and destination are
// free text; the wizard derives the airport codes before calling the booking
// service.
type SearchCriteria struct {
	Origin        string   `json:"origin" validate:"required"`
	Destination   string   `json:"destination" validate:"required"`
	DepartureDate string   `json:"departure_date" validate:"required"`
	ReturnDate    string   `json:"return_date,omitempty"`
	TripType      TripType `json:"trip_type" validate:"omitempty,oneof=oneway roundtrip"`
	Passengers    int      `json:"passengers" validate:"max=10"`
}

// Normalize trims the free-text fields and applies the search form defaults:
// one-way trips carry no return date and at least one passenger travels.
func (c *SearchCriteria) Normalize() {
	c.Origin = strings.TrimSpace(c.Origin)
	c.Destination = strings.TrimSpace(c.Destination)

	if c.TripType == "" {
		c.TripType = TripTypeOneWay
	}

	if c.TripType != TripTypeRoundTrip {
		c.ReturnDate = ""
	}

	if c.Passengers < 1 {
		c.Passengers = 1
	}
}

func (c SearchCriteria) Validate() error {
	if err := ValidateSingleError(&c); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	if c.TripType == TripTypeRoundTrip && c.ReturnDate == "" {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    "return_date is required for a round-trip",
		}
	}

	return nil
}

// Offer is one priced flight returned by the booking service search.
// Departure and arrival are display strings, already resolved from whichever
// fields the service supplied.
type Offer struct {
	ID           string  `json:"id"`
	Airline      string  `json:"airline"`
	Origin       string  `json:"origin"`
	Destination  string  `json:"destination"`
	Departure    string  `json:"departure"`
	Arrival      string  `json:"arrival"`
	PricePerSeat float64 `json:"price_per_seat"`
}

// SelectedOffer is the chosen offer plus the trip context captured from the
// active search criteria.
type SelectedOffer struct {
	Offer

	From          string   `json:"from"`
	To            string   `json:"to"`
	DepartureDate string   `json:"departure_date"`
	ReturnDate    string   `json:"return_date,omitempty"`
	TripType      TripType `json:"trip_type"`
}

// Passenger is one traveller record entered on the passenger form.
type Passenger struct {
	Name   string `json:"name" validate:"required"`
	Age    int    `json:"age" validate:"required,max=120"`
	Gender string `json:"gender" validate:"required,oneof=Male Female Other"`
}

// ReviewSummary is derived state shown before confirmation. Total is always
// price per seat times the passenger count.
type ReviewSummary struct {
	From           string    `json:"from"`
	To             string    `json:"to"`
	Airline        string    `json:"airline"`
	SeatClass      SeatClass `json:"seat_class"`
	PassengerCount int       `json:"passenger_count"`
	Total          float64   `json:"total"`
	TotalFormatted string    `json:"total_formatted"`
}

// BookingRecord is the confirmed booking held until the next reset. It is
// also the exported artifact.
type BookingRecord struct {
	PNR            string        `json:"pnr"`
	Flight         SelectedOffer `json:"flight"`
	SeatClass      SeatClass     `json:"class"`
	Passengers     []Passenger   `json:"passengers"`
	Total          float64       `json:"total"`
	TotalFormatted string        `json:"total_formatted"`
	TransactionID  string        `json:"transaction_id,omitempty"`
	BookedAt       time.Time     `json:"booked_at"`
}

// ContactInfo is the booking contact sent on confirmation. Email and phone
// are placeholders until the passenger form collects them.
type ContactInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// ConfirmRequest is the confirm-booking call payload.
type ConfirmRequest struct {
	FlightID  string      `json:"flight_id"`
	Seats     int         `json:"seats"`
	Passenger ContactInfo `json:"passenger"`
}

// ConfirmResult is a successful confirm-booking response.
type ConfirmResult struct {
	PNR           string  `json:"pnr"`
	PricePaid     float64 `json:"price_paid"`
	TransactionID string  `json:"transaction_id,omitempty"`
}

// SeatHold is the response of a temporary seat reservation.
type SeatHold struct {
	FlightID      string  `json:"flight_id"`
	SeatsReserved int     `json:"seats_reserved"`
	PricePerSeat  float64 `json:"price_per_seat"`
	TotalPrice    float64 `json:"total_price"`
}

// CancelResult is the response of a booking cancellation.
type CancelResult struct {
	PNR    string `json:"pnr"`
	Status string `json:"status"`
}

// HistoryRecord is one past booking looked up by PNR or passenger email.
type HistoryRecord struct {
	PNR       string  `json:"pnr"`
	FlightID  string  `json:"flight_id"`
	Route     string  `json:"route"`
	Departure string  `json:"departure"`
	Passenger string  `json:"passenger"`
	Seats     string  `json:"seat_number"`
	PricePaid float64 `json:"price_paid"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
}

// SessionState is the wizard snapshot returned after every transition.
type SessionState struct {
	SessionID  string          `json:"session_id"`
	Stage      string          `json:"stage"`
	Criteria   *SearchCriteria `json:"criteria,omitempty"`
	Offers     []Offer         `json:"offers,omitempty"`
	NoResults  bool            `json:"no_results,omitempty"`
	Selected   *SelectedOffer  `json:"selected_offer,omitempty"`
	SeatClass  SeatClass       `json:"seat_class,omitempty"`
	Passengers []Passenger     `json:"passengers,omitempty"`
	Summary    *ReviewSummary  `json:"summary,omitempty"`
	Booking    *BookingRecord  `json:"booking,omitempty"`
}

// BookingExport is the downloadable booking snapshot.
type BookingExport struct {
	Filename string `json:"-"`
	Data     []byte `json:"-"`
}
