package bookingclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Durgesh4254/flight-booking-wizard/internal/app/dto"
	"github.com/Durgesh4254/flight-booking-wizard/internal/pkg/utils"
)

// DefaultAirline is used when an offer arrives without an airline name.
const DefaultAirline = "FlyEase Air"

// flexString accepts a JSON string or number. The booking service sends
// flight identifiers as UUID strings, older deployments as integers.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("unmarshal string: %w", err)
		}

		*s = flexString(v)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}

	*s = flexString(n.String())

	return nil
}

// flexFloat accepts a JSON number or a numeric string. The booking service
// serializes decimal amounts as strings ("4000.00").
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("unmarshal string: %w", err)
		}

		v = strings.TrimSpace(v)
		if v == "" {
			return nil
		}

		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parse amount %q: %w", v, err)
		}

		*f = flexFloat(parsed)

		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("expected number or numeric string, got %s", data)
	}

	*f = flexFloat(v)

	return nil
}

func (f *flexFloat) value() float64 {
	if f == nil {
		return 0
	}

	return float64(*f)
}

// wireOffer mirrors one search-result offer as the booking service sends it.
// Several fields have more than one possible name or type across
// deployments; toOffer resolves them in a fixed order.
type wireOffer struct {
	FlightID            flexString `json:"flight_id"`
	ID                  flexString `json:"id"`
	Airline             string     `json:"airline"`
	Origin              string     `json:"origin"`
	Destination         string     `json:"destination"`
	DepartureTime       string     `json:"departure_time"`
	ArrivalTime         string     `json:"arrival_time"`
	Departure           string     `json:"departure"`
	Arrival             string     `json:"arrival"`
	DynamicPricePerSeat *flexFloat `json:"dynamic_price_per_seat"`
	Price               *flexFloat `json:"price"`
}

// toOffer resolves the wire shape into a dto.Offer:
// id = flight_id, then id; airline defaults to DefaultAirline;
// price = dynamic_price_per_seat, then price, then zero;
// departure/arrival = formatted timestamp field, then pre-formatted text,
// then "N/A". Missing route fields fall back to the queried codes.
func (w wireOffer) toOffer(originCode, destinationCode string) dto.Offer {
	id := string(w.FlightID)
	if id == "" {
		id = string(w.ID)
	}

	airline := w.Airline
	if airline == "" {
		airline = DefaultAirline
	}

	price := 0.0

	switch {
	case w.DynamicPricePerSeat != nil:
		price = w.DynamicPricePerSeat.value()
	case w.Price != nil:
		price = w.Price.value()
	}

	origin := w.Origin
	if origin == "" {
		origin = originCode
	}

	destination := w.Destination
	if destination == "" {
		destination = destinationCode
	}

	return dto.Offer{
		ID:           id,
		Airline:      airline,
		Origin:       origin,
		Destination:  destination,
		Departure:    resolveTime(w.DepartureTime, w.Departure),
		Arrival:      resolveTime(w.ArrivalTime, w.Arrival),
		PricePerSeat: price,
	}
}

func resolveTime(timestamp, formatted string) string {
	if timestamp != "" {
		if display := utils.FormatFlightTime(timestamp); display != "" {
			return display
		}
	}

	if formatted != "" {
		return formatted
	}

	return "N/A"
}

type searchEnvelope struct {
	Offers  []wireOffer `json:"offers"`
	Results []wireOffer `json:"results"`
}

// decodeOffers accepts the three search response shapes: a bare array,
// {"offers": [...]} or {"results": [...]}.
func decodeOffers(payload []byte, originCode, destinationCode string) ([]dto.Offer, error) {
	trimmed := bytes.TrimSpace(payload)

	var wireOffers []wireOffer

	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &wireOffers); err != nil {
			return nil, fmt.Errorf("decode offer list: %w", err)
		}
	} else {
		var envelope searchEnvelope
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("decode offer envelope: %w", err)
		}

		wireOffers = envelope.Offers
		if wireOffers == nil {
			wireOffers = envelope.Results
		}
	}

	offers := make([]dto.Offer, len(wireOffers))
	for i, w := range wireOffers {
		offers[i] = w.toOffer(originCode, destinationCode)
	}

	return offers, nil
}

type confirmResponse struct {
	Success       bool       `json:"success"`
	PNR           string     `json:"pnr"`
	PricePaid     *flexFloat `json:"price_paid"`
	TransactionID string     `json:"transaction_id"`
	Error         string     `json:"error"`
}

type holdResponse struct {
	Success             bool       `json:"success"`
	FlightID            flexString `json:"flight_id"`
	SeatsReserved       int        `json:"seats_reserved"`
	DynamicPricePerSeat *flexFloat `json:"dynamic_price_per_seat"`
	TotalPrice          *flexFloat `json:"total_price"`
	Error               string     `json:"error"`
}

type cancelResponse struct {
	Success bool   `json:"success"`
	PNR     string `json:"pnr"`
	Status  string `json:"status"`
	Error   string `json:"error"`
}

type wireHistoryRecord struct {
	PNR        string     `json:"pnr"`
	FlightID   flexString `json:"flight_id"`
	Route      string     `json:"route"`
	Departure  string     `json:"departure"`
	Passenger  string     `json:"passenger"`
	SeatNumber string     `json:"seat_number"`
	PricePaid  *flexFloat `json:"price_paid"`
	Status     string     `json:"status"`
	CreatedAt  string     `json:"created_at"`
}

func (w wireHistoryRecord) toRecord() dto.HistoryRecord {
	return dto.HistoryRecord{
		PNR:       w.PNR,
		FlightID:  string(w.FlightID),
		Route:     w.Route,
		Departure: w.Departure,
		Passenger: w.Passenger,
		Seats:     w.SeatNumber,
		PricePaid: w.PricePaid.value(),
		Status:    w.Status,
		CreatedAt: w.CreatedAt,
	}
}
