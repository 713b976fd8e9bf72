// Package wizard implements the booking flow state machine: a linear
// sequence of stages from search to confirmation, each advanced by one form
// submission, holding all session state in memory for one traversal.
package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Durgesh4254/flight-booking-wizard/internal/app/dto"
	"github.com/Durgesh4254/flight-booking-wizard/internal/pkg/utils"
)

// Stage is one state of the wizard.
type Stage string

const (
	StageSearch       Stage = "search"
	StageResults      Stage = "results"
	StageSeatClass    Stage = "seat_class"
	StagePassengers   Stage = "passenger_entry"
	StageReview       Stage = "review"
	StageConfirmation Stage = "confirmation"
)

// Placeholder contact fields sent on confirmation until the passenger form
// collects real contact data.
const (
	placeholderEmail = "test@example.com"
	placeholderPhone = "9999999999"
)

// BookingService is the wizard's view of the remote booking service.
type BookingService interface {
	SearchOffers(ctx context.Context, criteria dto.SearchCriteria) ([]dto.Offer, error)
	ConfirmBooking(ctx context.Context, req dto.ConfirmRequest) (dto.ConfirmResult, error)
}

// Wizard owns all session state and is the single mutation entry point for
// every transition. The generation counter guards the two network-gated
// transitions: a response is applied only when the wizard is still in the
// stage that issued the request and nothing mutated in between.
type Wizard struct {
	id      string
	service BookingService

	mu         sync.Mutex
	stage      Stage
	generation uint64

	criteria   *dto.SearchCriteria
	offers     []dto.Offer
	selected   *dto.SelectedOffer
	seatClass  dto.SeatClass
	passengers []dto.Passenger
	summary    *dto.ReviewSummary
	booking    *dto.BookingRecord
}

func New(id string, service BookingService) *Wizard {
	return &Wizard{
		id:        id,
		service:   service,
		stage:     StageSearch,
		seatClass: dto.SeatClassEconomy,
	}
}

func (w *Wizard) ID() string {
	return w.id
}

func (w *Wizard) Stage() Stage {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.stage
}

// Search validates the criteria, runs one search against the booking
// service and moves to the results stage. Validation failures and service
// failures leave the wizard in the search stage. The lock is released for
// the duration of the network call; a response that outlives its generation
// is discarded.
func (w *Wizard) Search(ctx context.Context, criteria dto.SearchCriteria) error {
	criteria.Normalize()

	if err := criteria.Validate(); err != nil {
		return err
	}

	w.mu.Lock()

	if w.stage != StageSearch {
		stage := w.stage
		w.mu.Unlock()

		return errWrongStage("search", stage)
	}

	generation := w.generation
	w.mu.Unlock()

	offers, err := w.service.SearchOffers(ctx, criteria)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stage != StageSearch || w.generation != generation {
		return ErrStaleResponse
	}

	if err != nil {
		return err
	}

	w.criteria = &criteria
	w.offers = offers
	w.stage = StageResults
	w.generation++

	return nil
}

// SelectOffer captures one offer from the current results together with the
// active trip context and resets the seat class to the default.
func (w *Wizard) SelectOffer(offerID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stage != StageResults {
		return errWrongStage("select an offer", w.stage)
	}

	var offer *dto.Offer
	for i := range w.offers {
		if w.offers[i].ID == offerID {
			offer = &w.offers[i]
			break
		}
	}

	if offer == nil {
		return ErrOfferNotFound
	}

	w.selected = &dto.SelectedOffer{
		Offer:         *offer,
		From:          w.criteria.Origin,
		To:            w.criteria.Destination,
		DepartureDate: w.criteria.DepartureDate,
		ReturnDate:    w.criteria.ReturnDate,
		TripType:      w.criteria.TripType,
	}
	w.seatClass = dto.SeatClassEconomy
	w.stage = StageSeatClass
	w.generation++

	return nil
}

// ChooseClass captures the seat class and regenerates exactly one empty
// passenger slot per traveller, discarding any earlier partial entry.
func (w *Wizard) ChooseClass(class dto.SeatClass) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stage != StageSeatClass {
		return errWrongStage("choose a seat class", w.stage)
	}

	switch class {
	case dto.SeatClassEconomy, dto.SeatClassBusiness, dto.SeatClassFirst:
	default:
		return ErrInvalidSeatClass
	}

	w.seatClass = class
	w.passengers = make([]dto.Passenger, w.criteria.Passengers)
	w.stage = StagePassengers
	w.generation++

	return nil
}

// SubmitPassengers rebuilds the passenger list in slot order and derives the
// review summary. The slot count must match the search criteria and every
// slot must be fully populated; value-level validation beyond presence is
// the form layer's job.
func (w *Wizard) SubmitPassengers(passengers []dto.Passenger) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stage != StagePassengers {
		return errWrongStage("submit passengers", w.stage)
	}

	if len(passengers) != w.criteria.Passengers {
		return errPassengerCount(w.criteria.Passengers, len(passengers))
	}

	for i, p := range passengers {
		if strings.TrimSpace(p.Name) == "" || p.Gender == "" || p.Age <= 0 {
			return errIncompletePassenger(i + 1)
		}
	}

	w.passengers = make([]dto.Passenger, len(passengers))
	copy(w.passengers, passengers)

	total := w.selected.PricePerSeat * float64(len(w.passengers))
	w.summary = &dto.ReviewSummary{
		From:           w.selected.From,
		To:             w.selected.To,
		Airline:        w.selected.Airline,
		SeatClass:      w.seatClass,
		PassengerCount: len(w.passengers),
		Total:          total,
		TotalFormatted: utils.FormatRupees(total),
	}
	w.stage = StageReview
	w.generation++

	return nil
}

// Confirm sends the booking request and, on success, records the booking and
// moves to the confirmation stage. Any failure leaves the wizard in review
// with the service message. Like Search, the lock is released around the
// network call and a stale response is discarded.
func (w *Wizard) Confirm(ctx context.Context) error {
	w.mu.Lock()

	if w.stage != StageReview {
		stage := w.stage
		w.mu.Unlock()

		return errWrongStage("confirm", stage)
	}

	req := dto.ConfirmRequest{
		FlightID:  w.selected.ID,
		Seats:     len(w.passengers),
		Passenger: contactFromPassengers(w.passengers),
	}
	generation := w.generation
	w.mu.Unlock()

	result, err := w.service.ConfirmBooking(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stage != StageReview || w.generation != generation {
		return ErrStaleResponse
	}

	if err != nil {
		return err
	}

	w.booking = &dto.BookingRecord{
		PNR:            result.PNR,
		Flight:         *w.selected,
		SeatClass:      w.seatClass,
		Passengers:     append([]dto.Passenger(nil), w.passengers...),
		Total:          result.PricePaid,
		TotalFormatted: utils.FormatRupees(result.PricePaid),
		TransactionID:  result.TransactionID,
		BookedAt:       time.Now(),
	}
	w.stage = StageConfirmation
	w.generation++

	return nil
}

// Back moves one stage towards search. Criteria survive going back to the
// search form; a selection is abandoned when leaving the seat-class stage.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.stage {
	case StageResults:
		w.offers = nil
		w.stage = StageSearch
	case StageSeatClass:
		w.selected = nil
		w.stage = StageResults
	case StagePassengers:
		w.stage = StageSeatClass
	case StageReview:
		w.summary = nil
		w.stage = StagePassengers
	default:
		return errWrongStage("go back", w.stage)
	}

	w.generation++

	return nil
}

// Reset clears every entity and returns to the search stage. This is the
// only way out of the confirmation stage.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.criteria = nil
	w.offers = nil
	w.selected = nil
	w.seatClass = dto.SeatClassEconomy
	w.passengers = nil
	w.summary = nil
	w.booking = nil
	w.stage = StageSearch
	w.generation++
}

// Export serializes the confirmed booking as a downloadable snapshot named
// after the PNR. No network call is involved.
func (w *Wizard) Export() (dto.BookingExport, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.booking == nil {
		return dto.BookingExport{}, ErrNoBooking
	}

	data, err := json.MarshalIndent(w.booking, "", "  ")
	if err != nil {
		return dto.BookingExport{}, fmt.Errorf("marshal booking record: %w", err)
	}

	return dto.BookingExport{
		Filename: fmt.Sprintf("booking_%s.json", w.booking.PNR),
		Data:     data,
	}, nil
}

// Snapshot returns a copy of the current session state.
func (w *Wizard) Snapshot() dto.SessionState {
	w.mu.Lock()
	defer w.mu.Unlock()

	state := dto.SessionState{
		SessionID: w.id,
		Stage:     string(w.stage),
		SeatClass: w.seatClass,
		NoResults: w.stage == StageResults && len(w.offers) == 0,
	}

	if w.criteria != nil {
		criteria := *w.criteria
		state.Criteria = &criteria
	}

	if w.offers != nil {
		state.Offers = append([]dto.Offer(nil), w.offers...)
	}

	if w.selected != nil {
		selected := *w.selected
		state.Selected = &selected
	}

	if w.passengers != nil {
		state.Passengers = append([]dto.Passenger(nil), w.passengers...)
	}

	if w.summary != nil {
		summary := *w.summary
		state.Summary = &summary
	}

	if w.booking != nil {
		booking := *w.booking
		state.Booking = &booking
	}

	return state
}

// contactFromPassengers derives the booking contact from the first
// passenger: first token of the name becomes the first name, the second
// token the last name.
func contactFromPassengers(passengers []dto.Passenger) dto.ContactInfo {
	contact := dto.ContactInfo{
		FirstName: "Guest",
		Email:     placeholderEmail,
		Phone:     placeholderPhone,
	}

	if len(passengers) == 0 {
		return contact
	}

	tokens := strings.Fields(passengers[0].Name)
	if len(tokens) > 0 {
		contact.FirstName = tokens[0]
	}

	if len(tokens) > 1 {
		contact.LastName = tokens[1]
	}

	return contact
}
