package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Durgesh4254/flight-booking-wizard/internal/app/dto"
	"github.com/Durgesh4254/flight-booking-wizard/internal/pkg/airport"
	"github.com/Durgesh4254/flight-booking-wizard/internal/pkg/wizard"
)

type sessionEntry struct {
	wizard   *wizard.Wizard
	lastSeen time.Time
}

// SessionService owns the live wizard sessions. Sessions are in-memory
// only; an entry lives until it sits idle past the TTL. A zero TTL disables
// expiry.
type SessionService struct {
	backend wizard.BookingService
	api     BookingAPI
	ttl     time.Duration
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[string]*sessionEntry
}

func NewSessionService(backend wizard.BookingService, api BookingAPI, ttl time.Duration) *SessionService {
	return &SessionService{
		backend:  backend,
		api:      api,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*sessionEntry),
	}
}

// CreateSession starts a fresh wizard at the search stage.
func (s *SessionService) CreateSession(ctx context.Context) (dto.SessionState, error) {
	w := wizard.New(uuid.New().String(), s.backend)

	s.mu.Lock()
	s.sessions[w.ID()] = &sessionEntry{wizard: w, lastSeen: s.now()}
	s.mu.Unlock()

	slog.InfoContext(ctx, "wizard session created", slog.String("session_id", w.ID()))

	return w.Snapshot(), nil
}

// EvictExpired drops every session idle past the TTL and returns how many
// were removed.
func (s *SessionService) EvictExpired() int {
	if s.ttl <= 0 {
		return 0
	}

	deadline := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, entry := range s.sessions {
		if entry.lastSeen.Before(deadline) {
			delete(s.sessions, id)
			evicted++
		}
	}

	return evicted
}

// StartSweeper evicts expired sessions on a fixed interval until the context
// is cancelled. Expiry on access already covers correctness; the sweep keeps
// the registry from holding abandoned sessions until their next lookup.
func (s *SessionService) StartSweeper(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if evicted := s.EvictExpired(); evicted > 0 {
					slog.InfoContext(ctx, "expired wizard sessions evicted",
						slog.Int("count", evicted))
				}
			}
		}
	}()
}

func (s *SessionService) State(_ context.Context, sessionID string) (dto.SessionState, error) {
	w, err := s.session(sessionID)
	if err != nil {
		return dto.SessionState{}, err
	}

	return w.Snapshot(), nil
}

// Search godoc
// @Summary      Submit the search form
// @Tags         Wizard
// @Description  Validate criteria, search offers and move to results
// @Param        request  body      dto.SearchRequest  true  "Search criteria"
// @Success      200      {object}  dto.SessionState
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      409      {object}  dto.ErrorResponse
// @Failure      502      {object}  dto.ErrorResponse
// @Router       /api/v1/sessions/{sessionID}/search [post]
func (s *SessionService) Search(ctx context.Context, req *dto.SearchRequest) (dto.SessionState, error) {
	w, err := s.session(req.SessionID)
	if err != nil {
		return dto.SessionState{}, err
	}

	if err := w.Search(ctx, req.SearchCriteria); err != nil {
		return dto.SessionState{}, toApplicationError(err)
	}

	state := w.Snapshot()

	slog.InfoContext(ctx, "search completed",
		slog.String("session_id", w.ID()),
		slog.Int("offers", len(state.Offers)))

	return state, nil
}

func (s *SessionService) SelectOffer(_ context.Context, req *dto.SelectOfferRequest) (dto.SessionState, error) {
	w, err := s.session(req.SessionID)
	if err != nil {
		return dto.SessionState{}, err
	}

	if err := w.SelectOffer(req.OfferID); err != nil {
		return dto.SessionState{}, toApplicationError(err)
	}

	return w.Snapshot(), nil
}

func (s *SessionService) ChooseClass(_ context.Context, req *dto.SeatClassRequest) (dto.SessionState, error) {
	w, err := s.session(req.SessionID)
	if err != nil {
		return dto.SessionState{}, err
	}

	if err := w.ChooseClass(req.SeatClass); err != nil {
		return dto.SessionState{}, toApplicationError(err)
	}

	return w.Snapshot(), nil
}

func (s *SessionService) SubmitPassengers(_ context.Context, req *dto.PassengersRequest) (dto.SessionState, error) {
	w, err := s.session(req.SessionID)
	if err != nil {
		return dto.SessionState{}, err
	}

	if err := w.SubmitPassengers(req.Passengers); err != nil {
		return dto.SessionState{}, toApplicationError(err)
	}

	return w.Snapshot(), nil
}

// Confirm godoc
// @Summary      Confirm the booking
// @Tags         Wizard
// @Description  Send the confirm request and move to confirmation
// @Success      200  {object}  dto.SessionState
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/v1/sessions/{sessionID}/confirm [post]
func (s *SessionService) Confirm(ctx context.Context, req *dto.SessionRequest) (dto.SessionState, error) {
	w, err := s.session(req.SessionID)
	if err != nil {
		return dto.SessionState{}, err
	}

	if err := w.Confirm(ctx); err != nil {
		return dto.SessionState{}, toApplicationError(err)
	}

	state := w.Snapshot()

	if state.Booking != nil {
		slog.InfoContext(ctx, "booking confirmed",
			slog.String("session_id", w.ID()),
			slog.String("pnr", state.Booking.PNR))
	}

	return state, nil
}

func (s *SessionService) Back(_ context.Context, req *dto.SessionRequest) (dto.SessionState, error) {
	w, err := s.session(req.SessionID)
	if err != nil {
		return dto.SessionState{}, err
	}

	if err := w.Back(); err != nil {
		return dto.SessionState{}, toApplicationError(err)
	}

	return w.Snapshot(), nil
}

func (s *SessionService) Reset(_ context.Context, req *dto.SessionRequest) (dto.SessionState, error) {
	w, err := s.session(req.SessionID)
	if err != nil {
		return dto.SessionState{}, err
	}

	w.Reset()

	return w.Snapshot(), nil
}

func (s *SessionService) Export(_ context.Context, req *dto.SessionRequest) (dto.BookingExport, error) {
	w, err := s.session(req.SessionID)
	if err != nil {
		return dto.BookingExport{}, err
	}

	export, err := w.Export()
	if err != nil {
		return dto.BookingExport{}, toApplicationError(err)
	}

	return export, nil
}

// Hold reserves seats directly against the booking service, outside any
// wizard transition.
func (s *SessionService) Hold(ctx context.Context, req *dto.HoldRequest) (dto.SeatHold, error) {
	hold, err := s.api.HoldSeats(ctx, req.FlightID, req.Seats)
	if err != nil {
		return dto.SeatHold{}, toApplicationError(err)
	}

	return hold, nil
}

func (s *SessionService) Cancel(ctx context.Context, req *dto.CancelRequest) (dto.CancelResult, error) {
	result, err := s.api.CancelBooking(ctx, req.PNR)
	if err != nil {
		return dto.CancelResult{}, toApplicationError(err)
	}

	slog.InfoContext(ctx, "booking cancelled", slog.String("pnr", result.PNR))

	return result, nil
}

func (s *SessionService) History(ctx context.Context, req *dto.HistoryRequest) ([]dto.HistoryRecord, error) {
	records, err := s.api.History(ctx, req.PNR, req.Email)
	if err != nil {
		return nil, toApplicationError(err)
	}

	return records, nil
}

func (s *SessionService) Suggest(_ context.Context, req *dto.SuggestRequest) ([]airport.Airport, error) {
	return airport.Suggest(req.Query), nil
}

// session looks up a live wizard and refreshes its last-seen time. An entry
// idle past the TTL is dropped on access.
func (s *SessionService) session(sessionID string) (*wizard.Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	now := s.now()

	if s.ttl > 0 && entry.lastSeen.Before(now.Add(-s.ttl)) {
		delete(s.sessions, sessionID)

		return nil, ErrSessionNotFound
	}

	entry.lastSeen = now

	return entry.wizard, nil
}
