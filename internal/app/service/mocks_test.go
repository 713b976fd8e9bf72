//go:build unit

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Durgesh4254/flight-booking-wizard/internal/app/dto"
)

type MockBookingAPI struct {
	mock.Mock
}

func NewMockBookingAPI(t *testing.T) *MockBookingAPI {
	m := &MockBookingAPI{}
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockBookingAPI) SearchOffers(ctx context.Context, criteria dto.SearchCriteria) ([]dto.Offer, error) {
	args := m.Called(ctx, criteria)

	offers, _ := args.Get(0).([]dto.Offer)

	return offers, args.Error(1)
}

func (m *MockBookingAPI) HoldSeats(ctx context.Context, flightID string, seats int) (dto.SeatHold, error) {
	args := m.Called(ctx, flightID, seats)

	hold, _ := args.Get(0).(dto.SeatHold)

	return hold, args.Error(1)
}

func (m *MockBookingAPI) ConfirmBooking(ctx context.Context, req dto.ConfirmRequest) (dto.ConfirmResult, error) {
	args := m.Called(ctx, req)

	result, _ := args.Get(0).(dto.ConfirmResult)

	return result, args.Error(1)
}

func (m *MockBookingAPI) CancelBooking(ctx context.Context, pnr string) (dto.CancelResult, error) {
	args := m.Called(ctx, pnr)

	result, _ := args.Get(0).(dto.CancelResult)

	return result, args.Error(1)
}

func (m *MockBookingAPI) History(ctx context.Context, pnr, email string) ([]dto.HistoryRecord, error) {
	args := m.Called(ctx, pnr, email)

	records, _ := args.Get(0).([]dto.HistoryRecord)

	return records, args.Error(1)
}

type MockOfferCacher struct {
	mock.Mock
}

func NewMockOfferCacher(t *testing.T) *MockOfferCacher {
	m := &MockOfferCacher{}
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOfferCacher) CacheKey(criteria dto.SearchCriteria) string {
	args := m.Called(criteria)

	return args.String(0)
}

func (m *MockOfferCacher) LockKey(criteria dto.SearchCriteria) string {
	args := m.Called(criteria)

	return args.String(0)
}

func (m *MockOfferCacher) AcquireLock(ctx context.Context, key string, timeout time.Duration) (bool, error) {
	args := m.Called(ctx, key, timeout)

	return args.Bool(0), args.Error(1)
}

func (m *MockOfferCacher) ReleaseLock(ctx context.Context, key string) error {
	args := m.Called(ctx, key)

	return args.Error(0)
}

func (m *MockOfferCacher) GetOffers(ctx context.Context, key string) ([]dto.Offer, error) {
	args := m.Called(ctx, key)

	offers, _ := args.Get(0).([]dto.Offer)

	return offers, args.Error(1)
}

func (m *MockOfferCacher) SetOffers(ctx context.Context, key string, offers []dto.Offer, expiration time.Duration) error {
	args := m.Called(ctx, key, offers, expiration)

	return args.Error(0)
}
