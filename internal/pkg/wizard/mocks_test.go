//go:build unit

package wizard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/Durgesh4254/flight-booking-wizard/internal/app/dto"
)

type MockBookingService struct {
	mock.Mock
}

func NewMockBookingService(t *testing.T) *MockBookingService {
	m := &MockBookingService{}
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockBookingService) SearchOffers(ctx context.Context, criteria dto.SearchCriteria) ([]dto.Offer, error) {
	args := m.Called(ctx, criteria)

	offers, _ := args.Get(0).([]dto.Offer)

	return offers, args.Error(1)
}

func (m *MockBookingService) ConfirmBooking(ctx context.Context, req dto.ConfirmRequest) (dto.ConfirmResult, error) {
	args := m.Called(ctx, req)

	result, _ := args.Get(0).(dto.ConfirmResult)

	return result, args.Error(1)
}
