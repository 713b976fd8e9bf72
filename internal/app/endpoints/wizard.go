package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/endpoint"

	"github.com/Durgesh4254/flight-booking-wizard/internal/app/dto"
	"github.com/Durgesh4254/flight-booking-wizard/internal/pkg/airport"
)

// WizardService is the application surface exposed over HTTP: one method
// per wizard transition plus the session-independent booking operations.
type WizardService interface {
	CreateSession(ctx context.Context) (dto.SessionState, error)
	State(ctx context.Context, sessionID string) (dto.SessionState, error)
	Search(ctx context.Context, req *dto.SearchRequest) (dto.SessionState, error)
	SelectOffer(ctx context.Context, req *dto.SelectOfferRequest) (dto.SessionState, error)
	ChooseClass(ctx context.Context, req *dto.SeatClassRequest) (dto.SessionState, error)
	SubmitPassengers(ctx context.Context, req *dto.PassengersRequest) (dto.SessionState, error)
	Confirm(ctx context.Context, req *dto.SessionRequest) (dto.SessionState, error)
	Back(ctx context.Context, req *dto.SessionRequest) (dto.SessionState, error)
	Reset(ctx context.Context, req *dto.SessionRequest) (dto.SessionState, error)
	Export(ctx context.Context, req *dto.SessionRequest) (dto.BookingExport, error)
	Hold(ctx context.Context, req *dto.HoldRequest) (dto.SeatHold, error)
	Cancel(ctx context.Context, req *dto.CancelRequest) (dto.CancelResult, error)
	History(ctx context.Context, req *dto.HistoryRequest) ([]dto.HistoryRecord, error)
	Suggest(ctx context.Context, req *dto.SuggestRequest) ([]airport.Airport, error)
}

// Endpoints collects every endpoint group exposed over HTTP.
type Endpoints struct {
	WizardEndpoint WizardEndpoint
}

type WizardEndpoint struct {
	CreateSession    endpoint.Endpoint
	SessionState     endpoint.Endpoint
	Search           endpoint.Endpoint
	SelectOffer      endpoint.Endpoint
	ChooseClass      endpoint.Endpoint
	SubmitPassengers endpoint.Endpoint
	Confirm          endpoint.Endpoint
	Back             endpoint.Endpoint
	Reset            endpoint.Endpoint
	Export           endpoint.Endpoint
	Hold             endpoint.Endpoint
	Cancel           endpoint.Endpoint
	History          endpoint.Endpoint
	Suggest          endpoint.Endpoint
}

func MakeWizardEndpoint(service WizardService) WizardEndpoint {
	return WizardEndpoint{
		CreateSession: func(ctx context.Context, _ interface{}) (interface{}, error) {
			state, err := service.CreateSession(ctx)
			if err != nil {
				return nil, fmt.Errorf("wizard service: %w", err)
			}

			return state, nil
		},
		SessionState: makeEndpoint(func(ctx context.Context,
			req *dto.SessionRequest,
		) (dto.SessionState, error) {
			return service.State(ctx, req.SessionID)
		}),
		Search:           makeEndpoint(service.Search),
		SelectOffer:      makeEndpoint(service.SelectOffer),
		ChooseClass:      makeEndpoint(service.ChooseClass),
		SubmitPassengers: makeEndpoint(service.SubmitPassengers),
		Confirm:          makeEndpoint(service.Confirm),
		Back:             makeEndpoint(service.Back),
		Reset:            makeEndpoint(service.Reset),
		Export:           makeEndpoint(service.Export),
		Hold:             makeEndpoint(service.Hold),
		Cancel:           makeEndpoint(service.Cancel),
		History:          makeEndpoint(service.History),
		Suggest:          makeEndpoint(service.Suggest),
	}
}

// makeEndpoint adapts one typed service method into a go-kit endpoint.
func makeEndpoint[Req any, Resp any](
	handle func(context.Context, *Req) (Resp, error),
) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*Req)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		resp, err := handle(ctx, request)
		if err != nil {
			return nil, fmt.Errorf("wizard service: %w", err)
		}

		return resp, nil
	}
}
