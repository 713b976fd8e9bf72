package transport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/Durgesh4254/flight-booking-wizard/internal/app/config"
	"github.com/Durgesh4254/flight-booking-wizard/internal/app/dto"
	"github.com/Durgesh4254/flight-booking-wizard/internal/app/endpoints"
	httptransport "github.com/Durgesh4254/flight-booking-wizard/internal/pkg/transport/http"
)

// MakeHTTPRouter builds the HTTP router with all the service endpoints.
func MakeHTTPRouter(
	cfg *config.Config,
	endpts endpoints.Endpoints,
) *chi.Mux {
	// Initialize Router
	router := chi.NewRouter()

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	wizard := endpts.WizardEndpoint

	router.Route("/api/v1", func(router chi.Router) {
		router.Use(
			httptransport.RequestID(),
			httptransport.SessionID(),
			httptransport.CORSMiddleware(),
			httptransport.Recoverer(slog.Default()),
			render.SetContentType(render.ContentTypeJSON),
		)

		router.Route("/sessions", func(router chi.Router) {
			router.Post("/", httptransport.MakeHandlerFunc(
				wizard.CreateSession,
				decodeEmptyRequest,
				httptransport.CreatedResponse,
			))

			router.Route("/{sessionID}", func(router chi.Router) {
				router.Get("/", httptransport.MakeHandlerFunc(
					wizard.SessionState,
					httptransport.DecodeParamsRequest[dto.SessionRequest],
					httptransport.ResponseWithBody,
				))
				router.Post("/search", httptransport.MakeHandlerFunc(
					wizard.Search,
					httptransport.DecodeRequest[dto.SearchRequest],
					httptransport.ResponseWithBody,
				))
				router.Post("/select", httptransport.MakeHandlerFunc(
					wizard.SelectOffer,
					httptransport.DecodeRequest[dto.SelectOfferRequest],
					httptransport.ResponseWithBody,
				))
				router.Post("/seat-class", httptransport.MakeHandlerFunc(
					wizard.ChooseClass,
					httptransport.DecodeRequest[dto.SeatClassRequest],
					httptransport.ResponseWithBody,
				))
				router.Post("/passengers", httptransport.MakeHandlerFunc(
					wizard.SubmitPassengers,
					httptransport.DecodeRequest[dto.PassengersRequest],
					httptransport.ResponseWithBody,
				))
				router.Post("/confirm", httptransport.MakeHandlerFunc(
					wizard.Confirm,
					httptransport.DecodeParamsRequest[dto.SessionRequest],
					httptransport.ResponseWithBody,
				))
				router.Post("/back", httptransport.MakeHandlerFunc(
					wizard.Back,
					httptransport.DecodeParamsRequest[dto.SessionRequest],
					httptransport.ResponseWithBody,
				))
				router.Post("/reset", httptransport.MakeHandlerFunc(
					wizard.Reset,
					httptransport.DecodeParamsRequest[dto.SessionRequest],
					httptransport.ResponseWithBody,
				))
				router.Get("/booking/export", httptransport.MakeHandlerFunc(
					wizard.Export,
					httptransport.DecodeParamsRequest[dto.SessionRequest],
					httptransport.FileDownloadResponse,
				))
			})
		})

		router.Route("/bookings", func(router chi.Router) {
			router.Post("/hold", httptransport.MakeHandlerFunc(
				wizard.Hold,
				httptransport.DecodeRequest[dto.HoldRequest],
				httptransport.ResponseWithBody,
			))
			router.Post("/cancel", httptransport.MakeHandlerFunc(
				wizard.Cancel,
				httptransport.DecodeRequest[dto.CancelRequest],
				httptransport.ResponseWithBody,
			))
			router.Get("/history", httptransport.MakeHandlerFunc(
				wizard.History,
				httptransport.DecodeParamsRequest[dto.HistoryRequest],
				httptransport.ResponseWithBody,
			))
		})

		router.Get("/airports/suggest", httptransport.MakeHandlerFunc(
			wizard.Suggest,
			httptransport.DecodeParamsRequest[dto.SuggestRequest],
			httptransport.ResponseWithBody,
		))
	})

	return router
}

func decodeEmptyRequest(_ context.Context, _ *http.Request) (interface{}, error) {
	return nil, nil
}
