package bookingclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-redis/redis_rate/v10"

	"github.com/Durgesh4254/flight-booking-wizard/internal/app/dto"
	"github.com/Durgesh4254/flight-booking-wizard/internal/pkg/airport"
)

const rateLimitKey = "limit:bookingservice"

// Config holds the booking service connection settings.
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	MaxRetries   int
	RateLimitRPS int
	Limiter      *redis_rate.Limiter
}

// Client talks to the remote booking service. Search and confirm are the two
// calls the wizard depends on; hold, cancel and history cover the rest of
// the service API.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	limiter      *redis_rate.Limiter
	rateLimitRPS int
	maxRetries   int
}

func NewClient(config Config) *Client {
	return &Client{
		baseURL:      strings.TrimRight(config.BaseURL, "/"),
		httpClient:   &http.Client{Timeout: config.Timeout},
		limiter:      config.Limiter,
		rateLimitRPS: config.RateLimitRPS,
		maxRetries:   config.MaxRetries,
	}
}

// SearchOffers runs one flight search. Origin and destination may be free
// text; the airport code is derived before the query is built.
func (c *Client) SearchOffers(ctx context.Context, criteria dto.SearchCriteria) ([]dto.Offer, error) {
	if err := c.allow(ctx); err != nil {
		return nil, err
	}

	originCode := airport.ExtractCode(criteria.Origin)
	destinationCode := airport.ExtractCode(criteria.Destination)

	params := url.Values{}
	params.Set("origin", originCode)
	params.Set("destination", destinationCode)
	params.Set("departure_date", criteria.DepartureDate)

	status, payload, err := c.roundTrip(ctx, http.MethodGet,
		c.baseURL+"/flights/search/?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, ServiceError{StatusCode: status, Message: serviceMessage(status, payload)}
	}

	offers, err := decodeOffers(payload, originCode, destinationCode)
	if err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	return offers, nil
}

// HoldSeats reserves seats on a flight ahead of confirmation.
func (c *Client) HoldSeats(ctx context.Context, flightID string, seats int) (dto.SeatHold, error) {
	body, err := json.Marshal(map[string]interface{}{
		"flight_id": flightID,
		"seats":     seats,
	})
	if err != nil {
		return dto.SeatHold{}, fmt.Errorf("marshal hold request: %w", err)
	}

	var resp holdResponse
	if err := c.post(ctx, "/flights/book/begin/", body, &resp); err != nil {
		return dto.SeatHold{}, err
	}

	if !resp.Success {
		return dto.SeatHold{}, BusinessError{Message: orUnknown(resp.Error)}
	}

	return dto.SeatHold{
		FlightID:      string(resp.FlightID),
		SeatsReserved: resp.SeatsReserved,
		PricePerSeat:  resp.DynamicPricePerSeat.value(),
		TotalPrice:    resp.TotalPrice.value(),
	}, nil
}

// ConfirmBooking submits passenger contact data and runs the payment on the
// service side.
func (c *Client) ConfirmBooking(ctx context.Context, req dto.ConfirmRequest) (dto.ConfirmResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return dto.ConfirmResult{}, fmt.Errorf("marshal confirm request: %w", err)
	}

	var resp confirmResponse
	if err := c.post(ctx, "/flights/book/confirm/", body, &resp); err != nil {
		return dto.ConfirmResult{}, err
	}

	if !resp.Success {
		return dto.ConfirmResult{}, BusinessError{Message: orUnknown(resp.Error)}
	}

	return dto.ConfirmResult{
		PNR:           resp.PNR,
		PricePaid:     resp.PricePaid.value(),
		TransactionID: resp.TransactionID,
	}, nil
}

// CancelBooking cancels a confirmed booking by PNR.
func (c *Client) CancelBooking(ctx context.Context, pnr string) (dto.CancelResult, error) {
	body, err := json.Marshal(map[string]string{"pnr": pnr})
	if err != nil {
		return dto.CancelResult{}, fmt.Errorf("marshal cancel request: %w", err)
	}

	var resp cancelResponse
	if err := c.post(ctx, "/flights/book/cancel/", body, &resp); err != nil {
		return dto.CancelResult{}, err
	}

	if !resp.Success {
		return dto.CancelResult{}, BusinessError{Message: orUnknown(resp.Error)}
	}

	return dto.CancelResult{PNR: resp.PNR, Status: resp.Status}, nil
}

// History lists past bookings for a PNR or a passenger email.
func (c *Client) History(ctx context.Context, pnr, email string) ([]dto.HistoryRecord, error) {
	if err := c.allow(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	if pnr != "" {
		params.Set("pnr", pnr)
	}
	if email != "" {
		params.Set("email", email)
	}

	status, payload, err := c.roundTrip(ctx, http.MethodGet,
		c.baseURL+"/flights/book/history/?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, ServiceError{StatusCode: status, Message: serviceMessage(status, payload)}
	}

	var wireRecords []wireHistoryRecord
	if err := json.Unmarshal(payload, &wireRecords); err != nil {
		return nil, fmt.Errorf("decode history response: %w", err)
	}

	records := make([]dto.HistoryRecord, len(wireRecords))
	for i, w := range wireRecords {
		records[i] = w.toRecord()
	}

	return records, nil
}

// post sends a JSON body and decodes a 2xx JSON response into out.
func (c *Client) post(ctx context.Context, path string, body []byte, out interface{}) error {
	if err := c.allow(ctx); err != nil {
		return err
	}

	status, payload, err := c.roundTrip(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return err
	}

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return ServiceError{StatusCode: status, Message: serviceMessage(status, payload)}
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// roundTrip performs the HTTP exchange with retry and exponential backoff on
// transport failures. A response, whatever its status, ends the loop.
func (c *Client) roundTrip(ctx context.Context, method, rawURL string, body []byte) (int, []byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
		if err != nil {
			return 0, nil, fmt.Errorf("build request: %w", err)
		}

		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			slog.WarnContext(ctx, "booking service request failed",
				slog.Int("attempt", attempt+1), slog.String("error", err.Error()))

			if attempt < c.maxRetries {
				// Exponential backoff: 200ms * 2^attempt
				backoff := time.Duration(200*(1<<attempt)) * time.Millisecond
				select {
				case <-time.After(backoff):
				case <-ctx.Done():
					return 0, nil, TransportError{Err: ctx.Err()}
				}
			}

			continue
		}

		payload, err := io.ReadAll(resp.Body)
		resp.Body.Close()

		if err != nil {
			return 0, nil, TransportError{Err: err}
		}

		return resp.StatusCode, payload, nil
	}

	return 0, nil, TransportError{Err: lastErr}
}

func (c *Client) allow(ctx context.Context) error {
	if c.limiter == nil || c.rateLimitRPS <= 0 {
		return nil
	}

	res, err := c.limiter.Allow(ctx, rateLimitKey, redis_rate.PerSecond(c.rateLimitRPS))
	if err != nil {
		return fmt.Errorf("failed to rate limit: %w", err)
	}

	if res.Allowed == 0 {
		return ErrRateLimitExceeded
	}

	return nil
}

func orUnknown(message string) string {
	if message == "" {
		return "Unknown error"
	}

	return message
}
