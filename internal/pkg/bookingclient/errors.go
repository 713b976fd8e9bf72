package bookingclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Durgesh4254/flight-booking-wizard/internal/pkg/exception"
)

// ErrRateLimitExceeded reports that the outbound rate limit on booking
// service calls was hit before a request could be made.
var ErrRateLimitExceeded = exception.ApplicationError{
	StatusCode: http.StatusTooManyRequests,
	Message:    "booking service rate limit exceeded",
}

// TransportError means no usable response came back at all: connection
// refused, timeout, cancelled context, or an unreadable body.
type TransportError struct {
	Err error
}

func (e TransportError) Error() string {
	return fmt.Sprintf("booking service unreachable: %s", e.Err)
}

func (e TransportError) Unwrap() error {
	return e.Err
}

// ServiceError is a non-success HTTP response from the booking service.
// Message already went through the payload fallback order.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e ServiceError) Error() string {
	return e.Message
}

// BusinessError is a success response whose payload reports failure
// (success=false).
type BusinessError struct {
	Message string
}

func (e BusinessError) Error() string {
	return e.Message
}

// serviceMessage resolves the user-facing message of a non-success response.
// Fallback order: structured "error" or "message" field, raw body text,
// generic status line.
func serviceMessage(status int, payload []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}

	if err := json.Unmarshal(payload, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}

		if body.Message != "" {
			return body.Message
		}
	}

	if text := strings.TrimSpace(string(payload)); text != "" {
		return text
	}

	return fmt.Sprintf("server error %d", status)
}
