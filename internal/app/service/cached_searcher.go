package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Durgesh4254/flight-booking-wizard/internal/app/dto"
)

// BookingAPI is the full booking service client surface.
type BookingAPI interface {
	SearchOffers(ctx context.Context, criteria dto.SearchCriteria) ([]dto.Offer, error)
	HoldSeats(ctx context.Context, flightID string, seats int) (dto.SeatHold, error)
	ConfirmBooking(ctx context.Context, req dto.ConfirmRequest) (dto.ConfirmResult, error)
	CancelBooking(ctx context.Context, pnr string) (dto.CancelResult, error)
	History(ctx context.Context, pnr, email string) ([]dto.HistoryRecord, error)
}

type OfferCacher interface {
	CacheKey(criteria dto.SearchCriteria) string
	LockKey(criteria dto.SearchCriteria) string
	AcquireLock(ctx context.Context, key string, timeout time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
	GetOffers(ctx context.Context, key string) ([]dto.Offer, error)
	SetOffers(ctx context.Context, key string, offers []dto.Offer, expiration time.Duration) error
}

// CachedSearcher fronts the booking client with the redis offer cache.
// Confirmation passes straight through; only searches are cached. The lock
// ensures one concurrent search per criteria fills the cache.
type CachedSearcher struct {
	Client          BookingAPI
	Cache           OfferCacher
	CacheExpiration time.Duration
	LockTimeout     time.Duration
}

func NewCachedSearcher(client BookingAPI, cache OfferCacher,
	cacheExpiration, lockTimeout time.Duration) *CachedSearcher {
	return &CachedSearcher{
		Client:          client,
		Cache:           cache,
		CacheExpiration: cacheExpiration,
		LockTimeout:     lockTimeout,
	}
}

// SearchOffers returns cached offers when present, otherwise asks the
// booking service and fills the cache. Cache failures degrade to a direct
// service call; search errors keep their taxonomy untouched for the wizard.
func (s *CachedSearcher) SearchOffers(ctx context.Context,
	criteria dto.SearchCriteria,
) ([]dto.Offer, error) {
	cacheKey := s.Cache.CacheKey(criteria)

	offers, err := s.Cache.GetOffers(ctx, cacheKey)
	if err == nil {
		slog.DebugContext(ctx, "offer cache hit", slog.String("key", cacheKey))

		return offers, nil
	}

	offers, err = s.Client.SearchOffers(ctx, criteria)
	if err != nil {
		return nil, err
	}

	lockKey := s.Cache.LockKey(criteria)

	acquired, lockErr := s.Cache.AcquireLock(ctx, lockKey, s.LockTimeout)
	if lockErr != nil {
		slog.WarnContext(ctx, "failed to acquire offer cache lock",
			slog.String("error", lockErr.Error()))

		return offers, nil
	}
	defer s.Cache.ReleaseLock(ctx, lockKey)

	if acquired {
		if setErr := s.Cache.SetOffers(ctx, cacheKey, offers, s.CacheExpiration); setErr != nil {
			slog.WarnContext(ctx, "failed to set offers to cache",
				slog.String("error", setErr.Error()))
		}
	}

	return offers, nil
}

func (s *CachedSearcher) ConfirmBooking(ctx context.Context,
	req dto.ConfirmRequest,
) (dto.ConfirmResult, error) {
	return s.Client.ConfirmBooking(ctx, req)
}
