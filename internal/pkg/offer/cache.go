// Package offer caches booking service search responses so repeated
// searches with the same criteria skip the network round-trip.
package offer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Durgesh4254/flight-booking-wizard/internal/app/dto"
	"github.com/Durgesh4254/flight-booking-wizard/internal/pkg/airport"
)

type RedisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

type Cache struct {
	redis RedisClient
}

func NewCache(redis RedisClient) *Cache {
	return &Cache{
		redis: redis,
	}
}

// CacheKey is built from the derived airport codes so "Delhi (DEL)" and
// "DEL" share one entry. Passenger count is excluded: the offer list does
// not depend on it.
func (c *Cache) CacheKey(criteria dto.SearchCriteria) string {
	return fmt.Sprintf("offer:cache:%s:%s:%s",
		criteria.DepartureDate,
		airport.ExtractCode(criteria.Origin),
		airport.ExtractCode(criteria.Destination))
}

func (c *Cache) LockKey(criteria dto.SearchCriteria) string {
	return fmt.Sprintf("offer:lock:%s:%s:%s",
		criteria.DepartureDate,
		airport.ExtractCode(criteria.Origin),
		airport.ExtractCode(criteria.Destination))
}

func (c *Cache) AcquireLock(ctx context.Context, key string, timeout time.Duration) (bool, error) {
	return c.redis.SetNX(ctx, key, "1", timeout).Result()
}

func (c *Cache) ReleaseLock(ctx context.Context, key string) error {
	return c.redis.Del(ctx, key).Err()
}

func (c *Cache) SetOffers(ctx context.Context,
	key string,
	offers []dto.Offer,
	expiration time.Duration,
) error {
	data, err := json.Marshal(offers)
	if err != nil {
		return fmt.Errorf("failed to marshal offers: %w", err)
	}

	if err := c.redis.Set(ctx, key, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set offers: %w", err)
	}

	return nil
}

func (c *Cache) GetOffers(ctx context.Context, key string) ([]dto.Offer, error) {
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}

	var offers []dto.Offer
	if err := json.Unmarshal(data, &offers); err != nil {
		return nil, err
	}

	return offers, nil
}
