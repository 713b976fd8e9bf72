package load_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Durgesh4254/flight-booking-wizard/internal/app/dto"
)

type Stats struct {
	SearchesOK   int
	NoResults    int
	RateLimited  int
	OtherFailure int
}

func (s *Stats) Add(other Stats) {
	s.SearchesOK += other.SearchesOK
	s.NoResults += other.NoResults
	s.RateLimited += other.RateLimited
	s.OtherFailure += other.OtherFailure
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func clearRedis(t *testing.T, ctx context.Context, rdb *redis.Client) {
	err := rdb.FlushDB(ctx).Err()
	require.NoError(t, err, "Failed to flush Redis")
}

func createSession(ctx context.Context, appHost string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", appHost+"/api/v1/sessions", nil)
	if err != nil {
		return "", err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("bad status: %d, body: %s", resp.StatusCode, string(body))
	}

	var state dto.SessionState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return "", err
	}

	return state.SessionID, nil
}

func searchOffers(ctx context.Context, appHost, sessionID string, criteria dto.SearchCriteria) (Stats, error) {
	payload, _ := json.Marshal(criteria)
	url := fmt.Sprintf("%s/api/v1/sessions/%s/search", appHost, sessionID)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return Stats{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return Stats{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return Stats{RateLimited: 1}, nil
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		return Stats{OtherFailure: 1}, fmt.Errorf("bad status: %d, body: %s", resp.StatusCode, string(body))
	}

	var state dto.SessionState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return Stats{}, err
	}

	if state.NoResults {
		return Stats{NoResults: 1}, nil
	}

	return Stats{SearchesOK: 1}, nil
}

func TestWizardSearchLoad(t *testing.T) {
	appHost := getEnv("APP_HOST", "http://localhost:8080")
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	redisPass := getEnv("REDIS_PASSWORD", "redis123")

	ctx := context.Background()

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPass,
		DB:       0,
	})
	defer rdb.Close()

	criteria := dto.SearchCriteria{
		Origin:        "Delhi (DEL)",
		Destination:   "Mumbai (BOM)",
		DepartureDate: "2026-12-15",
		Passengers:    1,
	}

	t.Run("Cold Cache Test", func(t *testing.T) {
		clearRedis(t, ctx, rdb)
		vus := 5
		stats := runScenario(t, ctx, appHost, criteria, vus)

		assert.Equal(t, vus, stats.SearchesOK+stats.NoResults)
		assert.Equal(t, 0, stats.OtherFailure)
	})

	t.Run("Warm Cache Test", func(t *testing.T) {
		clearRedis(t, ctx, rdb)

		// Populate cache
		sessionID, err := createSession(ctx, appHost)
		require.NoError(t, err)
		_, err = searchOffers(ctx, appHost, sessionID, criteria)
		require.NoError(t, err)

		vus := 10
		stats := runScenario(t, ctx, appHost, criteria, vus)

		assert.Equal(t, vus, stats.SearchesOK+stats.NoResults)
		assert.Equal(t, 0, stats.RateLimited, "warm cache should not reach the booking service")
	})

	t.Run("Rate Limit Test", func(t *testing.T) {
		clearRedis(t, ctx, rdb)

		vus := 20
		stats := runScenario(t, ctx, appHost, criteria, vus)

		fmt.Printf("Rate Limit Test Result: OK = %d, Rate Limited = %d, Failed = %d\n",
			stats.SearchesOK+stats.NoResults, stats.RateLimited, stats.OtherFailure)
		assert.Greater(t, stats.RateLimited, 0, "Should have triggered the outbound rate limit with 20 concurrent searches")
	})
}

func runScenario(t *testing.T, ctx context.Context, appHost string, criteria dto.SearchCriteria, vus int) Stats {
	var wg sync.WaitGroup
	var mu sync.Mutex
	scenarioStats := Stats{}

	for i := 0; i < vus; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			sessionID, err := createSession(ctx, appHost)
			if err != nil {
				t.Errorf("VU %d failed to create session: %v", id, err)
				return
			}

			stats, err := searchOffers(ctx, appHost, sessionID, criteria)
			if err != nil && stats.RateLimited == 0 && stats.OtherFailure == 0 {
				t.Errorf("VU %d failed: %v", id, err)
				return
			}
			mu.Lock()
			scenarioStats.Add(stats)
			mu.Unlock()
		}(i)
	}

	wg.Wait()
	return scenarioStats
}
