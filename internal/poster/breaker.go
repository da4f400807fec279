// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package poster

import (
	"context"
	"errors"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// BreakerConfig tunes the circuit breaker around TMDB.
type BreakerConfig struct {
	// Name labels metrics and logs.
	Name string

	// MaxRequests is the number of trial requests allowed while half-open.
	MaxRequests uint32

	// Interval resets the failure counts while closed.
	Interval time.Duration

	// Timeout is how long the circuit stays open before a trial request.
	Timeout time.Duration

	// MinRequests is the sample size needed before the circuit may open.
	MinRequests uint32

	// FailureRatio opens the circuit once reached.
	FailureRatio float64
}

// DefaultBreakerConfig opens after a 60% failure rate over at least 10
// requests and retries after 30 seconds.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:         "tmdb-api",
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// BreakerClient wraps a DetailsFetcher with a circuit breaker so a failing
// TMDB is not hammered by every recommendation request.
type BreakerClient struct {
	next DetailsFetcher
	cb   *gobreaker.CircuitBreaker[*MovieDetails]
	name string
}

// NewBreakerClient wraps next.
func NewBreakerClient(next DetailsFetcher, cfg BreakerConfig) *BreakerClient {
	def := DefaultBreakerConfig()
	if cfg.Name == "" {
		cfg.Name = def.Name
	}
	if cfg.MinRequests == 0 {
		cfg.MinRequests = def.MinRequests
	}
	if cfg.FailureRatio <= 0 {
		cfg.FailureRatio = def.FailureRatio
	}
	name := cfg.Name

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[*MovieDetails](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= cfg.FailureRatio
			if shouldTrip {
				logging.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},

		// A 404 means TMDB answered; the movie is just unknown there.
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var le *LookupError
			return errors.As(err, &le) && le.StatusCode == http.StatusNotFound
		},
	})

	return &BreakerClient{next: next, cb: cb, name: name}
}

// MovieDetails fetches through the breaker. Rejections while the circuit
// is open are returned as lookup failures.
func (b *BreakerClient) MovieDetails(ctx context.Context, id catalog.ExternalID) (*MovieDetails, error) {
	details, err := b.cb.Execute(func() (*MovieDetails, error) {
		return b.next.MovieDetails(ctx, id)
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Warn().Err(err).Str("movie_id", id.String()).Msg("[CIRCUIT BREAKER] Request rejected")
			return nil, lookupErr(id, 0, err)
		}
		var le *LookupError
		if errors.As(err, &le) && le.StatusCode == http.StatusNotFound {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
			return nil, err
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(b.cb.Counts().ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
	return details, nil
}

// State returns the breaker state name: closed, half-open or open.
func (b *BreakerClient) State() string {
	return stateToString(b.cb.State())
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
