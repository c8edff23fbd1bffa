// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package client

import (
	"context"
	"errors"
	"fmt"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/galleria/internal/config"
	"github.com/tomtom215/galleria/internal/logging"
	"github.com/tomtom215/galleria/internal/metrics"
	"github.com/tomtom215/galleria/internal/models"
)

// DefaultBreakerName labels the gallery backend breaker in metrics and logs.
const DefaultBreakerName = "gallery-backend"

var _ GalleryClient = (*CircuitBreakerClient)(nil)

// CircuitBreakerClient wraps a GalleryClient with sony/gobreaker so an
// unhealthy backend is failed fast instead of hammered.
//
// The breaker uses wall-clock time for its interval and timeout.
type CircuitBreakerClient struct {
	client GalleryClient
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// NewCircuitBreakerClient wraps client. The breaker opens once at least
// MinRequests were seen in the interval and the failure ratio reaches
// FailureRatio; it half-opens after Timeout and lets MaxRequests probes through.
func NewCircuitBreakerClient(client GalleryClient, cfg *config.CircuitBreakerConfig, name string) *CircuitBreakerClient {
	if name == "" {
		name = DefaultBreakerName
	}

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
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
					Msg("[CIRCUIT BREAKER] Opening gallery backend circuit")
			}
			return shouldTrip
		},

		// Not-found, bad input and caller cancellation say nothing about backend health.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				IsClientError(err) ||
				errors.Is(err, ErrInvalidArgument) ||
				errors.Is(err, context.Canceled)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().
				Str("breaker", name).
				Str("from", fromStr).
				Str("to", toStr).
				Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &CircuitBreakerClient{client: client, cb: cb, name: name}
}

// State returns the current breaker state.
func (cbc *CircuitBreakerClient) State() gobreaker.State {
	return cbc.cb.State()
}

// Name returns the breaker name.
func (cbc *CircuitBreakerClient) Name() string {
	return cbc.name
}

// Ready returns gobreaker.ErrOpenState while the breaker is open.
// A half-open breaker counts as ready so probes can reach the backend.
func (cbc *CircuitBreakerClient) Ready() error {
	if cbc.cb.State() == gobreaker.StateOpen {
		return gobreaker.ErrOpenState
	}
	return nil
}

func (cbc *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := cbc.cb.Execute(fn)

	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "success").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(0)
		return result, nil
	case IsUnavailable(err):
		metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "rejected").Inc()
		logging.Warn().Err(err).Str("breaker", cbc.name).Msg("[CIRCUIT BREAKER] Request rejected")
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "failure").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(float64(cbc.cb.Counts().ConsecutiveFailures))
	}
	return nil, err
}

// castResult type-asserts a breaker result.
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
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

// GetSystemConfig fetches one configuration entry with circuit breaker protection.
func (cbc *CircuitBreakerClient) GetSystemConfig(ctx context.Context, category, key string) (*models.SystemConfig, error) {
	return castResult[*models.SystemConfig](cbc.execute(func() (interface{}, error) {
		return cbc.client.GetSystemConfig(ctx, category, key)
	}))
}

// GetSystemConfigsByCategory fetches a category with circuit breaker protection.
func (cbc *CircuitBreakerClient) GetSystemConfigsByCategory(ctx context.Context, category string) ([]models.SystemConfig, error) {
	return castResult[[]models.SystemConfig](cbc.execute(func() (interface{}, error) {
		return cbc.client.GetSystemConfigsByCategory(ctx, category)
	}))
}

// GetTimelineStatistics fetches timeline statistics with circuit breaker protection.
func (cbc *CircuitBreakerClient) GetTimelineStatistics(ctx context.Context) (*models.TimelineStatistics, error) {
	return castResult[*models.TimelineStatistics](cbc.execute(func() (interface{}, error) {
		return cbc.client.GetTimelineStatistics(ctx)
	}))
}

// GetTimelineBucket fetches one month with circuit breaker protection.
func (cbc *CircuitBreakerClient) GetTimelineBucket(ctx context.Context, year, month int) (*models.TimelineBucket, error) {
	return castResult[*models.TimelineBucket](cbc.execute(func() (interface{}, error) {
		return cbc.client.GetTimelineBucket(ctx, year, month)
	}))
}

// GetVideoURL resolves video sources with circuit breaker protection.
func (cbc *CircuitBreakerClient) GetVideoURL(ctx context.Context, uuid string) ([]models.VideoSource, error) {
	return castResult[[]models.VideoSource](cbc.execute(func() (interface{}, error) {
		return cbc.client.GetVideoURL(ctx, uuid)
	}))
}

// GetVideoInfo fetches video metadata with circuit breaker protection.
func (cbc *CircuitBreakerClient) GetVideoInfo(ctx context.Context, uuid string) (*models.VideoInfo, error) {
	return castResult[*models.VideoInfo](cbc.execute(func() (interface{}, error) {
		return cbc.client.GetVideoInfo(ctx, uuid)
	}))
}

// GetVideoPlayerProps composes player props; each underlying call passes the breaker.
func (cbc *CircuitBreakerClient) GetVideoPlayerProps(ctx context.Context, uuid string) (*models.VideoPlayerProps, error) {
	return composeVideo(ctx, cbc, uuid, func(info *models.VideoInfo, sources []models.VideoSource) *models.VideoPlayerProps {
		props := info.PlayerProps(sources)
		return &props
	})
}

// GetVideoListItem composes the gallery card; each underlying call passes the breaker.
func (cbc *CircuitBreakerClient) GetVideoListItem(ctx context.Context, uuid string) (*models.VideoListItem, error) {
	return composeVideo(ctx, cbc, uuid, func(info *models.VideoInfo, sources []models.VideoSource) *models.VideoListItem {
		item := info.ListItem(uuid, sources)
		return &item
	})
}
