// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/galleria/internal/config"
	"github.com/tomtom215/galleria/internal/logging"
)

// DefaultReloadDebounce coalesces the burst of events editors emit on save.
const DefaultReloadDebounce = 250 * time.Millisecond

// WatchFunc starts watching path and returns a func that stops the watch.
type WatchFunc func(path string, onChange func()) (stop func() error, err error)

// ConfigWatchService calls reload after the config file changes.
type ConfigWatchService struct {
	path     string
	reload   func() error
	watch    WatchFunc
	debounce time.Duration
}

// NewConfigWatchService watches path with config.WatchConfigFile.
func NewConfigWatchService(path string, reload func() error) *ConfigWatchService {
	return &ConfigWatchService{
		path:     path,
		reload:   reload,
		watch:    config.WatchConfigFile,
		debounce: DefaultReloadDebounce,
	}
}

// WithWatchFunc replaces the file watcher.
func (s *ConfigWatchService) WithWatchFunc(fn WatchFunc) *ConfigWatchService {
	s.watch = fn
	return s
}

// WithDebounce sets how long to wait for further events before reloading.
func (s *ConfigWatchService) WithDebounce(d time.Duration) *ConfigWatchService {
	s.debounce = d
	return s
}

// Serve implements suture.Service. A failed watch setup is returned so the
// supervisor retries it; a failed reload is logged and the old config kept.
func (s *ConfigWatchService) Serve(ctx context.Context) error {
	changed := make(chan struct{}, 1)
	stop, err := s.watch(s.path, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return fmt.Errorf("config watch: %w", err)
	}
	defer func() {
		if err := stop(); err != nil {
			logging.Debug().Err(err).Msg("Config watch stop failed")
		}
	}()

	logging.Info().Str("path", s.path).Msg("Watching config file")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changed:
		}

		if !s.settle(ctx, changed) {
			return ctx.Err()
		}

		if err := s.reload(); err != nil {
			logging.Warn().Err(err).Str("path", s.path).Msg("Config reload failed, keeping previous settings")
			continue
		}
		logging.Info().Str("path", s.path).Msg("Config reloaded")
	}
}

// settle waits until no event arrived for one debounce period.
// Returns false when ctx ends first.
func (s *ConfigWatchService) settle(ctx context.Context, changed <-chan struct{}) bool {
	if s.debounce <= 0 {
		return true
	}
	timer := time.NewTimer(s.debounce)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return false
		case <-changed:
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(s.debounce)
		case <-timer.C:
			return true
		}
	}
}

// String identifies the service in supervisor logs.
func (s *ConfigWatchService) String() string {
	return "config-watch"
}
