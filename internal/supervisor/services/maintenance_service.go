// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Cleaner removes expired entries and reports how many were dropped.
type Cleaner interface {
	Cleanup(ctx context.Context) (int, error)
}

// CleanerFunc adapts a function to Cleaner.
type CleanerFunc func(ctx context.Context) (int, error)

// Cleanup calls f.
func (f CleanerFunc) Cleanup(ctx context.Context) (int, error) {
	return f(ctx)
}

// MaintenanceTask is a named Cleaner.
type MaintenanceTask struct {
	Name    string
	Cleaner Cleaner
}

// MaintenanceServiceConfig holds configuration for the maintenance loop.
type MaintenanceServiceConfig struct {
	// Interval between cleanup passes. Default: 30m
	Interval time.Duration

	// RunOnStartup runs a pass before waiting for the first tick.
	RunOnStartup bool

	// TaskTimeout bounds a single task. Default: 1m
	TaskTimeout time.Duration
}

// MaintenanceService periodically purges expired poster URLs and cached
// recommendation results.
type MaintenanceService struct {
	tasks  []MaintenanceTask
	config MaintenanceServiceConfig
	logger zerolog.Logger
	name   string
}

// NewMaintenanceService creates the service. Tasks with a nil Cleaner are
// skipped.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewMaintenanceService(cfg MaintenanceServiceConfig, logger zerolog.Logger, tasks ...MaintenanceTask) *MaintenanceService {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Minute
	}
	if cfg.TaskTimeout <= 0 {
		cfg.TaskTimeout = time.Minute
	}

	kept := make([]MaintenanceTask, 0, len(tasks))
	for _, task := range tasks {
		if task.Cleaner != nil {
			kept = append(kept, task)
		}
	}

	return &MaintenanceService{
		tasks:  kept,
		config: cfg,
		logger: logger.With().Str("service", "maintenance").Logger(),
		name:   "cache-maintenance",
	}
}

// Serve implements suture.Service.
func (s *MaintenanceService) Serve(ctx context.Context) error {
	s.logger.Info().
		Int("tasks", len(s.tasks)).
		Dur("interval", s.config.Interval).
		Msg("maintenance service starting")

	if s.config.RunOnStartup {
		s.RunOnce(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("maintenance service shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce runs every task once and returns the total number of entries
// removed. Task errors are logged and do not stop the pass.
func (s *MaintenanceService) RunOnce(ctx context.Context) int {
	total := 0
	for _, task := range s.tasks {
		if ctx.Err() != nil {
			break
		}

		taskCtx, cancel := context.WithTimeout(ctx, s.config.TaskTimeout)
		start := time.Now()
		removed, err := task.Cleaner.Cleanup(taskCtx)
		cancel()

		if err != nil {
			s.logger.Warn().Err(err).Str("task", task.Name).Msg("cleanup failed")
			continue
		}
		total += removed
		if removed > 0 {
			s.logger.Debug().
				Str("task", task.Name).
				Int("removed", removed).
				Dur("duration", time.Since(start)).
				Msg("expired entries removed")
		}
	}
	return total
}

// String returns the service name for logging.
func (s *MaintenanceService) String() string {
	return s.name
}
