// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"context"
	"time"

	"github.com/medward/medward/internal/config"
	"github.com/medward/medward/internal/logger"
)

// tokenPruner is the slice of the credential repository the retention worker
// needs.
type tokenPruner interface {
	DeleteStaleRefreshTokens(ctx context.Context, cutoff time.Time) (int64, error)
}

// RetentionWorker periodically deletes refresh tokens that are revoked or
// expired and older than the retention window. It is housekeeping only:
// live tokens are never touched, and password reset tokens are not swept
// here (their expiry is checked lazily at consumption time).
type RetentionWorker struct {
	pruner   tokenPruner
	interval time.Duration
	age      time.Duration
	done     chan struct{}
	logger   *logger.Logger
}

// NewRetentionWorker constructs a RetentionWorker from the workers
// configuration.
func NewRetentionWorker(pruner tokenPruner, cfg config.Workers, logger *logger.Logger) *RetentionWorker {
	return &RetentionWorker{
		pruner:   pruner,
		interval: cfg.TokenRetentionInterval,
		age:      cfg.TokenRetentionAge,
		done:     make(chan struct{}),
		logger:   logger,
	}
}

// Run starts the periodic sweep in a background goroutine and returns
// immediately. Call Stop to terminate it.
func (w *RetentionWorker) Run() {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.done:
				return
			case <-ticker.C:
				w.sweep()
			}
		}
	}()
}

// Stop terminates the sweep loop. Safe to call once.
func (w *RetentionWorker) Stop() {
	close(w.done)
}

func (w *RetentionWorker) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	deleted, err := w.pruner.DeleteStaleRefreshTokens(ctx, time.Now().Add(-w.age))
	if err != nil {
		w.logger.Err(err).Msg("stale refresh token sweep failed")
		return
	}
	if deleted > 0 {
		w.logger.Info().Int64("deleted", deleted).Msg("stale refresh tokens deleted")
	}
}
