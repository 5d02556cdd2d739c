package rcrclient

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Poller runs a refresh function on a fixed interval until its context is
// cancelled. Each tick's failure is logged and the next tick proceeds; the
// caller sees fresh data again on the first tick that succeeds.
type Poller struct {
	interval time.Duration
	refresh  func(context.Context) error
	logger   zerolog.Logger
}

// NewPoller constructs a poller. Intervals at or below zero default to 30
// seconds.
func NewPoller(interval time.Duration, refresh func(context.Context) error, logger zerolog.Logger) *Poller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Poller{
		interval: interval,
		refresh:  refresh,
		logger:   logger.With().Str("component", "poller").Logger(),
	}
}

// Run fires one immediate refresh, then ticks until ctx is cancelled. It
// blocks; run it in a goroutine to poll in the background.
func (p *Poller) Run(ctx context.Context) {
	if err := p.refresh(ctx); err != nil && ctx.Err() == nil {
		p.logger.Warn().Err(err).Msg("refresh failed")
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.refresh(ctx); err != nil && ctx.Err() == nil {
				p.logger.Warn().Err(err).Msg("refresh failed")
			}
		}
	}
}
