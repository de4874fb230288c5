package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/noteful/internal/noteful/store"
	"github.com/aussiebroadwan/noteful/pkg/jwtx"
)

// HousekeepingService periodically clears refresh tokens that can no longer
// be used, so a user who never comes back does not keep a session row
// forever. Only needed for backends without their own expiry.
type HousekeepingService struct {
	Sessions store.SessionSweeper
	Refresh  jwtx.Verifier
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(sessions store.SessionSweeper, refresh jwtx.Verifier, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Sessions: sessions,
		Refresh:  refresh,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the sweep immediately and then every Interval until Stop.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress sweep has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

func (s *HousekeepingService) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), s.Interval)
	defer cancel()

	cleared, err := s.Sweep(ctx)
	if err != nil {
		s.Logger.Error("housekeeping sweep failed", "error", err, "cleared", cleared)
		return
	}
	s.Logger.Info("housekeeping sweep completed", "cleared", cleared)
}

// Sweep clears every stored refresh token that no longer verifies, expired
// or otherwise. A token replaced by a concurrent login is left alone.
func (s *HousekeepingService) Sweep(ctx context.Context) (int, error) {
	tokens, err := s.Sessions.ListRefreshTokens(ctx)
	if err != nil {
		return 0, err
	}

	cleared := 0
	for username, token := range tokens {
		if _, err := s.Refresh.Verify(token); err == nil {
			continue
		}

		ok, err := s.Sessions.ClearRefreshToken(ctx, username, token)
		if err != nil {
			return cleared, err
		}
		if ok {
			cleared++
			s.Logger.Debug("cleared stale refresh token", "username", username)
		}
	}
	return cleared, nil
}
