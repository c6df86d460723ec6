package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

type sweeperRepository interface {
	DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Sweeper deletes accounts that never completed activation. A user racing
// to activate at the exact moment of a sweep can still lose the row; the
// job takes no locks and that lost update is accepted.
type Sweeper struct {
	userRepo sweeperRepository
	interval time.Duration
	maxAge   time.Duration
}

func NewSweeper(userRepo sweeperRepository, interval, maxAge time.Duration) *Sweeper {
	return &Sweeper{
		userRepo: userRepo,
		interval: interval,
		maxAge:   maxAge,
	}
}

// Sweep removes unactivated accounts older than maxAge and returns the
// number of rows deleted.
func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-s.maxAge)
	return s.userRepo.DeleteInactiveBefore(ctx, cutoff)
}

// Run sweeps on a fixed interval until the context is cancelled. Sweep
// failures are logged and never stop the loop.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logrus.WithField("interval", s.interval.String()).Info("Account sweeper started")
	for {
		select {
		case <-ctx.Done():
			logrus.Info("Account sweeper stopped")
			return
		case <-ticker.C:
			deleted, err := s.Sweep(ctx)
			if err != nil {
				logrus.WithError(err).Error("Account sweep failed")
				continue
			}
			if deleted > 0 {
				logrus.WithField("deleted", deleted).Info("Swept unactivated accounts")
			}
		}
	}
}
