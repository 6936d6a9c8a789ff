package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper periodically evicts idle practice sessions.
type Sweeper struct {
	evicter  IdleEvicter
	ttl      time.Duration
	interval time.Duration
	logger   *zap.Logger
}

func NewSweeper(evicter IdleEvicter, ttl, interval time.Duration, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		evicter:  evicter,
		ttl:      ttl,
		interval: interval,
		logger:   logger,
	}
}

// Start runs the sweep schedule until ctx is done.
func (s *Sweeper) Start(ctx context.Context) {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc("@every "+s.interval.String(), s.sweep)
	if err != nil {
		s.logger.Error("failed to add sweep job", zap.Error(err))
		return
	}

	c.Start()
	s.logger.Info("session sweeper started",
		zap.Duration("ttl", s.ttl),
		zap.Duration("interval", s.interval),
	)

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("session sweeper stopped")
}

func (s *Sweeper) sweep() {
	if removed := s.evicter.EvictIdle(s.ttl); removed > 0 {
		s.logger.Info("idle sessions evicted", zap.Int("count", removed))
	}
}
