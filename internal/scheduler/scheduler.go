// Package scheduler runs the periodic publish sweep.
package scheduler

import (
	"context"
	"log"
	"time"
)

// Sweeper promotes scheduled posts that are due at now.
type Sweeper interface {
	SweepPublish(ctx context.Context, now time.Time) (int, error)
}

type PublishScheduler struct {
	sweeper  Sweeper
	interval time.Duration
	now      func() time.Time
}

func NewPublishScheduler(sweeper Sweeper, interval time.Duration) *PublishScheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &PublishScheduler{
		sweeper:  sweeper,
		interval: interval,
		now:      time.Now,
	}
}

// Run sweeps once immediately and then on every tick until ctx is done.
func (s *PublishScheduler) Run(ctx context.Context) {
	log.Printf("Publish scheduler started, interval %s", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Println("Publish scheduler stopped")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick runs a single sweep and reports how many posts were promoted.
func (s *PublishScheduler) Tick(ctx context.Context) int {
	n, err := s.sweeper.SweepPublish(ctx, s.now())
	if err != nil {
		log.Printf("Error: publish sweep failed: %v", err)
		return 0
	}
	if n > 0 {
		log.Printf("Publish sweep promoted %d post(s)", n)
	}
	return n
}
