package service

import (
	"context"
	"time"

	"itemhub/internal/repository"
)

// DefaultActivityRetention keeps 90 days of history when config is silent.
const DefaultActivityRetention = 90 * 24 * time.Hour

// RetentionService ages out activity events older than the retention window.
type RetentionService struct {
	activity  repository.Activity
	retention time.Duration
}

func NewRetentionService(activity repository.Activity, retention time.Duration) *RetentionService {
	if retention <= 0 {
		retention = DefaultActivityRetention
	}
	return &RetentionService{
		activity:  activity,
		retention: retention,
	}
}

// Run prunes at the given interval until ctx is canceled. An immediate
// prune happens on start so restarts don't wait a full tick.
func (s *RetentionService) Run(ctx context.Context, tick time.Duration) {
	s.pruneOnce(ctx, time.Now())

	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.pruneOnce(ctx, now)
		}
	}
}

// pruneOnce removes everything older than the window; failures are
// ignored and retried on the next tick.
func (s *RetentionService) pruneOnce(ctx context.Context, now time.Time) {
	cutoff := now.UTC().Add(-s.retention)
	_, _ = s.activity.Prune(ctx, cutoff)
}
