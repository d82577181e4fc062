// Package scheduler runs newsletter deliveries on a fixed interval.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"medialetter/internal/logger"
	"medialetter/internal/newsletter"
)

// runTimeout bounds a single scheduled delivery end to end.
const runTimeout = 10 * time.Minute

// Scheduler triggers newsletter runs at a fixed hourly interval.
type Scheduler struct {
	cron    *cron.Cron
	service *newsletter.Service
}

// New returns a Scheduler driving the given service.
func New(service *newsletter.Service) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		service: service,
	}
}

// Start registers the recurring job and begins ticking. The first run happens
// one full interval after start, not immediately.
func (s *Scheduler) Start(intervalHours int) error {
	spec := fmt.Sprintf("@every %dh", intervalHours)
	_, err := s.cron.AddFunc(spec, s.runOnce)
	if err != nil {
		return fmt.Errorf("scheduling newsletter job: %w", err)
	}
	s.cron.Start()
	logger.Info("newsletter schedule started", "interval_hours", intervalHours)
	return nil
}

// Stop halts the ticker and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("newsletter schedule stopped")
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	result, err := s.service.Run(ctx)
	if err != nil {
		logger.Error("scheduled newsletter run failed", err, "run_id", result.RunID)
		return
	}
	if result.Skipped {
		logger.Info("scheduled newsletter run skipped", "run_id", result.RunID)
	}
}
