// Package scheduler drives the periodic report/upload job.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cron     *cron.Cron
	ctx      context.Context
	cancel   context.CancelFunc
	spec     string
	reportFn func(ctx context.Context) error
}

// New creates a scheduler firing on the given cron spec (UTC).
func New(spec string) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		ctx:    ctx,
		cancel: cancel,
		spec:   spec,
	}
}

// SetReportFunc installs the job to run on each tick.
func (s *Scheduler) SetReportFunc(f func(ctx context.Context) error) {
	s.reportFn = f
}

func (s *Scheduler) Start() error {
	if s.reportFn == nil {
		log.Println("⚠️ report function not set, scheduler will not run")
		return nil
	}

	_, err := s.cron.AddFunc(s.spec, func() {
		log.Printf("🕘 triggered scheduled report (%s)", s.spec)
		if err := s.reportFn(s.ctx); err != nil {
			log.Printf("❌ scheduled report failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("📅 scheduler started, report spec %q (UTC)", s.spec)
	return nil
}

// Stop waits for a running job to finish before returning.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	if s.cancel != nil {
		s.cancel()
	}
	log.Println("📅 scheduler stopped")
}

func (s *Scheduler) IsRunning() bool {
	return s.cron != nil && len(s.cron.Entries()) > 0
}
