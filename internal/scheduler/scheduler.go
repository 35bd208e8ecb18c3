package scheduler

import (
	"context"
	"sync"

	"github.com/roylee0704/gron"
	"go.uber.org/atomic"

	"codetrack/internal/providers"
	"codetrack/internal/scheduler/interfaces"
	"codetrack/internal/services"
	"codetrack/internal/structures"
)

// Scheduler refreshes the dashboard on a fixed interval. A tick that fires
// while the previous refresh is still running is skipped.
type Scheduler struct {
	config    *structures.Config
	logger    providers.Logger
	dashboard services.DashboardServiceInterface
	cron      *gron.Cron
	running   atomic.Bool
	ctx       context.Context
	cancel    context.CancelFunc
	stopOnce  sync.Once
}

func (s *Scheduler) Init() {
	interval := s.config.Refresh.Interval
	if interval <= 0 {
		s.logger.Infof(providers.TypeApp, "Periodic refresh disabled")
		return
	}

	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(interval), func() {
		s.Tick()
	})
	s.cron.Start()
	s.logger.Infof(providers.TypeApp, "Periodic refresh every %s", interval)
}

// Tick runs one refresh unless one is already in flight. It reports whether
// a refresh ran.
func (s *Scheduler) Tick() bool {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warnf(providers.TypeApp, "Refresh still running, tick skipped")
		return false
	}
	defer s.running.Store(false)

	result, err := s.dashboard.Refresh(s.ctx)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Scheduled refresh failed: %s", err)
		return true
	}
	s.logger.Infof(providers.TypeApp, "Scheduled refresh %s done", result.CycleID)
	return true
}

// Stop halts the timer and cancels a refresh in flight.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		if s.cron != nil {
			s.cron.Stop()
		}
		s.cancel()
	})
}

func NewScheduler(config *structures.Config, logger providers.Logger, dashboard services.DashboardServiceInterface) interfaces.SchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		config:    config,
		logger:    logger,
		dashboard: dashboard,
		ctx:       ctx,
		cancel:    cancel,
	}
}
