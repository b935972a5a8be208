package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"

	portssvc "github.com/mkravets/fx_exchange_app/internal/core/ports/services"
)

// RefreshScheduler periodically pulls fresh rates from the feed and publishes
// them through the rate service.
type RefreshScheduler struct {
	rateService portssvc.RateRefresherSvc
	interval    time.Duration
	logger      *slog.Logger
	// -----
	sched gocron.Scheduler
}

// NewRefreshScheduler creates a scheduler that refreshes rates every interval.
func NewRefreshScheduler(rateService portssvc.RateRefresherSvc, interval time.Duration, logger *slog.Logger) *RefreshScheduler {
	return &RefreshScheduler{rateService: rateService, interval: interval, logger: logger}
}

// Start launches the refresh job. The job is a singleton: a refresh still in
// flight when the next tick fires is not run concurrently. The scheduler
// shuts down when the provided context is canceled.
func (s *RefreshScheduler) Start(ctx context.Context) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	s.sched = sched

	job := func(jobCtx context.Context) {
		execID := uuid.NewString()
		snapshot, refreshErr := s.rateService.RefreshRates(jobCtx)
		if refreshErr != nil {
			s.logger.Error("Scheduled rate refresh failed",
				slog.String("exec_id", execID),
				slog.String("error", refreshErr.Error()),
			)
			return
		}
		s.logger.Info("Scheduled rate refresh published",
			slog.String("exec_id", execID),
			slog.Time("effective_date", snapshot.EffectiveDate),
			slog.Int("rate_count", len(snapshot.Rates)),
		)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	sched.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			s.logger.Error("Scheduler shutdown error", slog.String("error", sdErr.Error()))
		}
	}()
	return nil
}

// Shutdown stops the scheduler. Safe to call more than once.
func (s *RefreshScheduler) Shutdown() error {
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}
