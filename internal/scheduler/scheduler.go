package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	portssvc "github.com/obsbank/obs_backend/internal/core/ports/services"
	"github.com/obsbank/obs_backend/internal/middleware"
)

// Scheduler triggers the recurring payment tick on a cron spec. The tick logic
// itself lives in the recurring service; this wrapper only owns the timer.
type Scheduler struct {
	cron         *cron.Cron
	recurringSvc portssvc.RecurringSvcFacade
	logger       *slog.Logger
}

// New creates a scheduler that runs ProcessDuePayments on the given cron spec.
func New(spec string, recurringSvc portssvc.RecurringSvcFacade, logger *slog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:         cron.New(),
		recurringSvc: recurringSvc,
		logger:       logger,
	}

	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return nil, err
	}
	return s, nil
}

// Start launches the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Recurring payment scheduler started")
}

// Stop halts the cron loop and waits for a running tick to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Recurring payment scheduler stopped")
}

func (s *Scheduler) tick() {
	tickLogger := s.logger.With(slog.String("tick_id", uuid.NewString()))
	ctx := middleware.ContextWithLogger(context.Background(), tickLogger)

	if err := s.recurringSvc.ProcessDuePayments(ctx, time.Now().UTC()); err != nil {
		tickLogger.Error("Recurring payment tick failed", slog.String("error", err.Error()))
	}
}
