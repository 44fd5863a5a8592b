// Package scheduler wires up the cron job that periodically closes
// expired job postings.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"ethiowork-backend/internal/service"
)

// Scheduler wraps robfig/cron and manages the expiry sweep.
type Scheduler struct {
	cron    *cron.Cron
	service *service.Service
	log     *logrus.Logger
	spec    string // cron spec, e.g. "@every 1h"
}

// New creates a Scheduler that sweeps every intervalMinutes minutes.
func New(svc *service.Service, logger *logrus.Logger, intervalMinutes int) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithLogger(cron.DefaultLogger)),
		service: svc,
		log:     logger,
		spec:    fmt.Sprintf("@every %dm", intervalMinutes),
	}
}

// Start registers the sweep and starts the scheduler. Also runs one
// sweep immediately so restarts don't leave expired postings active
// until the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runSweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.log.WithField("spec", s.spec).Info("expiry sweep scheduler started")

	go s.runSweep(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info("expiry sweep scheduler stopped")
}

func (s *Scheduler) runSweep(ctx context.Context) {
	closed, err := s.service.CloseExpiredPostings(ctx, time.Now())
	if err != nil {
		s.log.WithField("error", err.Error()).Error("expiry sweep failed")
		return
	}
	if closed > 0 {
		s.log.WithField("closed", closed).Info("expired postings closed")
	}
}
