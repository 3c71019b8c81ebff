package service

import (
	"context"
	"time"

	"github.com/arpansethi30/finagent/internal/web/config"
	"github.com/arpansethi30/finagent/internal/web/dto"
	"github.com/arpansethi30/finagent/internal/web/repository"
	"github.com/arpansethi30/finagent/pkg/common"
	"github.com/arpansethi30/finagent/pkg/logger"
	"github.com/arpansethi30/finagent/pkg/telegram"

	gocache "github.com/patrickmn/go-cache"
	"github.com/robfig/cron/v3"
)

// HealthService polls the analytics backend on a schedule and serves the
// latest cached status. Page rendering never blocks on a live probe.
type HealthService interface {
	Start(ctx context.Context) error
	Stop()
	Status() dto.BackendHealth
}

// NewHealthService creates the backend health monitor. The notifier may be
// nil, in which case status transitions are only logged.
func NewHealthService(
	analyzerRepo repository.AnalyzerRepository,
	notifier telegram.Notifier,
	cfg *config.Config,
	log *logger.Logger,
) HealthService {
	return &healthService{
		analyzerRepo: analyzerRepo,
		notifier:     notifier,
		cfg:          cfg,
		logger:       log,
		statusCache:  gocache.New(gocache.NoExpiration, gocache.NoExpiration),
		cron:         cron.New(),
	}
}

type healthService struct {
	analyzerRepo repository.AnalyzerRepository
	notifier     telegram.Notifier
	cfg          *config.Config
	logger       *logger.Logger
	statusCache  *gocache.Cache
	cron         *cron.Cron

	downSince time.Time
}

// Start probes once immediately, then on the configured schedule.
func (s *healthService) Start(ctx context.Context) error {
	schedule := s.cfg.Health.PollSchedule
	if schedule == "" {
		schedule = "@every 30s"
	}

	s.probe(ctx)

	if _, err := s.cron.AddFunc(schedule, func() { s.probe(ctx) }); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("Backend health monitor started", logger.Field("schedule", schedule))
	return nil
}

// Stop halts the poll loop.
func (s *healthService) Stop() {
	<-s.cron.Stop().Done()
}

// Status returns the latest probe result. Before the first probe completes
// the backend is reported unhealthy with an explanatory message.
func (s *healthService) Status() dto.BackendHealth {
	if v, ok := s.statusCache.Get(common.HealthCacheKey); ok {
		return v.(dto.BackendHealth)
	}
	return dto.BackendHealth{Healthy: false, Error: "health status not yet known"}
}

func (s *healthService) probe(ctx context.Context) {
	timeout := s.cfg.Health.ProbeTimeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := s.analyzerRepo.Health(probeCtx)

	status := dto.BackendHealth{
		Healthy:   err == nil,
		CheckedAt: time.Now(),
		LatencyMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		status.Error = err.Error()
	}

	prev := s.Status()
	s.statusCache.Set(common.HealthCacheKey, status, gocache.NoExpiration)

	s.notifyOnTransition(prev, status, err)
}

// notifyOnTransition fires exactly one alert per healthy/unhealthy edge.
func (s *healthService) notifyOnTransition(prev, curr dto.BackendHealth, probeErr error) {
	// A zero CheckedAt on prev means this is the first probe; a failing
	// first probe still counts as a down transition.
	switch {
	case (prev.Healthy || prev.CheckedAt.IsZero()) && !curr.Healthy:
		s.downSince = curr.CheckedAt
		s.logger.Error("Analytics backend went down", logger.ErrorField(probeErr))
		if s.notifier != nil {
			msg := telegram.FormatBackendDown(s.cfg.Analyzer.BaseURL, probeErr, curr.CheckedAt)
			if err := s.notifier.SendMessage(msg); err != nil {
				s.logger.Warn("Failed to send backend-down alert", logger.ErrorField(err))
			}
		}
	case !prev.Healthy && curr.Healthy && !s.downSince.IsZero():
		downFor := curr.CheckedAt.Sub(s.downSince)
		s.downSince = time.Time{}
		s.logger.Info("Analytics backend recovered", logger.Field("downtime", downFor.String()))
		if s.notifier != nil {
			msg := telegram.FormatBackendRecovered(s.cfg.Analyzer.BaseURL, downFor, curr.CheckedAt)
			if err := s.notifier.SendMessage(msg); err != nil {
				s.logger.Warn("Failed to send backend-recovered alert", logger.ErrorField(err))
			}
		}
	}
}
