package scheduler

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"rental-insights/internal/analytics"
	"rental-insights/internal/config"
)

// Reporter is the part of analytics.Service the digest needs
type Reporter interface {
	StatusCounts() []analytics.StatusCount
	PropertyIDsWithInvalidPostcodes() []string
	Today() time.Time
}

// Digest is the daily occupancy summary
type Digest struct {
	Date             time.Time               `json:"date"`
	Statuses         []analytics.StatusCount `json:"statuses"`
	InvalidPostcodes []string                `json:"invalid_postcodes"`
}

// Scheduler logs an occupancy digest once a day
type Scheduler struct {
	cron     *cron.Cron
	reporter Reporter
	config   config.ReportConfig
	logger   *slog.Logger

	mu        sync.Mutex
	isRunning bool
}

// NewScheduler creates a new scheduler. Jobs fire in loc.
func NewScheduler(reporter Reporter, cfg config.ReportConfig, loc *time.Location, logger *slog.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		reporter: reporter,
		config:   cfg,
		logger:   logger.With("component", "scheduler"),
	}
}

// Start registers the daily job and starts the cron loop. It is a no-op
// when the daily run is disabled.
func (s *Scheduler) Start() error {
	if !s.config.DailyRunEnabled {
		s.logger.Info("daily digest is disabled in configuration")
		return nil
	}

	cronSpec, err := ParseDailyRunTime(s.config.DailyRunTime)
	if err != nil {
		return err
	}

	if _, err := s.cron.AddFunc(cronSpec, func() { s.RunNow() }); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cron.Start()
	s.isRunning = true
	s.logger.Info("started", "daily_run_time", s.config.DailyRunTime, "cron", cronSpec)

	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		<-s.cron.Stop().Done()
		s.isRunning = false
		s.logger.Info("stopped")
	}
}

// RunNow builds and logs the digest immediately
func (s *Scheduler) RunNow() Digest {
	d := Digest{
		Date:             s.reporter.Today(),
		Statuses:         s.reporter.StatusCounts(),
		InvalidPostcodes: s.reporter.PropertyIDsWithInvalidPostcodes(),
	}

	attrs := []any{"date", d.Date.Format("2006-01-02"), "invalid_postcodes", len(d.InvalidPostcodes)}
	for _, sc := range d.Statuses {
		attrs = append(attrs, string(sc.Status), sc.Count)
	}
	s.logger.Info("occupancy digest", attrs...)

	return d
}

// ParseDailyRunTime converts HH:MM format to cron specification
// Example: "02:00" -> "0 2 * * *"
func ParseDailyRunTime(timeStr string) (string, error) {
	t, err := time.Parse("15:04", timeStr)
	if err != nil {
		return "", fmt.Errorf("invalid daily run time %q: %w", timeStr, err)
	}
	return fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour()), nil
}
