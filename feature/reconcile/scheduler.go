package reconcile

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SchedulerConfig holds configuration for the periodic batch job.
type SchedulerConfig struct {
	// Users is the comma-separated list of usernames to refresh.
	Users string `mapstructure:"users" default:""`
	// IntervalMinutes is the refresh interval. Zero disables the job.
	IntervalMinutes int `mapstructure:"interval_minutes" default:"0"`
	// MaxBooks bounds each pass; zero means the full list.
	MaxBooks int `mapstructure:"max_books" default:"0"`
}

// UserList splits the configured user list.
func (c SchedulerConfig) UserList() []string {
	return splitUsers(c.Users)
}

// Enabled reports whether the job should run.
func (c SchedulerConfig) Enabled() bool {
	return c.IntervalMinutes > 0 && len(c.UserList()) > 0
}

// Scheduler force-refreshes the configured users' reports at a fixed
// interval. Per-user failures are logged and never stop the loop.
type Scheduler struct {
	service *Service
	cfg     SchedulerConfig
	logger  *zap.Logger
}

// NewScheduler creates the batch job.
func NewScheduler(service *Service, cfg SchedulerConfig, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{service: service, cfg: cfg, logger: logger}
}

// Run blocks until ctx is cancelled, refreshing every user once per
// interval. The first pass runs immediately.
func (s *Scheduler) Run(ctx context.Context) {
	interval := time.Duration(s.cfg.IntervalMinutes) * time.Minute
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce refreshes every configured user once.
func (s *Scheduler) RunOnce(ctx context.Context) {
	for _, username := range s.cfg.UserList() {
		if ctx.Err() != nil {
			return
		}

		report, err := s.service.Reconcile(ctx, username, Options{
			ForceRefresh: true,
			MaxBooks:     s.cfg.MaxBooks,
			Trigger:      "scheduler",
		})
		if err != nil {
			s.logger.Error("Scheduled reconciliation failed",
				zap.String("username", username),
				zap.Error(err),
			)
			continue
		}

		s.logger.Info("Scheduled reconciliation complete",
			zap.String("username", username),
			zap.Int("total", report.Summary.Total),
			zap.Int("matched", report.Summary.Matched),
			zap.Int("failures", report.Summary.Failures),
		)
	}
}

func splitUsers(s string) []string {
	var users []string
	for _, part := range strings.Split(s, ",") {
		if user := strings.TrimSpace(part); user != "" {
			users = append(users, user)
		}
	}
	return users
}
