package providers

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/samber/do/v2"

	"github.com/helojet/helojet-server/internal/config"
	"github.com/helojet/helojet-server/internal/logger"
	"github.com/helojet/helojet-server/internal/pages"
	"github.com/helojet/helojet-server/internal/ratelimit"
	"github.com/helojet/helojet-server/internal/service"
)

// Lead submissions allowed per client: a burst of 3, then one every 20 seconds.
const (
	leadRatePerSecond = 1.0 / 20
	leadBurst         = 3
)

// PageWatcherHandle reloads page overrides when files in the override
// directory change.
type PageWatcherHandle struct {
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *PageWatcherHandle) Shutdown() error {
	h.cancel()
	return nil
}

// ProvidePageWatcher starts watching the page override directory.
func ProvidePageWatcher(i do.Injector) (*PageWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	library := do.MustInvoke[*pages.Library](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx, cancel := context.WithCancel(context.Background())

	if cfg.Pages.OverridePath != "" {
		go func() {
			if err := library.Watch(ctx); err != nil {
				log.Error("Page override watcher stopped", "error", err)
			}
		}()
		log.Info("Page override watcher started", "path", cfg.Pages.OverridePath)
	}

	return &PageWatcherHandle{cancel: cancel}, nil
}

// DraftCleanupJob drops abandoned editor drafts on a cron schedule.
type DraftCleanupJob struct {
	sched *cron.Cron
}

// Shutdown implements do.Shutdownable.
func (j *DraftCleanupJob) Shutdown() error {
	ctx := j.sched.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(shutdownTimeout):
	}
	return nil
}

// ProvideDraftCleanupJob schedules draft expiry.
func ProvideDraftCleanupJob(i do.Injector) (*DraftCleanupJob, error) {
	cfg := do.MustInvoke[*config.Config](i)
	editor := do.MustInvoke[*service.EditorService](i)
	log := do.MustInvoke[*logger.Logger](i)

	sched := cron.New()
	_, err := sched.AddFunc(cfg.Storefront.DraftCleanupSchedule, func() {
		if removed := editor.CleanupExpired(time.Now()); removed > 0 {
			log.Info("Draft cleanup completed", "removed", removed)
		}
	})
	if err != nil {
		return nil, err
	}
	sched.Start()

	log.Info("Draft cleanup job started",
		"schedule", cfg.Storefront.DraftCleanupSchedule,
		"ttl", cfg.Storefront.DraftTTL,
	)

	return &DraftCleanupJob{sched: sched}, nil
}

// LeadLimiterHandle wraps the lead rate limiter with shutdown capability.
type LeadLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *LeadLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideLeadLimiter provides the per-IP lead submission limiter.
func ProvideLeadLimiter(i do.Injector) (*LeadLimiterHandle, error) {
	return &LeadLimiterHandle{KeyedRateLimiter: ratelimit.New(leadRatePerSecond, leadBurst)}, nil
}
