package admin

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/admissions/internal/client/client"
	"github.com/dmitrijs2005/admissions/internal/client/models"
	"github.com/dmitrijs2005/admissions/internal/client/reqseq"
	"github.com/dmitrijs2005/admissions/internal/client/services"
	"github.com/dmitrijs2005/admissions/internal/logging"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// Dashboard error messages.
const (
	MsgStatisticsFailed = "Failed to load dashboard statistics"
	MsgRecentFailed     = "Failed to load recent applications"
)

const recentCount = 5

// Dashboard shows the application counters and the newest users.
type Dashboard struct {
	svc services.AdminService
	log logging.Logger

	statSeq   reqseq.Sequencer
	recentSeq reqseq.Sequencer

	mu     sync.Mutex
	stats  models.Statistics
	recent []models.UserSummary
	err    error
}

func NewDashboard(svc services.AdminService, log logging.Logger) *Dashboard {
	if log == nil {
		log = logging.Nop()
	}
	return &Dashboard{svc: svc, log: log.With("component", "admin-dashboard")}
}

// LoadStatistics fetches all five counters in parallel. Every counter that
// loads is kept even if others fail; any failure yields one error with
// MsgStatisticsFailed. A load overtaken by a newer one publishes nothing.
func (d *Dashboard) LoadStatistics(ctx context.Context) error {
	t := d.statSeq.Next()
	var (
		mu    sync.Mutex
		stats models.Statistics
		errs  error
	)
	count := func(dst **int64) func(float64) {
		return func(v float64) { n := int64(v); *dst = &n }
	}
	rate := func(v float64) { stats.CompletionRate = &v }

	fetch := map[string]func(float64){
		client.StatTotalApplications: count(&stats.TotalApplications),
		client.StatPendingCount:      count(&stats.Pending),
		client.StatApprovedCount:     count(&stats.Approved),
		client.StatRejectedCount:     count(&stats.Rejected),
		client.StatCompletionRate:    rate,
	}

	// Each fetch reports through errs; the group itself never fails.
	var g errgroup.Group
	for name, set := range fetch {
		g.Go(func() error {
			v, err := d.svc.Statistic(ctx, name)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = multierr.Append(errs, err)
				return nil
			}
			set(v)
			return nil
		})
	}
	_ = g.Wait()

	var err error
	if errs != nil {
		err = client.Display(MsgStatisticsFailed, errs)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	applied := d.statSeq.Apply(t, func() {
		d.stats = stats
		d.err = err
	})
	if !applied {
		d.log.Debug(ctx, "dropping stale statistics")
		return nil
	}
	if errs != nil {
		d.log.Warn(ctx, "dashboard statistics incomplete", "failures", len(multierr.Errors(errs)), "error", errs)
	}
	return err
}

// LoadRecent fetches the five newest users.
func (d *Dashboard) LoadRecent(ctx context.Context) error {
	t := d.recentSeq.Next()
	p, err := d.svc.ListUsers(ctx, 0, recentCount, DefaultSort+","+SortDesc)
	if err != nil {
		err = client.Display(MsgRecentFailed, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	applied := d.recentSeq.Apply(t, func() {
		if err != nil {
			d.err = err
			return
		}
		d.recent = p.Content
	})
	if !applied {
		d.log.Debug(ctx, "dropping stale recent users")
		return nil
	}
	return err
}

// Load runs LoadStatistics and LoadRecent and returns both failures.
func (d *Dashboard) Load(ctx context.Context) error {
	return multierr.Combine(d.LoadStatistics(ctx), d.LoadRecent(ctx))
}

func (d *Dashboard) Statistics() models.Statistics {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

func (d *Dashboard) Recent() []models.UserSummary {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]models.UserSummary(nil), d.recent...)
}

// Err returns the error indicator of the last load, or nil.
func (d *Dashboard) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}
