package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"datawarden-hq/vigil/pkg/alert"
	"datawarden-hq/vigil/pkg/journal"
	"datawarden-hq/vigil/pkg/snapshot"
	"datawarden-hq/vigil/pkg/store"
	"datawarden-hq/vigil/pkg/usage"
)

// shutdownPersistTimeout bounds the final ledger save once the run context
// is already cancelled.
const shutdownPersistTimeout = 10 * time.Second

// Journal records alert attempts. Satisfied by recorder.Recorder.
type Journal interface {
	Record(ctx context.Context, entry *journal.Entry) error
}

// Config contains configuration for the monitor service.
type Config struct {
	// DataLimitBytes is the per-application threshold. An application
	// alerts when its running total strictly exceeds this value.
	DataLimitBytes uint64

	// CheckInterval is the accounting tick cadence.
	CheckInterval time.Duration

	// PersistInterval is the persistence tick cadence.
	PersistInterval time.Duration

	// AlertWorkers bounds how many alert evaluations run concurrently
	// within one tick. Default: 4
	AlertWorkers int
}

// Deps are the collaborators the service composes. Source, Ledger, and
// Throttle are required; the rest degrade gracefully when nil (no
// delivery, no persistence, no journaling, no metrics).
type Deps struct {
	Source   snapshot.Source
	Ledger   *usage.Ledger
	Throttle *alert.Throttle
	Notifier alert.Notifier
	Store    store.Backend
	Journal  Journal
	Metrics  *Metrics
}

// Service drives the accounting and persistence loops.
type Service struct {
	source   snapshot.Source
	ledger   *usage.Ledger
	throttle *alert.Throttle
	notifier alert.Notifier
	store    store.Backend
	journal  Journal
	metrics  *Metrics

	checkInterval   time.Duration
	persistInterval time.Duration
	alertWorkers    int

	// limit is runtime-tunable via ApplySettings.
	limitMu sync.RWMutex
	limit   uint64

	// prev is touched only by the run loop.
	prev snapshot.Snapshot

	logger *slog.Logger
}

// NewService creates a monitor service from its configuration and
// collaborators.
func NewService(cfg *Config, deps Deps) *Service {
	workers := cfg.AlertWorkers
	if workers <= 0 {
		workers = 4
	}

	return &Service{
		source:          deps.Source,
		ledger:          deps.Ledger,
		throttle:        deps.Throttle,
		notifier:        deps.Notifier,
		store:           deps.Store,
		journal:         deps.Journal,
		metrics:         deps.Metrics,
		checkInterval:   cfg.CheckInterval,
		persistInterval: cfg.PersistInterval,
		alertWorkers:    workers,
		limit:           cfg.DataLimitBytes,
		logger:          slog.Default().With("component", "monitor"),
	}
}

// Restore loads persisted totals into the ledger. A backend with no prior
// state restores an empty ledger. Corrupt state is returned to the caller,
// which decides whether to reset or abort; the ledger is untouched then.
func (s *Service) Restore(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	totals, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("restoring usage state: %w", err)
	}

	s.ledger.Replace(totals)
	s.logger.Info("usage state restored", "applications", len(totals))
	return nil
}

// Run drives the accounting and persistence ticks until ctx is cancelled,
// then writes the ledger one final time. The two ticks never run
// concurrently with each other.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Info("monitor started",
		"check_interval", s.checkInterval,
		"persist_interval", s.persistInterval,
		"data_limit_bytes", s.Limit(),
	)

	checkTicker := time.NewTicker(s.checkInterval)
	defer checkTicker.Stop()
	persistTicker := time.NewTicker(s.persistInterval)
	defer persistTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return s.shutdown()
		case <-checkTicker.C:
			s.tick(ctx)
		case <-persistTicker.C:
			s.persist(ctx)
		}
	}
}

// Tick performs one accounting pass: capture, diff, merge, evaluate.
// Exposed for the run loop and for integration tests; production callers
// use Run.
func (s *Service) Tick(ctx context.Context) {
	s.tick(ctx)
}

func (s *Service) tick(ctx context.Context) {
	start := time.Now()

	// Capture runs unlocked; it may walk the whole process table.
	current, err := s.source.Snapshot(ctx)
	if err != nil {
		s.logger.Warn("process snapshot failed", "error", err)
		return
	}

	delta := snapshot.Diff(s.prev, current)
	s.prev = current
	s.ledger.Merge(delta)

	limit := s.Limit()
	if s.metrics != nil {
		for app := range delta {
			s.metrics.UpdateUsage(app, s.ledger.TotalFor(app))
		}
	}

	offenders := s.ledger.Over(limit)
	if len(offenders) > 0 {
		s.evaluateAlerts(ctx, offenders, limit)
	}

	if s.metrics != nil {
		s.metrics.RecordTick(time.Since(start), len(current), s.ledger.Len())
	}
	s.logger.Debug("accounting tick complete",
		"processes", len(current),
		"changed_apps", len(delta),
		"over_limit", len(offenders),
	)
}

// evaluateAlerts fans evaluation out across a bounded worker group. Each
// worker races on the throttle independently; the throttle keeps the
// at-most-one-per-window guarantee.
func (s *Service) evaluateAlerts(ctx context.Context, apps []string, limit uint64) {
	var group errgroup.Group
	group.SetLimit(s.alertWorkers)

	for _, app := range apps {
		app := app
		group.Go(func() error {
			s.evaluate(ctx, app, limit)
			return nil
		})
	}
	group.Wait()
}

func (s *Service) evaluate(ctx context.Context, app string, limit uint64) {
	if s.throttle.TryAlert(app) == alert.OutcomeInCooldown {
		if s.metrics != nil {
			s.metrics.RecordAlert(AlertResultInCooldown)
		}
		s.logger.Debug("alert suppressed by cooldown",
			"app", app,
			"remaining", s.throttle.Remaining(app),
		)
		return
	}

	// The window is charged from here on, whatever delivery does.
	notification := alert.Notification{
		ID:         uuid.New().String(),
		App:        app,
		UsageBytes: s.ledger.TotalFor(app),
		LimitBytes: limit,
		Time:       time.Now(),
	}

	var deliveryErr error
	notifierName := "none"
	if s.notifier != nil {
		notifierName = s.notifier.Name()
		deliveryErr = s.notifier.Send(ctx, notification)
	}

	if deliveryErr != nil {
		if s.metrics != nil {
			s.metrics.RecordAlert(AlertResultFailed)
		}
		s.logger.Error("alert delivery failed",
			"app", app,
			"usage_bytes", notification.UsageBytes,
			"notifier", notifierName,
			"error", deliveryErr,
		)
	} else {
		if s.metrics != nil {
			s.metrics.RecordAlert(AlertResultDelivered)
		}
		s.logger.Info("application exceeded data limit",
			"app", app,
			"usage_bytes", notification.UsageBytes,
			"limit_bytes", limit,
			"notifier", notifierName,
		)
	}

	s.journalAttempt(ctx, notification, notifierName, deliveryErr)
}

func (s *Service) journalAttempt(ctx context.Context, n alert.Notification, notifierName string, deliveryErr error) {
	if s.journal == nil {
		return
	}

	entry := &journal.Entry{
		ID:         n.ID,
		Time:       n.Time,
		App:        n.App,
		UsageBytes: n.UsageBytes,
		LimitBytes: n.LimitBytes,
		Notifier:   notifierName,
		Outcome:    journal.OutcomeDelivered,
	}
	if deliveryErr != nil {
		entry.Outcome = journal.OutcomeFailed
		entry.Error = deliveryErr.Error()
	}

	if err := s.journal.Record(ctx, entry); err != nil {
		s.logger.Warn("journaling alert attempt failed",
			"app", n.App,
			"error", err,
		)
	}
}

// Persist writes a point-in-time copy of the ledger to the store. The copy
// is taken under the ledger lock; the store write runs with no lock held.
func (s *Service) Persist(ctx context.Context) error {
	return s.persist(ctx)
}

func (s *Service) persist(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	totals := s.ledger.Snapshot()
	err := s.store.Save(ctx, totals)
	if s.metrics != nil {
		s.metrics.RecordPersist(err)
	}
	if err != nil {
		s.logger.Error("persisting usage state failed",
			"applications", len(totals),
			"error", err,
		)
		return err
	}

	s.logger.Debug("usage state persisted", "applications", len(totals))
	return nil
}

// shutdown performs the final save with its own deadline; the run context
// is already cancelled when it runs.
func (s *Service) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownPersistTimeout)
	defer cancel()

	if err := s.persist(ctx); err != nil {
		return fmt.Errorf("final usage state save: %w", err)
	}
	s.logger.Info("monitor stopped")
	return nil
}

// ApplySettings updates the runtime-tunable settings: the data limit and
// the alert cooldown window. Applications charged under the old window are
// re-evaluated against the new one.
func (s *Service) ApplySettings(dataLimitBytes uint64, cooldownWindow time.Duration) {
	s.limitMu.Lock()
	s.limit = dataLimitBytes
	s.limitMu.Unlock()

	s.throttle.SetWindow(cooldownWindow)

	s.logger.Info("settings applied",
		"data_limit_bytes", dataLimitBytes,
		"cooldown_window", cooldownWindow,
	)
}

// Limit returns the current per-application data limit.
func (s *Service) Limit() uint64 {
	s.limitMu.RLock()
	defer s.limitMu.RUnlock()
	return s.limit
}
