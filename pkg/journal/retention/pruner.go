package retention

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"datawarden-hq/vigil/pkg/journal"
	"datawarden-hq/vigil/pkg/journal/export"
)

// Config contains configuration for the retention pruner.
type Config struct {
	// RetentionDays is the number of days to retain journal entries.
	// 0 means keep entries forever (no age-based pruning).
	RetentionDays int

	// PruneSchedule is a cron expression for scheduling pruning.
	// Example: "0 3 * * *" (daily at 3 AM)
	PruneSchedule string

	// ArchiveBeforeDelete enables archiving entries to JSON before deletion.
	ArchiveBeforeDelete bool

	// ArchivePath is the directory to store archived entries.
	ArchivePath string

	// MaxEntries is the maximum number of entries to keep.
	// 0 means unlimited.
	MaxEntries int64
}

// DefaultConfig returns the default retention configuration.
func DefaultConfig() *Config {
	return &Config{
		RetentionDays:       90,
		PruneSchedule:       "0 3 * * *",
		ArchiveBeforeDelete: false,
		ArchivePath:         "data/archives/",
		MaxEntries:          0,
	}
}

// Pruner enforces retention policies on journal entries.
type Pruner struct {
	storage   journal.Storage
	config    *Config
	logger    *slog.Logger
	scheduler *Scheduler
}

// NewPruner creates a new retention pruner.
func NewPruner(storage journal.Storage, config *Config) *Pruner {
	if config == nil {
		config = DefaultConfig()
	}

	pruner := &Pruner{
		storage: storage,
		config:  config,
		logger:  slog.Default().With("component", "journal.retention"),
	}

	pruner.scheduler = NewScheduler(pruner)

	return pruner
}

// Prune deletes journal entries older than the retention period or exceeding
// the max entry count.
//
// Pruning happens in two phases:
//  1. Age-based: delete entries older than retention_days
//  2. Count-based: if total entries > max_entries, delete oldest
//
// Both can run together. Returns the total number of entries deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var totalDeleted int64

	if p.config.RetentionDays > 0 {
		deleted, err := p.pruneByAge(ctx)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by age failed: %w", err)
		}
		totalDeleted += deleted
		p.logger.Info("pruned entries by age",
			"deleted_count", deleted,
			"retention_days", p.config.RetentionDays,
		)
	}

	if p.config.MaxEntries > 0 {
		deleted, err := p.pruneByCount(ctx)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by count failed: %w", err)
		}
		totalDeleted += deleted
		p.logger.Info("pruned entries by count",
			"deleted_count", deleted,
			"max_entries", p.config.MaxEntries,
		)
	}

	if totalDeleted == 0 {
		p.logger.Debug("no entries pruned",
			"retention_days", p.config.RetentionDays,
			"max_entries", p.config.MaxEntries,
		)
	} else {
		p.logger.Info("journal pruning completed",
			"total_deleted", totalDeleted,
			"retention_days", p.config.RetentionDays,
			"max_entries", p.config.MaxEntries,
		)
	}

	return totalDeleted, nil
}

// pruneByAge deletes entries older than the retention period.
func (p *Pruner) pruneByAge(ctx context.Context) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -p.config.RetentionDays)

	query := &journal.Query{
		Until: &cutoff,
	}

	if p.config.ArchiveBeforeDelete {
		entries, err := p.storage.Query(ctx, query)
		if err != nil {
			return 0, journal.NewRetentionError(p.config.RetentionDays, err)
		}
		if err := p.archiveEntries(ctx, entries, "age"); err != nil {
			return 0, journal.NewRetentionError(p.config.RetentionDays, err)
		}
	}

	deleted, err := p.storage.Delete(ctx, query)
	if err != nil {
		return 0, journal.NewRetentionError(p.config.RetentionDays, err)
	}

	return deleted, nil
}

// pruneByCount deletes oldest entries if total count exceeds max_entries.
func (p *Pruner) pruneByCount(ctx context.Context) (int64, error) {
	count, err := p.storage.Count(ctx, &journal.Query{})
	if err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}

	if count <= p.config.MaxEntries {
		p.logger.Debug("entry count within limit",
			"current", count,
			"max", p.config.MaxEntries,
		)
		return 0, nil
	}

	p.logger.Info("entry count exceeds limit, pruning oldest",
		"current_count", count,
		"max_entries", p.config.MaxEntries,
	)

	allEntries, err := p.storage.Query(ctx, &journal.Query{})
	if err != nil {
		return 0, fmt.Errorf("failed to query entries: %w", err)
	}
	if len(allEntries) == 0 {
		return 0, nil
	}

	// Oldest first
	sort.Slice(allEntries, func(i, j int) bool {
		return allEntries[i].Time.Before(allEntries[j].Time)
	})

	// Recompute in case the count changed between Count and Query
	toDelete := len(allEntries) - int(p.config.MaxEntries)
	if toDelete <= 0 {
		return 0, nil
	}
	if toDelete > len(allEntries) {
		toDelete = len(allEntries)
	}

	// Cutoff is the time of the newest entry slated for deletion. Entries
	// sharing that exact timestamp are deleted together.
	cutoffTime := allEntries[toDelete-1].Time

	deleteQuery := &journal.Query{
		Until: &cutoffTime,
	}

	if p.config.ArchiveBeforeDelete {
		if err := p.archiveEntries(ctx, allEntries[:toDelete], "count"); err != nil {
			return 0, fmt.Errorf("archive failed: %w", err)
		}
	}

	deleted, err := p.storage.Delete(ctx, deleteQuery)
	if err != nil {
		return 0, fmt.Errorf("delete failed: %w", err)
	}

	return deleted, nil
}

// archiveEntries exports entries to a JSON file before deletion.
func (p *Pruner) archiveEntries(ctx context.Context, entries []*journal.Entry, phase string) error {
	if len(entries) == 0 {
		return nil
	}

	if err := os.MkdirAll(p.config.ArchivePath, 0o755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	archiveFile := filepath.Join(p.config.ArchivePath,
		fmt.Sprintf("journal-%s-%s.json", phase, time.Now().Format("2006-01-02-150405")))
	f, err := os.Create(archiveFile)
	if err != nil {
		return fmt.Errorf("failed to create archive file: %w", err)
	}
	defer f.Close()

	exporter := export.NewJSONExporter(true)
	if err := exporter.Export(ctx, entries, f); err != nil {
		return fmt.Errorf("failed to export entries to archive: %w", err)
	}

	p.logger.Info("journal entries archived",
		"archive_file", archiveFile,
		"entry_count", len(entries),
	)

	return nil
}

// Start starts the automatic pruning scheduler.
func (p *Pruner) Start(ctx context.Context) error {
	return p.scheduler.Start(ctx)
}

// Stop stops the automatic pruning scheduler.
func (p *Pruner) Stop() {
	p.scheduler.Stop()
}

// NextPruning returns the time of the next scheduled pruning.
func (p *Pruner) NextPruning() *time.Time {
	return p.scheduler.NextRun()
}
