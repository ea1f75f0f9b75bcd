package retention

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"datawarden-hq/vigil/pkg/journal"
	"datawarden-hq/vigil/pkg/journal/storage"
)

// agedEntry builds a journal entry whose timestamp lies daysOld days in
// the past.
func agedEntry(id string, daysOld int) *journal.Entry {
	return &journal.Entry{
		ID:         id,
		Time:       time.Now().AddDate(0, 0, -daysOld),
		App:        "firefox",
		UsageBytes: 2 << 30,
		LimitBytes: 1 << 30,
		Notifier:   "desktop",
		Outcome:    journal.OutcomeDelivered,
	}
}

// TestPruner_PruneOldEntries tests pruning entries older than the retention period.
func TestPruner_PruneOldEntries(t *testing.T) {
	store := storage.NewMemoryStorage()
	config := DefaultConfig()
	config.RetentionDays = 7
	config.ArchiveBeforeDelete = false

	pruner := NewPruner(store, config)

	ctx := context.Background()
	_ = store.Store(ctx, agedEntry("old-1", 10))
	_ = store.Store(ctx, agedEntry("old-2", 8))
	_ = store.Store(ctx, agedEntry("recent-1", 5))
	_ = store.Store(ctx, agedEntry("recent-2", 3))

	deleted, err := pruner.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune() failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("Expected 2 deleted entries, got %d", deleted)
	}

	results, _ := store.Query(ctx, &journal.Query{})
	if len(results) != 2 {
		t.Fatalf("Expected 2 remaining entries, got %d", len(results))
	}
	for _, e := range results {
		if e.ID == "old-1" || e.ID == "old-2" {
			t.Errorf("Old entry %s should have been deleted", e.ID)
		}
	}
}

// TestPruner_RetentionDisabled tests that pruning is skipped when retention is 0.
func TestPruner_RetentionDisabled(t *testing.T) {
	store := storage.NewMemoryStorage()
	config := DefaultConfig()
	config.RetentionDays = 0

	pruner := NewPruner(store, config)

	ctx := context.Background()
	_ = store.Store(ctx, agedEntry("ancient", 1000))

	deleted, err := pruner.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune() failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("Expected 0 deleted entries when retention disabled, got %d", deleted)
	}

	count, _ := store.Count(ctx, &journal.Query{})
	if count != 1 {
		t.Errorf("Expected entry to remain, got count %d", count)
	}
}

// TestPruner_EmptyStorage tests pruning empty storage.
func TestPruner_EmptyStorage(t *testing.T) {
	store := storage.NewMemoryStorage()
	config := DefaultConfig()
	config.RetentionDays = 7

	pruner := NewPruner(store, config)

	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("Expected 0 deleted entries from empty storage, got %d", deleted)
	}
}

// TestPruner_ArchiveBeforeDelete tests archiving entries before deletion.
func TestPruner_ArchiveBeforeDelete(t *testing.T) {
	store := storage.NewMemoryStorage()
	tmpDir := t.TempDir()

	config := DefaultConfig()
	config.RetentionDays = 7
	config.ArchiveBeforeDelete = true
	config.ArchivePath = tmpDir

	pruner := NewPruner(store, config)

	ctx := context.Background()
	_ = store.Store(ctx, agedEntry("old-1", 10))
	_ = store.Store(ctx, agedEntry("old-2", 8))

	deleted, err := pruner.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune() failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("Expected 2 deleted entries, got %d", deleted)
	}

	files, err := filepath.Glob(filepath.Join(tmpDir, "journal-*.json"))
	if err != nil {
		t.Fatalf("Failed to list archive files: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("Expected 1 archive file, got %d", len(files))
	}

	stat, err := os.Stat(files[0])
	if err != nil {
		t.Fatalf("Failed to stat archive file: %v", err)
	}
	if stat.Size() == 0 {
		t.Error("Archive file is empty")
	}
}

// TestPruner_NoArchiveWhenNothingPruned tests that no archive file is created
// when no entries match.
func TestPruner_NoArchiveWhenNothingPruned(t *testing.T) {
	store := storage.NewMemoryStorage()
	tmpDir := t.TempDir()

	config := DefaultConfig()
	config.RetentionDays = 7
	config.ArchiveBeforeDelete = true
	config.ArchivePath = tmpDir

	pruner := NewPruner(store, config)

	ctx := context.Background()
	_ = store.Store(ctx, agedEntry("recent", 1))

	if _, err := pruner.Prune(ctx); err != nil {
		t.Fatalf("Prune() failed: %v", err)
	}

	files, _ := filepath.Glob(filepath.Join(tmpDir, "journal-*.json"))
	if len(files) != 0 {
		t.Errorf("Expected no archive files, got %d", len(files))
	}
}

// TestPruner_PruneByCount tests count-based pruning.
func TestPruner_PruneByCount(t *testing.T) {
	tests := []struct {
		name           string
		maxEntries     int64
		existingCount  int
		expectedDelete int64
	}{
		{"within limit - no deletion", 100, 50, 0},
		{"at limit - no deletion", 100, 100, 0},
		{"exceeds by 1 - delete oldest", 100, 101, 1},
		{"exceeds by many - delete oldest batch", 100, 150, 50},
		{"unlimited - no deletion", 0, 200, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStorage()
			config := DefaultConfig()
			config.RetentionDays = 0 // Disable age-based pruning
			config.MaxEntries = tt.maxEntries
			config.ArchiveBeforeDelete = false

			pruner := NewPruner(store, config)

			ctx := context.Background()
			now := time.Now()
			for i := 0; i < tt.existingCount; i++ {
				entry := &journal.Entry{
					ID:       fmt.Sprintf("entry-%04d", i),
					Time:     now.Add(time.Duration(i) * time.Second),
					App:      "firefox",
					Notifier: "log",
					Outcome:  journal.OutcomeDelivered,
				}
				if err := store.Store(ctx, entry); err != nil {
					t.Fatalf("Store() failed: %v", err)
				}
			}

			deleted, err := pruner.Prune(ctx)
			if err != nil {
				t.Fatalf("Prune() failed: %v", err)
			}
			if deleted != tt.expectedDelete {
				t.Errorf("deleted = %d, want %d", deleted, tt.expectedDelete)
			}

			remaining, err := store.Count(ctx, &journal.Query{})
			if err != nil {
				t.Fatalf("Count() failed: %v", err)
			}
			if remaining != int64(tt.existingCount)-tt.expectedDelete {
				t.Errorf("remaining = %d, want %d", remaining, int64(tt.existingCount)-tt.expectedDelete)
			}
			if tt.maxEntries > 0 && remaining > tt.maxEntries {
				t.Errorf("remaining count %d exceeds max %d", remaining, tt.maxEntries)
			}

			// Oldest entries must be the ones removed
			if tt.expectedDelete > 0 {
				results, _ := store.Query(ctx, &journal.Query{})
				for _, e := range results {
					if e.ID == "entry-0000" {
						t.Error("Oldest entry survived count-based pruning")
					}
				}
			}
		})
	}
}

// TestPruner_BothAgeAndCount tests that both pruning phases work together.
func TestPruner_BothAgeAndCount(t *testing.T) {
	store := storage.NewMemoryStorage()
	config := DefaultConfig()
	config.RetentionDays = 90
	config.MaxEntries = 80
	config.ArchiveBeforeDelete = false

	pruner := NewPruner(store, config)

	ctx := context.Background()
	now := time.Now()

	// 50 entries old enough for age-based deletion
	for i := 0; i < 50; i++ {
		_ = store.Store(ctx, agedEntry(fmt.Sprintf("old-%02d", i), 100))
	}

	// 100 recent entries; 20 over the count limit
	for i := 0; i < 100; i++ {
		entry := &journal.Entry{
			ID:       fmt.Sprintf("recent-%03d", i),
			Time:     now.Add(time.Duration(i) * time.Second),
			App:      "firefox",
			Notifier: "log",
			Outcome:  journal.OutcomeDelivered,
		}
		_ = store.Store(ctx, entry)
	}

	deleted, err := pruner.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune() failed: %v", err)
	}

	// 50 by age, then 20 by count (100 - 80)
	if deleted != 70 {
		t.Errorf("deleted = %d, want 70", deleted)
	}

	remaining, _ := store.Count(ctx, &journal.Query{})
	if remaining != 80 {
		t.Errorf("remaining = %d, want 80", remaining)
	}
}
