package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"datawarden-hq/vigil/pkg/journal"
)

// testEntry builds a journal entry with a deterministic ID and timestamp.
// Index i places the entry i minutes after the base time.
func testEntry(i int, app, outcome string) *journal.Entry {
	base := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	return &journal.Entry{
		ID:         fmt.Sprintf("entry-%03d", i),
		Time:       base.Add(time.Duration(i) * time.Minute),
		App:        app,
		UsageBytes: uint64(i+1) << 30,
		LimitBytes: 1 << 30,
		Notifier:   "desktop",
		Outcome:    outcome,
	}
}

func TestMemoryStorage_StoreAndQuery(t *testing.T) {
	store := NewMemoryStorage()
	defer store.Close()

	ctx := context.Background()
	entry := testEntry(0, "firefox", journal.OutcomeDelivered)
	entry.Error = ""

	if err := store.Store(ctx, entry); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	results, err := store.Query(ctx, &journal.Query{})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(results))
	}

	got := results[0]
	if got.ID != entry.ID || got.App != entry.App || got.Outcome != entry.Outcome {
		t.Errorf("Entry fields mismatch: got %+v", got)
	}
	if got.UsageBytes != entry.UsageBytes || got.LimitBytes != entry.LimitBytes {
		t.Errorf("Byte counts mismatch: got usage=%d limit=%d", got.UsageBytes, got.LimitBytes)
	}
}

func TestMemoryStorage_QueryNewestFirst(t *testing.T) {
	store := NewMemoryStorage()
	defer store.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := store.Store(ctx, testEntry(i, "firefox", journal.OutcomeDelivered)); err != nil {
			t.Fatalf("Store() failed: %v", err)
		}
	}

	results, err := store.Query(ctx, &journal.Query{})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("Expected 5 entries, got %d", len(results))
	}

	for i := 1; i < len(results); i++ {
		if results[i].Time.After(results[i-1].Time) {
			t.Errorf("Entries not sorted newest first at index %d", i)
		}
	}
	if results[0].ID != "entry-004" {
		t.Errorf("Expected newest entry first, got %s", results[0].ID)
	}
}

func TestMemoryStorage_QueryFilters(t *testing.T) {
	store := NewMemoryStorage()
	defer store.Close()

	ctx := context.Background()
	_ = store.Store(ctx, testEntry(0, "firefox", journal.OutcomeDelivered))
	_ = store.Store(ctx, testEntry(1, "firefox", journal.OutcomeFailed))
	_ = store.Store(ctx, testEntry(2, "vlc", journal.OutcomeDelivered))
	_ = store.Store(ctx, testEntry(3, "vlc", journal.OutcomeFailed))

	tests := []struct {
		name  string
		query journal.Query
		want  int
	}{
		{"all", journal.Query{}, 4},
		{"by app", journal.Query{App: "firefox"}, 2},
		{"by outcome", journal.Query{Outcome: journal.OutcomeFailed}, 2},
		{"app and outcome", journal.Query{App: "vlc", Outcome: journal.OutcomeDelivered}, 1},
		{"no match", journal.Query{App: "chromium"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := store.Query(ctx, &tt.query)
			if err != nil {
				t.Fatalf("Query() failed: %v", err)
			}
			if len(results) != tt.want {
				t.Errorf("Expected %d entries, got %d", tt.want, len(results))
			}

			count, err := store.Count(ctx, &tt.query)
			if err != nil {
				t.Fatalf("Count() failed: %v", err)
			}
			if count != int64(tt.want) {
				t.Errorf("Count() = %d, want %d", count, tt.want)
			}
		})
	}
}

func TestMemoryStorage_QueryTimeRange(t *testing.T) {
	store := NewMemoryStorage()
	defer store.Close()

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		_ = store.Store(ctx, testEntry(i, "firefox", journal.OutcomeDelivered))
	}

	base := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	since := base.Add(3 * time.Minute)
	until := base.Add(6 * time.Minute)

	results, err := store.Query(ctx, &journal.Query{Since: &since, Until: &until})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}

	// Bounds are inclusive: minutes 3, 4, 5, 6
	if len(results) != 4 {
		t.Errorf("Expected 4 entries in range, got %d", len(results))
	}
}

func TestMemoryStorage_QueryPagination(t *testing.T) {
	store := NewMemoryStorage()
	defer store.Close()

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		_ = store.Store(ctx, testEntry(i, "firefox", journal.OutcomeDelivered))
	}

	page, err := store.Query(ctx, &journal.Query{Limit: 3, Offset: 2})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(page) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(page))
	}

	// Newest first: offset 2 skips entries 9 and 8
	if page[0].ID != "entry-007" {
		t.Errorf("Expected entry-007 first, got %s", page[0].ID)
	}

	empty, err := store.Query(ctx, &journal.Query{Offset: 100})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected no entries past the end, got %d", len(empty))
	}
}

func TestMemoryStorage_Delete(t *testing.T) {
	store := NewMemoryStorage()
	defer store.Close()

	ctx := context.Background()
	_ = store.Store(ctx, testEntry(0, "firefox", journal.OutcomeDelivered))
	_ = store.Store(ctx, testEntry(1, "firefox", journal.OutcomeDelivered))
	_ = store.Store(ctx, testEntry(2, "vlc", journal.OutcomeDelivered))

	deleted, err := store.Delete(ctx, &journal.Query{App: "firefox"})
	if err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("Expected 2 deleted, got %d", deleted)
	}
	if store.Size() != 1 {
		t.Errorf("Expected 1 remaining entry, got %d", store.Size())
	}

	results, _ := store.Query(ctx, &journal.Query{})
	if len(results) != 1 || results[0].App != "vlc" {
		t.Errorf("Wrong entries remain after delete: %+v", results)
	}
}

func TestMemoryStorage_CopyIsolation(t *testing.T) {
	store := NewMemoryStorage()
	defer store.Close()

	ctx := context.Background()
	entry := testEntry(0, "firefox", journal.OutcomeDelivered)
	_ = store.Store(ctx, entry)

	// Mutating the original must not affect the stored copy
	entry.App = "mutated"

	results, _ := store.Query(ctx, &journal.Query{})
	if results[0].App != "firefox" {
		t.Errorf("Stored entry was mutated: got app %s", results[0].App)
	}

	// Mutating query results must not affect storage either
	results[0].App = "mutated"
	again, _ := store.Query(ctx, &journal.Query{})
	if again[0].App != "firefox" {
		t.Errorf("Storage mutated through query result: got app %s", again[0].App)
	}
}
