package postgres

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/mori/internal/models"
	"github.com/julianstephens/mori/internal/storage"
)

// TestStore_Integration tests the PostgreSQL store with a real database.
// Set POSTGRES_TEST_URL to run it, e.g.
// POSTGRES_TEST_URL="postgres://mori_user@localhost:5432/mori_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	day := "1999-12-31"
	if _, err := store.db.Exec("DELETE FROM journal_entries WHERE day = $1", day); err != nil {
		t.Fatalf("Failed to clean test day: %v", err)
	}

	now := time.Now()
	entry := models.GratitudeEntry{ID: uuid.New().String(), Day: day, Date: now, Text: "first", UpdatedAt: now}

	t.Run("AddAndGet", func(t *testing.T) {
		if err := store.AddEntry(entry); err != nil {
			t.Fatalf("AddEntry failed: %v", err)
		}
		got, err := store.GetEntryByDay(day)
		if err != nil {
			t.Fatalf("GetEntryByDay failed: %v", err)
		}
		if got.Text != "first" {
			t.Errorf("Expected text %q, got %q", "first", got.Text)
		}
	})

	t.Run("Update", func(t *testing.T) {
		entry.Text = "second"
		entry.UpdatedAt = time.Now()
		if err := store.UpdateEntry(entry); err != nil {
			t.Fatalf("UpdateEntry failed: %v", err)
		}
		got, err := store.GetEntries(day, day)
		if err != nil {
			t.Fatalf("GetEntries failed: %v", err)
		}
		if len(got) != 1 || got[0].Text != "second" {
			t.Errorf("Expected one entry with text %q, got %+v", "second", got)
		}
	})

	t.Run("DuplicateDayRejected", func(t *testing.T) {
		dup := entry
		dup.ID = uuid.New().String()
		if err := store.AddEntry(dup); err == nil {
			t.Error("Expected unique day violation")
		}
	})

	t.Run("Missing", func(t *testing.T) {
		if _, err := store.GetEntryByDay("1899-01-01"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}
