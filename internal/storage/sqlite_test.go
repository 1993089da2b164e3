package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	id, err := store.SaveRun(Run{Seed: 1, Config: "x", Phase: "ended"}, nil)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	// Migrations must be repeatable and data must survive
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()
	if _, err := store.Run(id); err != nil {
		t.Errorf("Run() after reopen failed: %v", err)
	}
}

func TestStoreSaveAndLoadRun(t *testing.T) {
	store := openTestStore(t)

	ticks := []TickRecord{
		{Delta: 0, Input: 0},
		{Delta: 16 * time.Millisecond, Input: 1},
		{Delta: 16667 * time.Microsecond, Input: 2},
		{Delta: 33 * time.Millisecond, Input: 3},
	}
	run := Run{
		Seed:    -42,
		Preset:  "hard",
		Config:  "field:\n  lanes: 3\n",
		Score:   30,
		Phase:   "ended",
		Elapsed: 65667 * time.Microsecond,
	}

	id, err := store.SaveRun(run, ticks)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	got, err := store.Run(id)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if got.ID != id || got.Seed != run.Seed || got.Preset != run.Preset || got.Config != run.Config {
		t.Errorf("Run() = %+v, expected header of %+v", got, run)
	}
	if got.Ticks != len(ticks) {
		t.Errorf("Ticks = %d, expected %d", got.Ticks, len(ticks))
	}
	if got.Score != 30 || got.Phase != "ended" || got.Elapsed != run.Elapsed {
		t.Errorf("Run() result fields = %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	gotTicks, err := store.Ticks(id)
	if err != nil {
		t.Fatalf("Ticks() failed: %v", err)
	}
	if len(gotTicks) != len(ticks) {
		t.Fatalf("Ticks() returned %d records, expected %d", len(gotTicks), len(ticks))
	}
	for i := range ticks {
		if gotTicks[i] != ticks[i] {
			t.Errorf("tick %d = %+v, expected %+v", i, gotTicks[i], ticks[i])
		}
	}
}

func TestStoreRunNotFound(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Run(12345); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Run() = %v, expected ErrRunNotFound", err)
	}
	if err := store.DeleteRun(12345); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("DeleteRun() = %v, expected ErrRunNotFound", err)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := store.SaveRun(Run{Seed: int64(i), Config: "c", Score: i * 10, Phase: "ended"}, nil); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("RecentRuns(3) returned %d runs", len(runs))
	}
	// Newest first
	if runs[0].Seed != 4 || runs[2].Seed != 2 {
		t.Errorf("unexpected order: seeds %d, %d, %d", runs[0].Seed, runs[1].Seed, runs[2].Seed)
	}

	all, err := store.RecentRuns(0)
	if err != nil {
		t.Fatalf("RecentRuns(0) failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("RecentRuns(0) returned %d runs, expected 5", len(all))
	}
}

func TestStoreDeleteRun(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{Seed: 7, Config: "c", Phase: "ended"}, []TickRecord{{Delta: time.Millisecond}})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	if err := store.DeleteRun(id); err != nil {
		t.Fatalf("DeleteRun() failed: %v", err)
	}
	if _, err := store.Run(id); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Run() after delete = %v, expected ErrRunNotFound", err)
	}
	ticks, err := store.Ticks(id)
	if err != nil {
		t.Fatalf("Ticks() failed: %v", err)
	}
	if len(ticks) != 0 {
		t.Errorf("tick log should be gone, got %d records", len(ticks))
	}
}

func TestStoreHomeExpansion(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.lanerush/runs.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".lanerush", "runs.db")); err != nil {
		t.Errorf("database not created under HOME: %v", err)
	}
}
