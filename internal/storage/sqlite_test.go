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

func testRun(seed int64, score int) Run {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return Run{
		Seed: seed,
		Settings: RunSettings{
			GridW:       40,
			GridH:       40,
			OriginX:     10,
			OriginY:     10,
			Heading:     "right",
			TickMS:      100,
			FoodRetries: 64,
		},
		Score:     score,
		Cause:     "wall",
		Steps:     57,
		StartedAt: start,
		EndedAt:   start.Add(5700 * time.Millisecond),
		Inputs: []RunInput{
			{Step: 3, Heading: "down"},
			{Step: 3, Heading: "left"},
			{Step: 9, Heading: "up"},
		},
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file and its directory were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun(testRun(1, 3)); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	n, err := store.CountRuns()
	if err != nil {
		t.Fatalf("CountRuns() failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 run after reopen, got %d", n)
	}
}

func TestStoreSaveAndLoadRun(t *testing.T) {
	store := openTestStore(t)
	want := testRun(987654321, 12)

	id, err := store.SaveRun(want)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	got, err := store.Run(id)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if got.ID != id || got.Seed != want.Seed || got.Score != want.Score || got.Steps != want.Steps {
		t.Errorf("Run() = %+v, expected %+v", got, want)
	}
	if got.Settings != want.Settings {
		t.Errorf("Settings = %+v, expected %+v", got.Settings, want.Settings)
	}
	if got.Cause != "wall" {
		t.Errorf("Cause = %q, expected wall", got.Cause)
	}
	if !got.StartedAt.Equal(want.StartedAt) || !got.EndedAt.Equal(want.EndedAt) {
		t.Errorf("times = %v..%v, expected %v..%v", got.StartedAt, got.EndedAt, want.StartedAt, want.EndedAt)
	}

	if len(got.Inputs) != len(want.Inputs) {
		t.Fatalf("expected %d inputs, got %d", len(want.Inputs), len(got.Inputs))
	}
	for i := range want.Inputs {
		if got.Inputs[i] != want.Inputs[i] {
			t.Errorf("input %d = %+v, expected %+v", i, got.Inputs[i], want.Inputs[i])
		}
	}
}

func TestStoreRunNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Run(42)
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Run(42) error = %v, expected ErrRunNotFound", err)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		if _, err := store.SaveRun(testRun(int64(i), i*10)); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs with limit, got %d", len(runs))
	}

	// Newest first
	if runs[0].Seed != 4 || runs[1].Seed != 3 || runs[2].Seed != 2 {
		t.Errorf("runs not newest first: %d, %d, %d", runs[0].Seed, runs[1].Seed, runs[2].Seed)
	}
	if runs[0].Inputs != nil {
		t.Error("RecentRuns should not load inputs")
	}
}

func TestStoreRunWithoutInputs(t *testing.T) {
	store := openTestStore(t)
	run := testRun(5, 0)
	run.Inputs = nil

	id, err := store.SaveRun(run)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	got, err := store.Run(id)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if len(got.Inputs) != 0 {
		t.Errorf("expected no inputs, got %d", len(got.Inputs))
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(testRun(1, 1))
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	n, err := store.CountRuns()
	if err != nil {
		t.Fatalf("CountRuns() failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 runs after clear, got %d", n)
	}
	if _, err := store.Run(id); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("cleared run should be gone, got %v", err)
	}
}
