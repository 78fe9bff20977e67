package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/GreatValueCreamSoda/gossimu2/internal/comparator"
	"github.com/GreatValueCreamSoda/gossimu2/internal/history"
)

func Test_Store_InsertList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := range 3 {
		run := history.NewRun("a.mkv", "b.mkv", comparator.Summary{
			FrameCount: 100 + i,
			Mean:       80.5,
			Median:     81,
			StdDev:     2.25,
			P5:         75.125,
			P95:        85.0625,
		})
		run.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		if err := store.Insert(ctx, run); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := store.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("listed %d runs, want 2", len(runs))
	}
	if runs[0].Frames != 102 || runs[1].Frames != 101 {
		t.Fatalf("runs not newest-first: %d, %d", runs[0].Frames, runs[1].Frames)
	}

	got := runs[0]
	if got.Source != "a.mkv" || got.Distorted != "b.mkv" {
		t.Fatalf("paths = %q, %q", got.Source, got.Distorted)
	}
	if got.Mean != 80.5 || got.Median != 81 || got.StdDev != 2.25 ||
		got.P5 != 75.125 || got.P95 != 85.0625 {
		t.Fatalf("statistics did not round-trip: %+v", got)
	}
	if !got.CreatedAt.Equal(base.Add(2 * time.Hour)) {
		t.Fatalf("created at = %v", got.CreatedAt)
	}
}

func Test_Store_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	store, err := history.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	run := history.NewRun("a.y4m", "b.y4m", comparator.Summary{FrameCount: 5})
	if err := store.Insert(ctx, run); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	// Migrations are recorded, so a second open is a no-op.
	store, err = history.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	runs, err := store.List(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].ID != run.ID {
		t.Fatalf("runs after reopen = %+v", runs)
	}
}

func Test_Store_ListEmpty(t *testing.T) {
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	runs, err := store.List(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Fatalf("fresh store lists %d runs", len(runs))
	}
}

func Test_Store_DuplicateID(t *testing.T) {
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()
	run := history.NewRun("a.mkv", "b.mkv", comparator.Summary{FrameCount: 1})
	if err := store.Insert(ctx, run); err != nil {
		t.Fatal(err)
	}
	if err := store.Insert(ctx, run); err == nil {
		t.Fatal("duplicate run id must not insert")
	}
}

func Test_NewRun_StampsIdentity(t *testing.T) {
	a := history.NewRun("x.mkv", "y.mkv", comparator.Summary{})
	b := history.NewRun("x.mkv", "y.mkv", comparator.Summary{})

	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("run ids = %q, %q", a.ID, b.ID)
	}
	if a.CreatedAt.IsZero() {
		t.Fatal("created at not stamped")
	}
}
