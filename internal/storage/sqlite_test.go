package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tilequest/internal/trace"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "trace.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestRecorderSavesEvents(t *testing.T) {
	store := openTestStore(t)

	rec, err := store.BeginRun("town")
	if err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}
	if _, err := uuid.Parse(rec.RunID()); err != nil {
		t.Errorf("RunID() = %q is not a UUID: %v", rec.RunID(), err)
	}

	events := []trace.Event{
		{Frame: 1, Kind: "enter", Source: "player", Detail: "idleRight"},
		{Frame: 5, Kind: "pause", Source: "session"},
		{Frame: 9, Kind: "resume", Source: "session"},
	}
	for _, ev := range events {
		if err := rec.Record(ev); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}

	got, err := store.RunEvents(rec.RunID(), 0)
	if err != nil {
		t.Fatalf("RunEvents() failed: %v", err)
	}
	if len(got) != len(events) {
		t.Fatalf("got %d events, expected %d", len(got), len(events))
	}
	for i, ev := range events {
		if got[i].Frame != ev.Frame || got[i].Kind != ev.Kind || got[i].Source != ev.Source || got[i].Detail != ev.Detail {
			t.Errorf("event %d = %+v, expected %+v", i, got[i], ev)
		}
	}

	limited, _ := store.RunEvents(rec.RunID(), 2)
	if len(limited) != 2 || limited[1].Kind != "pause" {
		t.Errorf("limited events = %+v", limited)
	}

	n, err := store.CountEvents(rec.RunID())
	if err != nil || n != 3 {
		t.Errorf("CountEvents() = %d, %v; expected 3", n, err)
	}
}

func TestRunsSummary(t *testing.T) {
	store := openTestStore(t)

	latest, err := store.LatestRun()
	if err != nil || latest != "" {
		t.Errorf("LatestRun() on empty store = %q, %v", latest, err)
	}

	first, _ := store.BeginRun("town")
	first.Record(trace.Event{Frame: 3, Kind: "enter", Source: "player"})
	first.Record(trace.Event{Frame: 7, Kind: "exit", Source: "player"})
	second, _ := store.BeginRun("town")

	runs, err := store.Runs(10)
	if err != nil {
		t.Fatalf("Runs() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, expected 2", len(runs))
	}
	if runs[0].RunID != second.RunID() {
		t.Errorf("newest run should come first")
	}
	if runs[1].Events != 2 || runs[1].LastFrame != 7 || runs[1].SceneID != "town" {
		t.Errorf("first run summary = %+v", runs[1])
	}
	if runs[0].Events != 0 {
		t.Errorf("empty run has %d events", runs[0].Events)
	}

	latest, _ = store.LatestRun()
	if latest != second.RunID() {
		t.Errorf("LatestRun() = %q, expected %q", latest, second.RunID())
	}

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	runs, _ = store.Runs(10)
	if len(runs) != 0 {
		t.Errorf("got %d runs after clear", len(runs))
	}
}

func TestRecorderAsTraceSink(t *testing.T) {
	store := openTestStore(t)
	rec, _ := store.BeginRun("town")

	trace.ClearSinks()
	trace.AddSink(rec)
	trace.Enable(nil)
	t.Cleanup(func() {
		trace.Disable()
		trace.ClearSinks()
	})

	trace.SetFrame(42)
	trace.Emit("dialog", "session", "show")

	got, _ := store.RunEvents(rec.RunID(), 0)
	if len(got) != 1 || got[0].Frame != 42 || got[0].Kind != "dialog" {
		t.Errorf("stored events = %+v", got)
	}
}

func TestSaveEventKeepsEventTime(t *testing.T) {
	store := openTestStore(t)

	rec, err := store.BeginRun("town")
	if err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}

	at := time.Date(2024, time.March, 1, 12, 30, 45, 0, time.UTC)
	if err := rec.Record(trace.Event{Frame: 3, Kind: "trigger", Source: "tilemap", At: at}); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	got, err := store.RunEvents(rec.RunID(), 0)
	if err != nil || len(got) != 1 {
		t.Fatalf("RunEvents() = %+v, %v", got, err)
	}
	if !got[0].CreatedAt.Equal(at) {
		t.Errorf("CreatedAt = %v, expected %v", got[0].CreatedAt, at)
	}
}
