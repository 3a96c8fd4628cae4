package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/SeamusWaldron/cubestudio"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenMigrates(t *testing.T) {
	db := openTestDB(t)
	v, err := db.CurrentVersion()
	if err != nil {
		t.Fatal(err)
	}
	if v != len(migrations) {
		t.Errorf("version = %d, want %d", v, len(migrations))
	}

	// Migrating again is a no-op.
	if err := db.MigrateUp(); err != nil {
		t.Errorf("second MigrateUp: %v", err)
	}
}

func TestReopenKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "h.db")
	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	h := NewHistory(db, "demo")
	if err := h.RecordSolve(context.Background(), cubestudio.SolveRecord{State: cubestudio.SolvedState, Moves: "R"}); err != nil {
		t.Fatal(err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	rows, err := NewHistory(db, "demo").List(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Errorf("got %d rows after reopen, want 1", len(rows))
	}
}

func TestRecordAndGet(t *testing.T) {
	ctx := context.Background()
	h := NewHistory(openTestDB(t), "http://solver.local")

	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	id, err := h.Create(ctx, cubestudio.SolveRecord{
		State:     cubestudio.SolvedState,
		Moves:     cubestudio.DemoSolution,
		StartedAt: started,
		Duration:  1500 * time.Millisecond,
	})
	if err != nil {
		t.Fatal(err)
	}

	r, err := h.Get(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if r == nil {
		t.Fatal("row not found")
	}
	if !r.Succeeded() || r.Moves == nil || *r.Moves != cubestudio.DemoSolution {
		t.Errorf("row = %+v", r)
	}
	if r.MoveCount != 8 {
		t.Errorf("MoveCount = %d, want 8", r.MoveCount)
	}
	if r.DurationMs != 1500 {
		t.Errorf("DurationMs = %d", r.DurationMs)
	}
	if !r.StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v, want %v", r.StartedAt, started)
	}
	if r.Solver == nil || *r.Solver != "http://solver.local" {
		t.Errorf("Solver = %v", r.Solver)
	}

	missing, err := h.Get(ctx, "nope")
	if err != nil || missing != nil {
		t.Errorf("Get(missing) = %v, %v", missing, err)
	}
}

func TestListStatsAndPrune(t *testing.T) {
	ctx := context.Background()
	h := NewHistory(openTestDB(t), "")
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	recs := []cubestudio.SolveRecord{
		{State: cubestudio.SolvedState, Moves: "R U", StartedAt: base, Duration: 100 * time.Millisecond},
		{State: cubestudio.SolvedState, Error: "solver failed (500): boom", StartedAt: base.Add(time.Hour), Duration: 300 * time.Millisecond},
		{State: "FFF" + cubestudio.SolvedState[3:], Moves: "R U R' U'", StartedAt: base.Add(2 * time.Hour), Duration: 200 * time.Millisecond},
	}
	for _, rec := range recs {
		if err := h.RecordSolve(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	list, err := h.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("List(2) returned %d rows", len(list))
	}
	if !list[0].StartedAt.Equal(recs[2].StartedAt) {
		t.Errorf("List not newest first: %v", list[0].StartedAt)
	}
	if list[1].Succeeded() || list[1].Moves != nil {
		t.Errorf("failed attempt stored as %+v", list[1])
	}

	same, err := h.ForState(ctx, cubestudio.SolvedState)
	if err != nil {
		t.Fatal(err)
	}
	if len(same) != 2 {
		t.Errorf("ForState returned %d rows, want 2", len(same))
	}

	st, err := h.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if st.Total != 3 || st.Failed != 1 {
		t.Errorf("stats = %+v", st)
	}
	if st.AvgDurationMs != 200 {
		t.Errorf("AvgDurationMs = %v, want 200", st.AvgDurationMs)
	}
	if st.AvgMoveCount != 3 {
		t.Errorf("AvgMoveCount = %v, want 3", st.AvgMoveCount)
	}

	n, err := h.Prune(ctx, base.Add(90*time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("Prune removed %d rows, want 2", n)
	}
}

func TestHistoryAsRecorder(t *testing.T) {
	h := NewHistory(openTestDB(t), "demo")
	store := cubestudio.NewStore(
		cubestudio.WithSolver(cubestudio.DemoSolver{}),
		cubestudio.WithSolveRecorder(h),
	)
	if err := store.Solve(context.Background()); err != nil {
		t.Fatal(err)
	}

	list, err := h.List(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].State != cubestudio.SolvedState {
		t.Errorf("history = %+v", list)
	}
}
