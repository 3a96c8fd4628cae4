package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SeamusWaldron/cubestudio"
)

// timeFormat has a fixed width so stored times sort as text.
const timeFormat = "2006-01-02T15:04:05.000000Z07:00"

// SolveRequest is one row of the history.
type SolveRequest struct {
	RequestID  string
	StartedAt  time.Time
	DurationMs int64
	State      string
	Moves      *string
	MoveCount  int
	Error      *string
	Solver     *string
}

// Succeeded reports whether the solver answered.
func (r SolveRequest) Succeeded() bool {
	return r.Error == nil
}

// History stores solve attempts. It implements cubestudio.SolveRecorder.
type History struct {
	db     *DB
	solver string
}

// NewHistory creates a history on db. solver names the solve boundary in
// every row it writes (for example the solver URL, or "demo").
func NewHistory(db *DB, solver string) *History {
	return &History{db: db, solver: solver}
}

// RecordSolve inserts one attempt.
func (h *History) RecordSolve(ctx context.Context, rec cubestudio.SolveRecord) error {
	_, err := h.Create(ctx, rec)
	return err
}

// Create inserts one attempt and returns its id.
func (h *History) Create(ctx context.Context, rec cubestudio.SolveRecord) (string, error) {
	id := uuid.New().String()
	startedAt := rec.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}

	var movesPtr, errPtr, solverPtr *string
	moveCount := 0
	if rec.Error != "" {
		errPtr = &rec.Error
	} else {
		movesPtr = &rec.Moves
		moveCount = len(strings.Fields(rec.Moves))
	}
	if h.solver != "" {
		solverPtr = &h.solver
	}

	_, err := h.db.ExecContext(ctx, `
		INSERT INTO solve_requests (request_id, started_at, duration_ms, state, moves, move_count, error, solver)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, startedAt.UTC().Format(timeFormat), rec.Duration.Milliseconds(), rec.State,
		movesPtr, moveCount, errPtr, solverPtr)
	if err != nil {
		return "", fmt.Errorf("failed to record solve: %w", err)
	}

	return id, nil
}

const selectColumns = `request_id, started_at, duration_ms, state, moves, move_count, error, solver`

// Get retrieves an attempt by id. It returns nil if there is none.
func (h *History) Get(ctx context.Context, id string) (*SolveRequest, error) {
	row := h.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM solve_requests WHERE request_id = ?`, id)
	r, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get solve request: %w", err)
	}
	return r, nil
}

// List returns the most recent attempts, newest first.
func (h *History) List(ctx context.Context, limit int) ([]SolveRequest, error) {
	return h.query(ctx, `
		SELECT `+selectColumns+` FROM solve_requests
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
}

// ForState returns every attempt made for one state string, newest first.
func (h *History) ForState(ctx context.Context, state string) ([]SolveRequest, error) {
	return h.query(ctx, `
		SELECT `+selectColumns+` FROM solve_requests
		WHERE state = ?
		ORDER BY started_at DESC
	`, state)
}

// Stats summarizes the history.
type Stats struct {
	Total         int
	Failed        int
	AvgDurationMs float64
	AvgMoveCount  float64
}

// Stats returns totals over every attempt.
func (h *History) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := h.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN error IS NOT NULL THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(duration_ms), 0),
			COALESCE(AVG(CASE WHEN error IS NULL THEN move_count END), 0)
		FROM solve_requests
	`).Scan(&s.Total, &s.Failed, &s.AvgDurationMs, &s.AvgMoveCount)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to get stats: %w", err)
	}
	return s, nil
}

// Prune deletes attempts older than cutoff and returns how many went.
func (h *History) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := h.db.ExecContext(ctx, "DELETE FROM solve_requests WHERE started_at < ?",
		cutoff.UTC().Format(timeFormat))
	if err != nil {
		return 0, fmt.Errorf("failed to prune history: %w", err)
	}
	return res.RowsAffected()
}

func (h *History) query(ctx context.Context, q string, args ...any) ([]SolveRequest, error) {
	rows, err := h.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list solve requests: %w", err)
	}
	defer rows.Close()

	var out []SolveRequest
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan solve request: %w", err)
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRequest(s scanner) (*SolveRequest, error) {
	var r SolveRequest
	var startedAtStr string
	err := s.Scan(&r.RequestID, &startedAtStr, &r.DurationMs, &r.State,
		&r.Moves, &r.MoveCount, &r.Error, &r.Solver)
	if err != nil {
		return nil, err
	}
	r.StartedAt, _ = time.Parse(timeFormat, startedAtStr)
	return &r, nil
}
