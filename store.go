package cubestudio

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// StepRequest is an edge-triggered request to move the cursor by one.
type StepRequest struct {
	ID        uint64 `json:"id"`
	Direction int    `json:"direction"`
}

// Step is a move handed to the renderer. For Direction -1 the Move is the
// one before the cursor; the renderer applies its Inverse.
type Step struct {
	ID        uint64 `json:"id,omitempty"` // request id, 0 for continuous play
	Direction int    `json:"direction"`
	Move      Move   `json:"move"`

	gen uint64 // sequence generation the step was taken from
}

// State is a snapshot of a Store.
type State struct {
	Net           Net    `json:"net"`
	Moves         []Move `json:"moves"`
	Index         int    `json:"index"`
	Playing       bool   `json:"playing"`
	Animating     bool   `json:"animating"`
	Solving       bool   `json:"solving"`
	StepRequest   uint64 `json:"step_request"`
	StepDirection int    `json:"step_direction"`
	PendingSteps  int    `json:"pending_steps"`
	Error         string `json:"error,omitempty"`
}

// AtEnd reports whether the cursor is past the last move.
func (s State) AtEnd() bool {
	return s.Index >= len(s.Moves)
}

// Store owns the editing and playback state of one cube session. Every
// method applies completely or not at all under the store's lock, so a
// Store can be shared between a front-end and a Player.
//
// Animating is a flag, not a lock: Advance and TakeStep set it and hand a
// move out, and the caller reports back with CompleteStep once the move has
// been rendered. Nothing else starts while it is set.
type Store struct {
	cfg *config

	mu        sync.Mutex
	net       Net
	moves     []Move
	index     int
	playing   bool
	animating bool
	solving   bool
	stepID    uint64
	stepDir   int
	pending   []StepRequest
	lastErr   string
	gen       uint64 // bumped whenever the sequence is replaced

	changes  chan struct{}
	onChange func(State)
}

// NewStore creates a store holding the solved net and no moves.
func NewStore(opts ...Option) *Store {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Store{
		cfg:     cfg,
		net:     NewNet(),
		changes: make(chan struct{}, 1),
	}
}

// Changes returns a channel that receives after state changes. Signals
// coalesce; read Snapshot for the current state.
func (s *Store) Changes() <-chan struct{} {
	return s.changes
}

// SetChangeCallback sets a callback invoked with a snapshot after every
// change. It runs outside the store lock.
func (s *Store) SetChangeCallback(cb func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = cb
}

// unlockAndNotify releases the lock and signals listeners.
func (s *Store) unlockAndNotify() {
	cb := s.onChange
	var snap State
	if cb != nil {
		snap = s.snapshotLocked()
	}
	s.mu.Unlock()

	select {
	case s.changes <- struct{}{}:
	default:
	}
	if cb != nil {
		cb(snap)
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() State {
	moves := make([]Move, len(s.moves))
	copy(moves, s.moves)
	return State{
		Net:           s.net,
		Moves:         moves,
		Index:         s.index,
		Playing:       s.playing,
		Animating:     s.animating,
		Solving:       s.solving,
		StepRequest:   s.stepID,
		StepDirection: s.stepDir,
		PendingSteps:  len(s.pending),
		Error:         s.lastErr,
	}
}

// Net returns the current coloring.
func (s *Store) Net() Net {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.net
}

// Paint replaces exactly one facelet. Only the coordinates are checked;
// color counts are not validated here.
func (s *Store) Paint(f Face, index int, c Color) error {
	s.mu.Lock()
	if err := s.net.Set(f, index, c); err != nil {
		s.mu.Unlock()
		return err
	}
	s.unlockAndNotify()
	return nil
}

// SetNet replaces the whole coloring.
func (s *Store) SetNet(n Net) {
	s.mu.Lock()
	s.net = n
	s.unlockAndNotify()
}

// LoadSolution parses a move string and replaces the sequence with it. The
// cursor goes back to 0, playback stops and pending step requests are
// dropped. On a parse error, or with ErrSolving while a solve is out,
// nothing changes.
func (s *Store) LoadSolution(moveString string) error {
	moves, err := ParseMoves(moveString)
	if err != nil {
		return err
	}
	return s.SetMoves(moves)
}

// SetMoves replaces the sequence; see LoadSolution. A move in flight is
// abandoned and a Player completing it finds it superseded.
func (s *Store) SetMoves(moves []Move) error {
	s.mu.Lock()
	if s.solving {
		s.mu.Unlock()
		return ErrSolving
	}
	s.moves = append([]Move(nil), moves...)
	s.index = 0
	s.playing = false
	s.animating = false
	s.stepDir = 0
	s.pending = nil
	s.gen++
	s.unlockAndNotify()
	return nil
}

// Play starts continuous playback. It has no effect when there are no moves
// or the cursor is already at the end.
func (s *Store) Play() bool {
	s.mu.Lock()
	if s.playing || len(s.moves) == 0 || s.index >= len(s.moves) {
		s.mu.Unlock()
		return false
	}
	s.playing = true
	s.unlockAndNotify()
	return true
}

// Pause stops continuous playback. A move in flight still completes.
func (s *Store) Pause() bool {
	s.mu.Lock()
	if !s.playing {
		s.mu.Unlock()
		return false
	}
	s.playing = false
	s.unlockAndNotify()
	return true
}

// Advance hands out the move at the cursor and marks it in flight. It does
// nothing while a move is in flight. At the end of the sequence it pauses
// playback and returns false.
func (s *Store) Advance() (Move, bool) {
	step, ok := s.advance()
	return step.Move, ok
}

func (s *Store) advance() (Step, bool) {
	s.mu.Lock()
	if s.animating {
		s.mu.Unlock()
		return Step{}, false
	}
	if s.index >= len(s.moves) {
		if !s.playing {
			s.mu.Unlock()
			return Step{}, false
		}
		s.playing = false
		s.unlockAndNotify()
		return Step{}, false
	}
	step := Step{Direction: 1, Move: s.moves[s.index], gen: s.gen}
	s.animating = true
	s.unlockAndNotify()
	return step, true
}

// RequestStep queues a request to move the cursor one step forward (+1) or
// back (-1) and returns its id. Each request yields at most one step.
func (s *Store) RequestStep(direction int) (uint64, error) {
	if direction != 1 && direction != -1 {
		return 0, fmt.Errorf("%w: direction %d", ErrCursorBounds, direction)
	}
	s.mu.Lock()
	s.stepID++
	s.stepDir = direction
	id := s.stepID
	s.pending = append(s.pending, StepRequest{ID: id, Direction: direction})
	s.unlockAndNotify()
	return id, nil
}

// TakeStep consumes pending step requests while the store is idle and
// returns the first one that can be applied, marking it in flight. Requests
// that would leave the sequence are consumed without a step.
func (s *Store) TakeStep() (Step, bool) {
	s.mu.Lock()
	if s.animating || len(s.pending) == 0 {
		s.mu.Unlock()
		return Step{}, false
	}

	for len(s.pending) > 0 {
		req := s.pending[0]
		s.pending = s.pending[1:]

		switch req.Direction {
		case 1:
			if s.index < len(s.moves) {
				s.animating = true
				step := Step{ID: req.ID, Direction: 1, Move: s.moves[s.index], gen: s.gen}
				s.unlockAndNotify()
				return step, true
			}
		case -1:
			if s.index > 0 {
				s.animating = true
				step := Step{ID: req.ID, Direction: -1, Move: s.moves[s.index-1], gen: s.gen}
				s.unlockAndNotify()
				return step, true
			}
		}
	}

	s.unlockAndNotify()
	return Step{}, false
}

// next picks the next move for a Player: a pending step request first,
// otherwise the move at the cursor if playing.
func (s *Store) next() (Step, bool) {
	if step, ok := s.TakeStep(); ok {
		return step, true
	}

	s.mu.Lock()
	playing := s.playing
	s.mu.Unlock()
	if !playing {
		return Step{}, false
	}

	return s.advance()
}

// finish completes a step taken by next. It fails with ErrNotAnimating when
// the sequence was replaced or reset after the step was handed out.
func (s *Store) finish(step Step) error {
	s.mu.Lock()
	if !s.animating || s.solving || s.gen != step.gen {
		s.mu.Unlock()
		return ErrNotAnimating
	}
	return s.completeLocked(step.Direction)
}

// CompleteStep moves the cursor once the caller has rendered a move and
// clears Animating. +1 moves forward and needs a move in flight, otherwise
// it fails with ErrNotAnimating. -1 moves back; the caller renders the
// inverse of the move before the cursor, so it is accepted whether or not a
// move was handed out. ErrCursorBounds is returned if the cursor would
// leave the sequence and ErrSolving while a solve is out.
func (s *Store) CompleteStep(direction int) error {
	s.mu.Lock()
	if s.solving {
		s.mu.Unlock()
		return ErrSolving
	}
	if direction == 1 && !s.animating {
		s.mu.Unlock()
		return ErrNotAnimating
	}
	return s.completeLocked(direction)
}

// completeLocked must be called with the lock held; it releases it.
func (s *Store) completeLocked(direction int) error {
	next := s.index + direction
	if (direction != 1 && direction != -1) || next < 0 || next > len(s.moves) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %d%+d of %d", ErrCursorBounds, s.index, direction, len(s.moves))
	}

	s.index = next
	s.animating = false
	s.unlockAndNotify()
	return nil
}

// Reset restores the solved net and clears the sequence, cursor, flags and
// pending requests.
func (s *Store) Reset() {
	s.mu.Lock()
	s.net = NewNet()
	s.moves = nil
	s.index = 0
	s.playing = false
	s.animating = false
	s.solving = false
	s.stepDir = 0
	s.pending = nil
	s.lastErr = ""
	s.gen++
	s.unlockAndNotify()
}

// ClearError drops the last reported error.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.lastErr = ""
	s.unlockAndNotify()
}

// Solve encodes the current net, optionally validates it, asks the solver
// for moves and loads them. While the request runs the store is marked
// solving and animating so no move starts.
//
// On failure the flags are cleared, the message is kept in State.Error and
// the move sequence is left as it was. The sequence cannot be replaced
// while the request is out. A Reset during the request discards its result
// and Solve returns ErrSolveSuperseded.
func (s *Store) Solve(ctx context.Context) error {
	s.mu.Lock()
	if s.solving {
		s.mu.Unlock()
		return ErrSolving
	}
	if s.animating {
		s.mu.Unlock()
		return ErrAnimating
	}
	if s.cfg.solver == nil {
		s.mu.Unlock()
		return ErrNoSolver
	}

	state, err := Encode(s.net)
	if err == nil && s.cfg.validateBeforeSolve {
		err = Validate(s.net)
	}
	if err != nil {
		s.lastErr = err.Error()
		s.unlockAndNotify()
		return err
	}

	s.solving = true
	s.animating = true
	s.lastErr = ""
	gen := s.gen
	s.unlockAndNotify()

	logger := s.cfg.logger
	logger.Debug("solve requested", "state", state)
	started := time.Now()

	answer, err := s.cfg.solver.Solve(ctx, state)
	var moves []Move
	if err == nil {
		moves, err = ParseMoves(answer)
	}

	s.record(ctx, SolveRecord{
		State:     state,
		Moves:     answer,
		Error:     errString(err),
		StartedAt: started,
		Duration:  time.Since(started),
	})

	s.mu.Lock()
	if s.gen != gen {
		// Reset cleared the flags; a newer solve may own them now.
		s.mu.Unlock()
		logger.Debug("solve result discarded", "reason", "reset")
		return ErrSolveSuperseded
	}
	s.solving = false
	s.animating = false
	if err != nil {
		s.lastErr = err.Error()
		s.unlockAndNotify()
		logger.Warn("solve failed", "err", err)
		return err
	}
	s.moves = moves
	s.index = 0
	s.playing = false
	s.stepDir = 0
	s.pending = nil
	s.gen++
	s.unlockAndNotify()

	logger.Info("solution loaded", "moves", len(moves), "took", time.Since(started))
	return nil
}

func (s *Store) record(ctx context.Context, rec SolveRecord) {
	if s.cfg.recorder == nil {
		return
	}
	if err := s.cfg.recorder.RecordSolve(ctx, rec); err != nil {
		s.cfg.logger.Warn("could not record solve", "err", err)
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
