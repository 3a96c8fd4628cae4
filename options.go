package cubestudio

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Option configures a Store.
type Option func(*config)

type config struct {
	solver              Solver
	validateBeforeSolve bool
	logger              *log.Logger
	recorder            SolveRecorder
}

func defaultConfig() *config {
	return &config{
		validateBeforeSolve: true,
		logger:              log.New(io.Discard),
	}
}

// SolveRecord describes one solve attempt, for history.
type SolveRecord struct {
	State     string
	Moves     string
	Error     string
	StartedAt time.Time
	Duration  time.Duration
}

// SolveRecorder receives every solve attempt a Store makes.
type SolveRecorder interface {
	RecordSolve(ctx context.Context, rec SolveRecord) error
}

// WithSolver sets the solve boundary used by Store.Solve.
func WithSolver(s Solver) Option {
	return func(c *config) {
		c.solver = s
	}
}

// WithValidateBeforeSolve controls whether Store.Solve runs Validate before
// calling the solver. Enabled by default; a failed check aborts the solve.
func WithValidateBeforeSolve(enabled bool) Option {
	return func(c *config) {
		c.validateBeforeSolve = enabled
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSolveRecorder records every solve attempt.
func WithSolveRecorder(r SolveRecorder) Option {
	return func(c *config) {
		c.recorder = r
	}
}
