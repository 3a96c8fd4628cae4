package cubestudio

import (
	"context"
	"fmt"
)

// Solver is the solve boundary: it takes a 54-character state string and
// answers with a move string. Implementations live outside this package;
// failures should be reported as *SolveRequestError.
type Solver interface {
	Solve(ctx context.Context, state string) (string, error)
}

// SolverFunc adapts a function to the Solver interface.
type SolverFunc func(ctx context.Context, state string) (string, error)

// Solve calls f.
func (f SolverFunc) Solve(ctx context.Context, state string) (string, error) {
	return f(ctx, state)
}

// DemoSolver is the placeholder solver. It does not search: any
// well-formed state gets DemoSolution back.
type DemoSolver struct{}

// Solve rejects strings that are not 54 characters long and otherwise
// returns DemoSolution.
func (DemoSolver) Solve(ctx context.Context, state string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &SolveRequestError{Message: "request cancelled", Err: err}
	}
	if len(state) != StateLength {
		return "", &SolveRequestError{
			Message: fmt.Sprintf("invalid cube state notation: length %d", len(state)),
		}
	}
	return DemoSolution, nil
}
