package cubestudio

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"
)

// Animator renders one move. Animate returns once the turn is finished.
// A renderer that cannot finish (cancelled context, torn-down view) returns
// an error.
type Animator interface {
	Animate(ctx context.Context, m Move) error
}

// AnimatorFunc adapts a function to the Animator interface.
type AnimatorFunc func(ctx context.Context, m Move) error

// Animate calls f.
func (f AnimatorFunc) Animate(ctx context.Context, m Move) error {
	return f(ctx, m)
}

// Player drives a Store's playback through an Animator. It is the single
// consumer of moves: pending step requests are served first, then
// continuous play, strictly one move at a time in sequence order.
//
// The store has no way to cancel a move in flight. If the animator fails,
// Run returns the error and the store stays Animating until its owner calls
// Reset.
type Player struct {
	store    *Store
	animator Animator
	logger   *log.Logger
}

// NewPlayer creates a player for store.
func NewPlayer(store *Store, animator Animator) *Player {
	return &Player{
		store:    store,
		animator: animator,
		logger:   log.New(io.Discard),
	}
}

// SetLogger sets the player's logger.
func (p *Player) SetLogger(l *log.Logger) {
	if l != nil {
		p.logger = l
	}
}

// Run plays moves as the store asks for them until ctx is done or the
// animator fails.
func (p *Player) Run(ctx context.Context) error {
	for {
		if err := p.Drain(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.store.Changes():
		}
	}
}

// Drain plays moves until there is nothing left to do right now.
func (p *Player) Drain(ctx context.Context) error {
	for {
		played, err := p.StepOnce(ctx)
		if err != nil {
			return err
		}
		if !played {
			return nil
		}
	}
}

// StepOnce plays at most one move and reports whether it did.
func (p *Player) StepOnce(ctx context.Context) (bool, error) {
	step, ok := p.store.next()
	if !ok {
		return false, nil
	}

	m := step.Move
	if step.Direction < 0 {
		m = m.Inverse()
	}

	p.logger.Debug("animating", "move", m.Notation(), "direction", step.Direction, "request", step.ID)
	if err := p.animator.Animate(ctx, m); err != nil {
		return false, err
	}

	if err := p.store.finish(step); err != nil {
		if errors.Is(err, ErrNotAnimating) {
			// The sequence was replaced or reset while the move was out.
			p.logger.Debug("move superseded", "move", m.Notation())
			return true, nil
		}
		return false, err
	}
	return true, nil
}
