// Package fsm validates copy control changes with looplab/fsm.
package fsm

import (
	"context"
	"errors"

	loopfsm "github.com/looplab/fsm"

	"github.com/neomorfeo/serialgen/internal/domain"
)

var _ domain.TransitionValidator = (*Validator)(nil)

// copyEvents is domain.Transitions in looplab/fsm form. Entries sharing an
// event name stay separate; the library keys transitions by (event, src).
var copyEvents = func() loopfsm.Events {
	out := make(loopfsm.Events, 0, len(domain.Transitions))
	for _, t := range domain.Transitions {
		out = append(out, loopfsm.EventDesc{
			Name: string(t.Event),
			Src:  []string{string(t.Src)},
			Dst:  string(t.Dst),
		})
	}
	return out
}()

// Validator answers whether a widget event moves the copy control.
// The widget owns the state; each Apply starts a throwaway machine there.
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// Apply returns the state after event. Events that leave the control where
// it is, including a second generate, yield a *domain.TransitionError.
func (v *Validator) Apply(ctx context.Context, current domain.CopyState, event domain.Event) (domain.CopyState, error) {
	machine := loopfsm.NewFSM(string(current), copyEvents, nil)

	err := machine.Event(ctx, string(event))
	if err == nil {
		return domain.CopyState(machine.Current()), nil
	}

	if isRejection(err) {
		return "", &domain.TransitionError{Event: event, Current: current}
	}
	return "", err
}

func isRejection(err error) bool {
	var (
		invalid      loopfsm.InvalidEventError
		unknown      loopfsm.UnknownEventError
		noTransition loopfsm.NoTransitionError
	)
	return errors.As(err, &invalid) || errors.As(err, &unknown) || errors.As(err, &noTransition)
}
