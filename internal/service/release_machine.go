package service

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
	"github.com/folioshelf/internal/db"
)

// EventPublish moves a release from unpublished to published.
const EventPublish statekit.EventType = "PUBLISH"

var (
	stateUnpublished = statekit.StateID(db.ReleaseStatusUnpublished)
	statePublished   = statekit.StateID(db.ReleaseStatusPublished)
)

type releaseMachineContext struct{}

// newReleaseMachine 以版本当前状态为初始状态构建状态机；published 为终态，没有出边。
func newReleaseMachine(current db.ReleaseStatus) (*statekit.Interpreter[releaseMachineContext], error) {
	machine, err := statekit.NewMachine[releaseMachineContext]("release").
		WithInitial(statekit.StateID(current)).
		State(stateUnpublished).
		On(EventPublish).Target(statePublished).
		Done().
		State(statePublished).
		Final().
		Done().
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build release state machine: %w", err)
	}

	interp := statekit.NewInterpreter(machine)
	interp.Start()
	return interp, nil
}

// nextReleaseStatus returns the status a publish moves current to, or
// ErrAlreadyPublished when current has no publish transition.
func nextReleaseStatus(current db.ReleaseStatus) (db.ReleaseStatus, error) {
	if current == "" {
		current = db.ReleaseStatusUnpublished
	}
	if current != db.ReleaseStatusUnpublished && current != db.ReleaseStatusPublished {
		return "", fmt.Errorf("%w: unknown status %q", ErrAlreadyPublished, current)
	}

	interp, err := newReleaseMachine(current)
	if err != nil {
		return "", err
	}
	if interp.Done() {
		return "", ErrAlreadyPublished
	}

	interp.Send(statekit.Event{Type: EventPublish})
	next := db.ReleaseStatus(interp.State().Value)
	if next != db.ReleaseStatusPublished {
		return "", ErrAlreadyPublished
	}
	return next, nil
}
