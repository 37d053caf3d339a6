package wizard

import (
	"fmt"

	"edureg/pkg/types"
)

// Navigator moves the current step pointer. With Gate off, any step can be
// reached regardless of completion.
type Navigator struct {
	Gate bool
}

func (n Navigator) Next(s *State) (types.StepID, error) {
	return n.Goto(s, int(s.CurrentStep())+1)
}

func (n Navigator) Prev(s *State) (types.StepID, error) {
	return n.Goto(s, int(s.CurrentStep())-1)
}

// Goto moves to step target (clamped). When gated, moving forward requires
// every step before the target to be completed. Moving back is never gated.
func (n Navigator) Goto(s *State, target int) (types.StepID, error) {
	to := clampStep(target)
	if n.Gate && to > s.CurrentStep() {
		for id := types.StepBasicInfo; id < to; id++ {
			if s.Status(id) != types.StatusCompleted {
				return s.CurrentStep(), fmt.Errorf("%w: step %d (%s)", types.ErrStepIncomplete, id, id.Title())
			}
		}
	}
	return s.SetCurrentStep(int(to)), nil
}

// CanSubmit reports whether the form may be submitted under this policy.
func (n Navigator) CanSubmit(s *State) error {
	if !n.Gate || s.IsFormComplete() {
		return nil
	}
	return types.ErrFormIncomplete
}
