package wizard

import (
	"reflect"

	"edureg/pkg/types"
)

// StatusOf derives a step's completion status from its field model.
func StatusOf(m types.StepModel) types.CompletionStatus {
	if m == nil {
		return types.StatusNotStarted
	}
	if Validate(m) {
		return types.StatusCompleted
	}
	if !isDefault(reflect.ValueOf(m)) {
		return types.StatusInProgress
	}
	return types.StatusNotStarted
}
