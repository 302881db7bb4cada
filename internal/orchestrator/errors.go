package orchestrator

import (
	"errors"
	"fmt"
)

// NoActionableResourcesError is returned when a run that was asked to
// produce work (for example plan generation) finds nothing to act on.
type NoActionableResourcesError struct {
	StackName string
}

func (e *NoActionableResourcesError) Error() string {
	return fmt.Sprintf("stack %s has no actionable drifted resources", e.StackName)
}

// IsNoActionableResources checks whether err reports an empty action set.
func IsNoActionableResources(err error) bool {
	var e *NoActionableResourcesError
	return errors.As(err, &e)
}
