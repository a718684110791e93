package workload

import "fmt"

// PreconditionError reports a violated run precondition, such as a subject
// universe too small for the requested worker and operation counts. It is
// raised before any HTTP request is made and is always fatal.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return "workload precondition violated: " + e.Reason
}

// insufficientSubjects builds the precondition error for a short subject list.
func insufficientSubjects(workers, ops, available int) *PreconditionError {
	return &PreconditionError{
		Reason: fmt.Sprintf("need %d subjects (%d workers x %d operations), have %d",
			workers*ops, workers, ops, available),
	}
}
