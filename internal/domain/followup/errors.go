package followup

import "fmt"

// ValidationError reports an entity whose current status requires a
// timestamp that is absent. Callers exclude the entity from the evaluation
// pass and continue with the rest of the batch.
type ValidationError struct {
	EntityID string
	Kind     string
	Field    string
	Status   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s: %s is required for status %q", e.Kind, e.EntityID, e.Field, e.Status)
}

// DispatchError reports a failed write of a sent-action record back to the
// owning store. It is never treated as success: suppression derives only
// from persisted history, so the candidate stays due on the next pass.
// There is no internal retry; the caller decides.
type DispatchError struct {
	EntityKind string
	EntityID   string
	Action     string
	Err        error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch %s for %s %s: %v", e.Action, e.EntityKind, e.EntityID, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}
