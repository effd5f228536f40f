package goals

import "fmt"

// ValidationError reports an invalid goal definition.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid goal %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an operation on an unknown goal id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("goal %q not found", e.ID)
}
