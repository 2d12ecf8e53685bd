package seeder

import "fmt"

// APIError is a non-2xx response from the target instance
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// ExternalDependencyError wraps a transport-level failure reaching the
// target instance (connection refused, timeout, bad payload).
type ExternalDependencyError struct {
	Op  string
	Err error
}

func (e *ExternalDependencyError) Error() string {
	return fmt.Sprintf("external dependency: %s: %v", e.Op, e.Err)
}

func (e *ExternalDependencyError) Unwrap() error {
	return e.Err
}
