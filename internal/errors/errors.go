package errors

import "fmt"

// ValidationError reports a malformed or out-of-range input field.
// Surfaced to callers as a bad-request condition.
type ValidationError struct {
	Field    string
	ErrorMsg string
}

func (m *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %s: %s", m.Field, m.ErrorMsg)
}

// DomainError reports an input that is mathematically outside the domain of a
// transform, e.g. a non-positive order quantity fed to the power transform.
type DomainError struct {
	Field    string
	ErrorMsg string
}

func (m *DomainError) Error() string {
	return fmt.Sprintf("domain error on field %s: %s", m.Field, m.ErrorMsg)
}

// NotReadyError reports an operation invoked before the pipeline finished
// loading. Surfaced as service-unavailable.
type NotReadyError struct {
	State string
}

func (m *NotReadyError) Error() string {
	return fmt.Sprintf("prediction pipeline not ready, current state: %s", m.State)
}

// NotFoundError reports a named artifact blob missing from the store.
type NotFoundError struct {
	Name string
}

func (m *NotFoundError) Error() string {
	return fmt.Sprintf("artifact not found: %s", m.Name)
}

// CorruptArtifactError reports a blob that exists but cannot be deserialized
// into the expected structure.
type CorruptArtifactError struct {
	Name  string
	Cause error
}

func (m *CorruptArtifactError) Error() string {
	return fmt.Sprintf("artifact corrupt: %s: %v", m.Name, m.Cause)
}

func (m *CorruptArtifactError) Unwrap() error {
	return m.Cause
}
