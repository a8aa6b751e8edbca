package domain

import "fmt"

// ValidationError reports invalid input to a computation: missing dataset
// columns, a cutoff outside (0, 1], non-positive capital, a date absent
// from the dataset, or a non-positive price that would make the allocation
// math undefined. These abort the whole run - no partial results.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Reason
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// DataConsistencyError reports a malformed index snapshot pair during
// rebalancing, like a company classified for ADJUST or SELL whose old-date
// record is missing or duplicated.
type DataConsistencyError struct {
	Reason string
}

func (e *DataConsistencyError) Error() string {
	return "data consistency error: " + e.Reason
}

func NewDataConsistencyError(format string, args ...any) *DataConsistencyError {
	return &DataConsistencyError{Reason: fmt.Sprintf(format, args...)}
}
