package inspections

import "fmt"

// InvalidFilterError indicates a user-supplied filter value that cannot be
// parsed (bad calendar date). Surfaced as a 4xx.
type InvalidFilterError struct {
	Field string
	Value string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid filter %s: %q", e.Field, e.Value)
}

// InvalidPageRequest indicates pagination params outside their bounds.
type InvalidPageRequest struct {
	Field string
	Value int
}

func (e *InvalidPageRequest) Error() string {
	return fmt.Sprintf("invalid page request: %s=%d", e.Field, e.Value)
}

// QueryExecutionError wraps a row-store failure. The service never retries;
// retries, if any, belong to the store client.
type QueryExecutionError struct {
	Op  string
	Err error
}

func (e *QueryExecutionError) Error() string {
	return fmt.Sprintf("query failed (%s): %v", e.Op, e.Err)
}

func (e *QueryExecutionError) Unwrap() error { return e.Err }
