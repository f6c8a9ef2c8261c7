package sqlexec

import "fmt"

// Row maps a column name to a JSON-representable scalar.
type Row map[string]any

// Result is the normalized outcome of one statement. Statements that return
// a result set fill Rows (empty but non-nil when no row matched); statements
// without a result set fill Message with the rows-affected notice.
type Result struct {
	Rows    []Row
	Message string
}

// HasRows reports whether the statement produced a result set at all, as
// opposed to an empty one.
func (r *Result) HasRows() bool {
	return r.Rows != nil
}

// Payload returns the value serialized into the answer prompt: the row list,
// or a message object for statements without a result set.
func (r *Result) Payload() any {
	if r.HasRows() {
		return r.Rows
	}
	return map[string]string{"message": r.Message}
}

// ExecutionError wraps a connection or statement failure. The conversation
// layer stops the turn on it instead of composing an answer from nothing.
type ExecutionError struct {
	SQL string
	Err error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("execute sql: %v", e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
