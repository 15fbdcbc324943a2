package reviewservice

import "fmt"

// QueryError wraps any failure during query execution or row mapping.
// It carries full detail for logs; callers facing clients must not render it.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: query failed: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }
