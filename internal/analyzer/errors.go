package analyzer

import "fmt"

// MalformedInputError reports a serialized request that cannot be analyzed,
// such as a batch payload that is not a JSON array of file objects.
type MalformedInputError struct {
	Reason string
	Err    error
}

// Error implements the error interface
func (e *MalformedInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed input: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed input: %s", e.Reason)
}

// Unwrap returns the underlying decoding or validation error
func (e *MalformedInputError) Unwrap() error {
	return e.Err
}
