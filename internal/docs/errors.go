package docs

import (
	"errors"
	"fmt"
)

// ErrOffsetOutOfRange indicates an operation references an index
// outside the document body.
var ErrOffsetOutOfRange = errors.New("offset out of range")

// BatchError reports a batch update that failed partway through.
// Batches dispatched before the failing one have already been applied
// and are not rolled back, so Applied tells the caller how much of the
// plan reached the document.
type BatchError struct {
	// Applied is the number of operations already applied.
	Applied int
	// Total is the number of operations in the plan.
	Total int
	// Err is the underlying API error.
	Err error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch update failed after %d of %d operations: %v", e.Applied, e.Total, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
