package segment

import (
	"errors"
	"fmt"
)

// Error kinds reported by Aggregate. All are synchronous and none is fatal,
// queries fail independently of each other.
var (
	ErrInvalidBucketer = errors.New("invalid bucketer")
	ErrInvalidFilter   = errors.New("invalid filter")
	ErrEmptyDataset    = errors.New("empty dataset")

	// ErrDivisionUndefined wraps ErrEmptyDataset: a scalar query demanded a
	// ratio and the filtered dataset had no rows to divide by.
	ErrDivisionUndefined = fmt.Errorf("division undefined: %w", ErrEmptyDataset)
)
