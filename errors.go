package hashvec

import "github.com/pkg/errors"

var (
	// ErrIndexOutOfRange signals a positional argument outside [0, Len).
	// It marks a caller logic error, not an expected runtime condition.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrKeyExists signals an operation that would have to destroy an
	// unrelated entry to proceed, e.g. renaming onto an occupied key.
	ErrKeyExists = errors.New("key already exists")

	ErrInvalidConcurrency = errors.New("invalid stream concurrency")
	ErrReducerRequired    = errors.New("reducer function is required")
)
