package vector

import "errors"

// Sentinel errors for Store operations.
var (
	ErrColumnNotFound  = errors.New("vector: column not found")
	ErrLengthMismatch  = errors.New("vector: row data does not match schema")
	ErrIndexOutOfRange = errors.New("vector: index out of range")
	ErrUnknownKind     = errors.New("vector: unknown field kind")
)
