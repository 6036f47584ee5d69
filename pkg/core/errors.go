package core

import "errors"

// Compile-time error kinds. Builders wrap these with context via fmt.Errorf
// and %w; callers match them with errors.Is.
var (
	// ErrUnsupportedOperator indicates an operator token outside the closed set.
	ErrUnsupportedOperator = errors.New("unsupported operator")

	// ErrArityMismatch indicates a wrong value count for an operator:
	// BETWEEN/NOT BETWEEN need exactly two values, IN/NOT IN a non-empty set.
	ErrArityMismatch = errors.New("operator arity mismatch")

	// ErrCrossDatabaseNesting indicates a nested statement that belongs to a
	// different logical database than its parent.
	ErrCrossDatabaseNesting = errors.New("nested statement belongs to a different database")

	// ErrInvalidGroupSpec indicates a malformed @or/@and payload.
	ErrInvalidGroupSpec = errors.New("invalid group specification")

	// ErrEmptyIdentifier indicates a blank column or table name where one is required.
	ErrEmptyIdentifier = errors.New("empty identifier")
)
