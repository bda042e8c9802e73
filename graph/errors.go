package graph

import "errors"

// Sentinel errors for graph operations.
// These are wrapped with behavioral classification (Transient/Fatal/Invalid)
// when returned from the store and the parser.

// Term errors
var (
	// ErrInvalidTerm indicates a term that cannot appear in its position
	// (e.g. a literal subject or a blank predicate)
	ErrInvalidTerm = errors.New("invalid term")

	// ErrUnboundVariable indicates a variable term inside a stored triple
	ErrUnboundVariable = errors.New("variable in stored triple")
)

// Query errors
var (
	// ErrInvalidPattern indicates a malformed basic graph pattern
	ErrInvalidPattern = errors.New("invalid graph pattern")

	// ErrEmptyQuery indicates a query without any pattern
	ErrEmptyQuery = errors.New("query has no patterns")
)
