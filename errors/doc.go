// Package errors provides standardized error handling patterns for semld components.
//
// # Overview
//
// The errors package implements a three-class error classification system:
// Transient (temporary, retryable), Invalid (bad input, non-retryable), and
// Fatal (unrecoverable). The mapping engine itself performs no I/O beyond
// reading a source file, so almost everything it returns is Invalid.
//
// # Sentinel Errors
//
// Callers test for the engine's failure kinds with errors.Is:
//
//	ErrParse        // the document is malformed or the JSON-LD processor rejected it
//	ErrConfig       // unknown configuration key or invalid value
//	ErrContextType  // a context argument is not a mapping
//	ErrValidation   // the typed-construction layer rejected field values
//	ErrUnknownType  // a type name is not present in the URI registry
//
// ErrConfig is always joined with ErrUnknownConfigKey or ErrInvalidConfigValue
// so that both the kind and the cause are visible:
//
//	if errors.Is(err, errors.ErrConfig) && errors.Is(err, errors.ErrUnknownConfigKey) {
//	    // a typo in a config key
//	}
//
// An empty query result is not an error.
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: %w"
//
// Three wrapper functions provide classification-aware wrapping:
//
//	errors.WrapTransient(err, "Component", "Method", "action")  // For retryable errors
//	errors.WrapInvalid(err, "Component", "Method", "action")    // For validation errors
//	errors.WrapFatal(err, "Component", "Method", "action")      // For unrecoverable errors
//
// The generic Wrap() function keeps the classification of the wrapped error:
//
//	errors.Wrap(err, "Serializer", "Document", "context normalization")
//
// Join pairs a sentinel with a detailed cause:
//
//	return errors.WrapInvalid(errors.Join(errors.ErrParse, jsonErr),
//	    "graph", "Parse", "json decoding")
package errors
