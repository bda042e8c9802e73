// Package config provides the configuration store of the semld mapping engine.
//
// The store recognizes two options:
//
//	blank_node_prefix_name  string ending in ':' (or nil): replaces "_:" in generated blank node labels
//	blank_id_generator      func() string (or nil): produces fresh blank node labels
//
// Setting an unrecognized key fails with an error matching errors.ErrConfig and
// errors.ErrUnknownConfigKey; an invalid value fails with errors.ErrConfig and
// errors.ErrInvalidConfigValue. Updates validate every value before applying
// any of them.
//
// # Scoped Options
//
// With applies options for the duration of a function and restores the prior
// values however the function exits:
//
//	err := config.Global().With(map[string]any{
//	    config.KeyBlankNodePrefixName: "local:",
//	}, func() error {
//	    id := config.Global().NewBlankID() // "local:N3f9c..."
//	    return nil
//	})
//
// Set returns a restore function for callers managing the scope themselves.
//
// # Files and Logging
//
// LoadFile reads a YAML file carrying the store options plus log_level and
// log_format; NewLogger builds the slog logger components receive through
// their WithLogger options.
package config
