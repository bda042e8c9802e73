package config

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/c360/semld/errors"
)

// Recognized configuration keys
const (
	// KeyBlankNodePrefixName replaces the leading "_:" of generated blank node
	// labels. The value must end with ':' or be nil (unset).
	KeyBlankNodePrefixName = "blank_node_prefix_name"

	// KeyBlankIDGenerator supplies fresh blank node labels. The value must be a
	// func() string or nil (use the default generator).
	KeyBlankIDGenerator = "blank_id_generator"
)

// validators checks values of recognized keys. A key is recognized iff it has a validator.
var validators = map[string]func(any) bool{
	KeyBlankNodePrefixName: func(v any) bool {
		if v == nil {
			return true
		}
		s, ok := v.(string)
		return ok && strings.HasSuffix(s, ":")
	},
	KeyBlankIDGenerator: func(v any) bool {
		if v == nil {
			return true
		}
		fn, ok := v.(func() string)
		return ok && fn != nil
	},
}

// Keys returns the recognized configuration keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(validators))
	for k := range validators {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Store holds the engine options and provides thread-safe, validated updates.
type Store struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewStore creates a store with every option unset.
func NewStore() *Store {
	return &Store{values: defaults()}
}

func defaults() map[string]any {
	return map[string]any{
		KeyBlankNodePrefixName: nil,
		KeyBlankIDGenerator:    nil,
	}
}

var global = NewStore()

// Global returns the process-wide store used by components that were not
// given one explicitly.
func Global() *Store {
	return global
}

// Get returns the current value of a key; nil means unset.
func (s *Store) Get(key string) (any, error) {
	if _, ok := validators[key]; !ok {
		return nil, unknownKey("Get", key)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key], nil
}

// Set validates values and applies them atomically. Nothing is applied when
// any key is unknown or any value is invalid.
//
// The returned restore function puts back the values that were replaced.
func (s *Store) Set(values map[string]any) (restore func(), err error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		validate, ok := validators[k]
		if !ok {
			return nil, unknownKey("Set", k)
		}
		if !validate(values[k]) {
			return nil, errors.WrapInvalid(
				fmt.Errorf("%w: %w: %q has value %v", errors.ErrConfig, errors.ErrInvalidConfigValue, k, values[k]),
				"Store", "Set", "value validation")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old := make(map[string]any, len(values))
	for _, k := range keys {
		old[k] = s.values[k]
		s.values[k] = values[k]
	}

	return func() { s.restore(old) }, nil
}

func (s *Store) restore(old map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range old {
		s.values[k] = v
	}
}

// With applies values for the duration of fn. The previous values are restored
// when fn returns, fails, or panics.
//
// Example:
//
//	err := store.With(map[string]any{config.KeyBlankNodePrefixName: "local:"}, func() error {
//	    _, err := serializer.Marshal(node, jsonld.Options{})
//	    return err
//	})
func (s *Store) With(values map[string]any, fn func() error) error {
	restore, err := s.Set(values)
	if err != nil {
		return err
	}
	defer restore()
	return fn()
}

// Reset unsets every option.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = defaults()
}

// BlankNodePrefix returns the configured blank node prefix, or "" when unset.
func (s *Store) BlankNodePrefix() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	prefix, _ := s.values[KeyBlankNodePrefixName].(string)
	return prefix
}

// NewBlankID returns a fresh blank node label from the configured generator
// (or the default one), with the leading "_:" replaced by the configured
// prefix when one is set.
func (s *Store) NewBlankID() string {
	s.mu.RLock()
	gen, _ := s.values[KeyBlankIDGenerator].(func() string)
	prefix, _ := s.values[KeyBlankNodePrefixName].(string)
	s.mu.RUnlock()

	if gen == nil {
		gen = DefaultBlankID
	}
	id := gen()
	if prefix != "" && strings.HasPrefix(id, "_:") {
		id = prefix + id[len("_:"):]
	}
	return id
}

// DefaultBlankID generates "_:N" followed by 32 hex digits of a random UUID.
func DefaultBlankID() string {
	return "_:N" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func unknownKey(method, key string) error {
	return errors.WrapInvalid(
		fmt.Errorf("%w: %w: %q", errors.ErrConfig, errors.ErrUnknownConfigKey, key),
		"Store", method, "key lookup")
}
