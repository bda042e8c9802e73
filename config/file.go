package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/c360/semld/errors"
)

// File is the on-disk configuration of the engine.
//
//	blank_node_prefix_name: "local:"
//	log_level: debug
//	log_format: text
//	types: [...]
type File struct {
	BlankNodePrefixName *string      `yaml:"blank_node_prefix_name"`
	LogLevel            string       `yaml:"log_level"`
	LogFormat           string       `yaml:"log_format"`
	Types               []TypeConfig `yaml:"types"`
}

// LoadFile reads and validates a YAML configuration file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.WrapInvalid(errors.Join(errors.ErrConfigNotFound, err), "config", "LoadFile", "file read")
		}
		return nil, errors.WrapTransient(err, "config", "LoadFile", "file read")
	}
	return Parse(data)
}

// Parse decodes YAML configuration. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	f := &File{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.WrapInvalid(errors.Join(errors.ErrConfig, err), "config", "Parse", "yaml decoding")
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks option values without applying them.
func (f *File) Validate() error {
	if f.BlankNodePrefixName != nil && !validators[KeyBlankNodePrefixName](*f.BlankNodePrefixName) {
		return errors.WrapInvalid(
			fmt.Errorf("%w: %w: %s must end with ':'", errors.ErrConfig, errors.ErrInvalidConfigValue, KeyBlankNodePrefixName),
			"File", "Validate", "value validation")
	}
	if _, ok := parseLevel(f.LogLevel); !ok && f.LogLevel != "" {
		return errors.WrapInvalid(
			fmt.Errorf("%w: %w: unknown log_level %q", errors.ErrConfig, errors.ErrInvalidConfigValue, f.LogLevel),
			"File", "Validate", "value validation")
	}
	switch f.LogFormat {
	case "", "json", "text":
	default:
		return errors.WrapInvalid(
			fmt.Errorf("%w: %w: unknown log_format %q", errors.ErrConfig, errors.ErrInvalidConfigValue, f.LogFormat),
			"File", "Validate", "value validation")
	}
	for i, t := range f.Types {
		if t.Name == "" {
			return errors.WrapInvalid(
				fmt.Errorf("%w: %w: types[%d] has no name", errors.ErrConfig, errors.ErrInvalidConfigValue, i),
				"File", "Validate", "type validation")
		}
	}
	return nil
}

// Apply sets the file's engine options on store. Options absent from the file
// are left untouched.
func (f *File) Apply(store *Store) (restore func(), err error) {
	values := make(map[string]any)
	if f.BlankNodePrefixName != nil {
		values[KeyBlankNodePrefixName] = *f.BlankNodePrefixName
	}
	return store.Set(values)
}

// Logger builds the logger described by the file, writing to w.
func (f *File) Logger(w io.Writer) *slog.Logger {
	return NewLogger(f.LogLevel, f.LogFormat, w)
}
