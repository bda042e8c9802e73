package mapper

import (
	"bytes"
	"log/slog"
	"os"

	"github.com/c360/semld/errors"
	"github.com/c360/semld/vocabulary"
)

// Source is where a query reads its JSON-LD document from.
type Source struct {
	data []byte
	doc  map[string]any
	path string
}

// FromBytes reads the document from raw JSON-LD bytes.
func FromBytes(data []byte) Source {
	return Source{data: data}
}

// FromString reads the document from a JSON-LD string.
func FromString(data string) Source {
	return Source{data: []byte(data)}
}

// FromFile reads the document from a file when the query runs.
func FromFile(path string) Source {
	return Source{path: path}
}

// FromMap uses an already decoded JSON-LD document.
func FromMap(doc map[string]any) Source {
	return Source{doc: doc}
}

// load returns either raw bytes or a decoded document. Byte sources get the
// http://schema.org/ namespace rewritten to https://schema.org/.
func (s Source) load(logger *slog.Logger) ([]byte, map[string]any, error) {
	switch {
	case s.doc != nil:
		return nil, s.doc, nil
	case s.path != "":
		data, err := os.ReadFile(s.path)
		if err != nil {
			return nil, nil, errors.WrapInvalid(errors.Join(errors.ErrSourceEmpty, err), "Source", "load", "file read")
		}
		return rewriteSchemaOrg(data, logger, s.path), nil, nil
	case len(bytes.TrimSpace(s.data)) > 0:
		return rewriteSchemaOrg(s.data, logger, ""), nil, nil
	default:
		return nil, nil, errors.WrapInvalid(errors.ErrSourceEmpty, "Source", "load", "source check")
	}
}

// String describes the source for logs.
func (s Source) String() string {
	switch {
	case s.doc != nil:
		return "map"
	case s.path != "":
		return "file:" + s.path
	default:
		return "bytes"
	}
}

func rewriteSchemaOrg(data []byte, logger *slog.Logger, path string) []byte {
	http := []byte(vocabulary.SchemaOrgHTTP)
	if !bytes.Contains(data, http) {
		return data
	}
	logger.Info("rewriting schema.org namespace to https",
		"from", vocabulary.SchemaOrgHTTP,
		"to", vocabulary.SchemaOrgHTTPS,
		"path", path)
	return bytes.ReplaceAll(data, http, []byte(vocabulary.SchemaOrgHTTPS))
}
