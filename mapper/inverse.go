package mapper

import (
	"sort"
	"strings"

	"github.com/c360/semld/vocabulary"
)

// InverseURIRefs maps the local names of a type's field IRIs back to the
// field names: foaf:firstName gives {"firstName": "first_name"}. Class
// entries are not included.
//
// Local names are taken from the expanded IRI, the form predicates have after
// parsing, so urn: and other non-hierarchical namespaces split the same way
// on both sides.
//
// When two fields share a local name the first field in sorted order wins;
// the shared local names are returned as conflicts.
func InverseURIRefs(reg *vocabulary.Registry, typeName string) (inverse map[string]string, conflicts []string) {
	refs := reg.FieldURIRefs(typeName)
	namespaces := reg.Namespaces(typeName)

	fields := make([]string, 0, len(refs))
	for field := range refs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	inverse = make(map[string]string, len(fields))
	for _, field := range fields {
		local := vocabulary.LocalName(vocabulary.Expand(refs[field], namespaces))
		if _, taken := inverse[local]; taken {
			conflicts = append(conflicts, local)
			continue
		}
		inverse[local] = field
	}
	return inverse, conflicts
}

// Rename applies inverse to the keys of an expanded map. Unknown keys are
// kept under their own name, "id" and keyword keys are kept as they are.
// Nested maps that carry a "@type" of a registered type are renamed with
// that type's inverse map; other nested maps keep their keys.
func Rename(reg *vocabulary.Registry, expanded map[string]any, inverse map[string]string) map[string]any {
	out := make(map[string]any, len(expanded))
	for k, v := range expanded {
		name := k
		if k != "id" && !strings.HasPrefix(k, "@") {
			if field, ok := inverse[k]; ok {
				name = field
			}
		}
		out[name] = renameValue(reg, v)
	}
	return out
}

func renameValue(reg *vocabulary.Registry, v any) any {
	switch tv := v.(type) {
	case map[string]any:
		if typeName, ok := nestedType(reg, tv); ok {
			inverse, _ := InverseURIRefs(reg, typeName)
			return Rename(reg, tv, inverse)
		}
		return Rename(reg, tv, nil)
	case []any:
		out := make([]any, len(tv))
		for i, item := range tv {
			out[i] = renameValue(reg, item)
		}
		return out
	default:
		return v
	}
}

// nestedType resolves the registered type of an expanded map from its
// "@type" entry. With several types the first registered one wins.
func nestedType(reg *vocabulary.Registry, m map[string]any) (string, bool) {
	switch t := m["@type"].(type) {
	case string:
		return reg.TypeByIRI(t)
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok {
				if name, ok := reg.TypeByIRI(s); ok {
					return name, true
				}
			}
		}
	}
	return "", false
}
