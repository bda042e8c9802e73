// Package vocabulary provides the URI registry and IRI helpers of the mapping engine.
package vocabulary

import (
	"strings"
)

// BlankPrefix is the standard label prefix of blank nodes.
const BlankPrefix = "_:"

// IsAbsolute reports whether iri carries a scheme followed by "//"
// (http://, https://, file://, ...). Compact IRIs and URNs are not absolute
// in this sense because their prefix could be a registered namespace.
func IsAbsolute(iri string) bool {
	i := strings.Index(iri, "://")
	if i <= 0 {
		return false
	}
	for _, r := range iri[:i] {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.') {
			return false
		}
	}
	return true
}

// IsBlank reports whether id is a blank node label ("_:x").
func IsBlank(id string) bool {
	return strings.HasPrefix(id, BlankPrefix)
}

// Expand resolves a compact IRI ("foaf:firstName") against namespaces.
//
// Absolute IRIs and blank node labels are returned unchanged, as is any
// compact IRI whose prefix is not in namespaces.
//
// Example:
//
//	Expand("foaf:firstName", map[string]string{"foaf": "http://xmlns.com/foaf/0.1/"})
//	// "http://xmlns.com/foaf/0.1/firstName"
func Expand(compact string, namespaces map[string]string) string {
	if compact == "" || IsAbsolute(compact) || IsBlank(compact) {
		return compact
	}
	prefix, local, ok := strings.Cut(compact, ":")
	if !ok {
		return compact
	}
	ns, found := namespaces[prefix]
	if !found || ns == "" {
		return compact
	}
	return ns + local
}

// ExpandAny is Expand for a JSON-LD context whose values may be plain strings
// or term definitions ({"@id": ...}).
func ExpandAny(compact string, context map[string]any) string {
	return Expand(compact, StringNamespaces(context))
}

// StringNamespaces extracts prefix → IRI entries from a JSON-LD context.
// Keywords ("@vocab", "@base", ...) are skipped; term definitions contribute
// their "@id".
func StringNamespaces(context map[string]any) map[string]string {
	out := make(map[string]string, len(context))
	for k, v := range context {
		if strings.HasPrefix(k, "@") {
			continue
		}
		switch tv := v.(type) {
		case string:
			out[k] = tv
		case map[string]any:
			if id, ok := tv["@id"].(string); ok {
				out[k] = id
			}
		}
	}
	return out
}

// Split separates an IRI into namespace and local name.
//
//   - Absolute IRIs split after the last '#', else after the last '/'.
//   - Compact IRIs ("prefix:local") split on the first ':'; the namespace
//     is the prefix without the colon.
//   - Anything else yields ("", iri).
//
// Examples:
//
//	Split("http://xmlns.com/foaf/0.1/firstName")  // "http://xmlns.com/foaf/0.1/", "firstName"
//	Split("http://www.w3.org/2002/07/owl#Thing")  // "http://www.w3.org/2002/07/owl#", "Thing"
//	Split("foaf:firstName")                       // "foaf", "firstName"
func Split(iri string) (namespace, local string) {
	if IsAbsolute(iri) {
		if i := strings.LastIndexByte(iri, '#'); i >= 0 {
			return iri[:i+1], iri[i+1:]
		}
		if i := strings.LastIndexByte(iri, '/'); i >= 0 {
			return iri[:i+1], iri[i+1:]
		}
		return "", iri
	}
	if IsBlank(iri) {
		return BlankPrefix, iri[len(BlankPrefix):]
	}
	if prefix, local, ok := strings.Cut(iri, ":"); ok {
		return prefix, local
	}
	return "", iri
}

// LocalName returns the local part of an IRI, see Split.
func LocalName(iri string) string {
	_, local := Split(iri)
	return local
}

// Compact turns an absolute IRI into "prefix:local" using the longest
// matching namespace. The IRI is returned unchanged when nothing matches.
func Compact(iri string, namespaces map[string]string) string {
	best, bestLen := "", 0
	for prefix, ns := range namespaces {
		if ns != "" && len(ns) > bestLen && strings.HasPrefix(iri, ns) {
			best, bestLen = prefix, len(ns)
		} else if len(ns) == bestLen && bestLen > 0 && strings.HasPrefix(iri, ns) && prefix < best {
			best = prefix
		}
	}
	if bestLen == 0 {
		return iri
	}
	return best + ":" + iri[bestLen:]
}
