// Package mapper reads JSON-LD documents back into typed records.
//
// A query parses the document into an RDF store, scans it for subjects of the
// requested type, expands their arcs into nested maps and renames the keys
// from predicate local names back to field names:
//
//	m := mapper.New(reg, mapper.WithLogger(logger))
//	people, err := m.Query("Person", mapper.FromFile("people.jsonld"), mapper.QueryOptions{})
//
//	// straight into structs, validated by their `validate` tags
//	typed, err := mapper.QueryInto[Person](m, "Person", mapper.FromString(doc), mapper.QueryOptions{})
//
// DQuery skips the registry and returns the expanded maps of any compact
// class IRI, e.g. DQuery("prov:Agent", src, map[string]any{"prov": ...}).
//
// Documents spelling the schema.org namespace with http are read as https.
//
// WithGraphCache keeps parsed stores in a cache.LRU so that repeated queries
// over the same document skip JSON-LD processing.
package mapper
