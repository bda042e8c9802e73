// Package jsonld serializes typed nodes into JSON-LD documents.
//
// The context of every document is built from the vocabulary registry: the
// namespaces of the node's type and of every nested node's type, plus caller
// overrides. Field names whose IRI has a different local name are aliased in
// the context (first_name → http://xmlns.com/foaf/0.1/firstName) unless
// Options.ResolveKeys asks for compact IRIs as keys.
//
// Usage:
//
//	s := jsonld.NewSerializer(reg, jsonld.WithLogger(logger))
//	data, err := s.Marshal(node, jsonld.DefaultOptions())
package jsonld
