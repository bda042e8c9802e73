// Package semld maps typed records to JSON-LD documents and back.
//
// # Philosophy
//
// Records are plain Go structs or dynamic nodes. Their semantics live in a
// vocabulary registry that binds type names to class IRIs and field names to
// predicate IRIs. The same registry drives both directions:
//
//   - Serialization: a record becomes a JSON-LD document with a generated
//     "@context", "@id" and "@type", nested records inlined and cycles
//     closed with identity references.
//   - Querying: a JSON-LD document is parsed into RDF triples, subjects of a
//     class are selected with basic graph patterns, their arcs expanded into
//     nested maps and the keys renamed back to field names.
//
// # Architecture
//
//	┌─────────────────────────────────────┐
//	│        vocabulary.Registry          │  Types, classes,
//	│  (namespaces, urirefs, parents)     │  field IRIs
//	└─────────────────────────────────────┘
//	      ↓ drives                ↓ drives
//	┌──────────────────┐   ┌──────────────────────────┐
//	│ jsonld.Serializer│   │      mapper.Mapper       │
//	│  thing.Node →    │   │ JSON-LD → graph.Store →  │
//	│  JSON-LD         │   │ query → expander → Node  │
//	└──────────────────┘   └──────────────────────────┘
//	      ↑ reads                 ↑ caches
//	┌──────────────────┐   ┌──────────────────────────┐
//	│  config.Store    │   │  cache.LRU[*graph.Store] │
//	│ (blank node ids) │   │                          │
//	└──────────────────┘   └──────────────────────────┘
//
// # Packages
//
//   - vocabulary: type registry, IRI expansion and standard namespaces
//   - thing: dynamic record nodes and struct encoding/decoding
//   - jsonld: record to JSON-LD serialization
//   - graph: RDF terms, in-memory triple store and JSON-LD parsing
//   - graph/query: type scans, describes and collection walks
//   - expander: bindings to nested field maps
//   - mapper: typed and untyped queries over JSON-LD sources
//   - config: engine options, YAML configuration and logging
//   - cache: LRU cache for parsed documents
//   - metric: Prometheus metrics shared by all components
//   - errors: classified errors and sentinels
package semld
