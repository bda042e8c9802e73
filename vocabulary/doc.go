// Package vocabulary provides the URI registry of the semld mapping engine.
//
// # Registry
//
// A Registry maps each application type to the namespaces it uses and to the
// compact IRIs of its fields and of the type itself:
//
//	reg := vocabulary.NewRegistry()
//	err := reg.Register("Person",
//	    vocabulary.WithNamespace("foaf", "http://xmlns.com/foaf/0.1/"),
//	    vocabulary.WithNamespace("prov", "http://www.w3.org/ns/prov#"),
//	    vocabulary.WithClass("prov:Person"),
//	    vocabulary.WithURIRef("first_name", "foaf:firstName"),
//	    vocabulary.WithURIRef("last_name", "foaf:lastName"))
//
// Every type inherits from another registered type, RootType ("Thing",
// owl:Thing with the rdfs:label field) by default. Reads merge the whole
// parent chain, own declarations winning:
//
//	reg.Register("Student", vocabulary.WithParent("Person"),
//	    vocabulary.WithURIRef("first_name", "schema:givenName"))
//
//	reg.URIRefs("Student")["first_name"]  // "schema:givenName"
//	reg.URIRefs("Student")["label"]       // "rdfs:label" (from Thing)
//
// Unknown types are not an error for reads; they yield empty maps.
//
// The registry is an explicit object: serializers, expanders and mappers take
// it as a dependency rather than consulting package state. Reads are
// concurrent; writes (Register, SetNamespace, SetURIRef, Reset) take the
// write lock.
//
// # IRI Helpers
//
//	Expand("foaf:firstName", ns)             // full IRI, or input unchanged if prefix unknown
//	Split("http://ex.org/a#b")               // "http://ex.org/a#", "b"
//	Split("http://ex.org/a/b")               // "http://ex.org/a/", "b"
//	Split("foaf:firstName")                  // "foaf", "firstName"
//	Compact("http://xmlns.com/foaf/0.1/name", ns)  // "foaf:name"
//
// standards.go holds the handful of RDF, RDFS and OWL terms the engine itself
// relies on (rdf:type, rdf:first, rdf:rest, rdf:nil, owl:Thing, rdfs:label).
package vocabulary
