package vocabulary

// Standard Vocabulary IRIs
//
// Only the terms the mapping engine itself depends on live here. Domain
// vocabularies register their own namespaces on the Registry.
//
// References:
// - RDF 1.1: https://www.w3.org/TR/rdf11-concepts/
// - RDF Schema: https://www.w3.org/TR/rdf-schema/
// - OWL: https://www.w3.org/TR/owl2-overview/

// Namespace IRIs
const (
	RdfNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RdfsNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	OwlNamespace  = "http://www.w3.org/2002/07/owl#"
	XsdNamespace  = "http://www.w3.org/2001/XMLSchema#"
)

// RDF Standard IRIs
const (
	// RdfType links a resource to its class. Type arcs are never turned into
	// ordinary fields.
	RdfType = RdfNamespace + "type"

	// RdfFirst is the head of an RDF collection cell.
	RdfFirst = RdfNamespace + "first"

	// RdfRest links an RDF collection cell to the next cell.
	RdfRest = RdfNamespace + "rest"

	// RdfNil terminates an RDF collection.
	RdfNil = RdfNamespace + "nil"
)

// RDF Schema and OWL Standard IRIs
const (
	// RdfsLabel provides a human-readable name for a resource.
	RdfsLabel = RdfsNamespace + "label"

	// OwlThing is the class of all individuals; the root of every registered type.
	OwlThing = OwlNamespace + "Thing"
)

// XSD datatypes
const (
	XsdString   = XsdNamespace + "string"
	XsdDateTime = XsdNamespace + "dateTime"
)

// LocalPrefix is the prefix used for class names that have no registered IRI.
const LocalPrefix = "local"

// SchemaOrgHTTP and SchemaOrgHTTPS are the two spellings of the schema.org
// namespace found in the wild.
const (
	SchemaOrgHTTP  = "http://schema.org/"
	SchemaOrgHTTPS = "https://schema.org/"
)
