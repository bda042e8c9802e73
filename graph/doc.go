// Package graph provides the RDF graph model the mapping engine queries: terms,
// triples, basic graph patterns and an in-memory store filled from JSON-LD.
//
// Terms and triples:
//
//	t := graph.Triple{
//	    Subject:   graph.IRI("http://example.org/ada"),
//	    Predicate: graph.IRI(vocabulary.RdfType),
//	    Object:    graph.IRI("http://xmlns.com/foaf/0.1/Person"),
//	}
//
// Querying with basic graph patterns:
//
//	store, err := graph.Parse(data, nil)
//	rows, err := store.Query(
//	    graph.P(graph.Var("id"), graph.IRI(vocabulary.RdfType), graph.IRI(foafPerson)),
//	    graph.P(graph.Var("id"), graph.Var("p"), graph.Var("o")),
//	)
//	for _, row := range rows {
//	    fmt.Println(row["id"], row["p"], row["o"])
//	}
//
// The store is filled by Parse, which converts JSON-LD to RDF with json-gold.
// Blank node labels are relabeled by the conversion and are only stable within
// one store.
package graph
