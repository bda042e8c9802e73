// Package expander turns RDF query bindings back into nested field maps.
//
// Given the ?id ?p ?o rows of a type scan, Expand builds one map per subject
// keyed by the local names of the predicates:
//
//	x := expander.New(store, expander.Options{AddType: true})
//	exp, err := x.Expand(rows)
//	for _, id := range exp.Subjects {
//	    fields, _ := exp.Get(id)
//	    ...
//	}
//
// Typed objects are expanded recursively into nested maps, RDF collections
// into ordered slices. Expansion keeps the set of subjects on the current path
// and emits a reached-again subject as its identifier string, so cyclic graphs
// terminate.
package expander
