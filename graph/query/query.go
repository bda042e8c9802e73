// Package query provides the read operations the graph expander needs on top
// of a graph.Graph: type scans, subject descriptions, type-instance probes and
// RDF collection walks.
package query

import (
	"fmt"

	"github.com/c360/semld/errors"
	"github.com/c360/semld/graph"
	"github.com/c360/semld/vocabulary"
)

// Variable names used in the bindings returned by this package
const (
	VarID        = "id"
	VarPredicate = "p"
	VarObject    = "o"
)

var (
	rdfType  = graph.IRI(vocabulary.RdfType)
	rdfFirst = graph.IRI(vocabulary.RdfFirst)
	rdfRest  = graph.IRI(vocabulary.RdfRest)
	rdfNil   = graph.IRI(vocabulary.RdfNil)
)

// TypeScan returns ?id ?p ?o bindings for every arc of every subject typed
// typeIRI, type arcs included.
func TypeScan(g graph.Graph, typeIRI string) ([]graph.Binding, error) {
	if typeIRI == "" {
		return nil, errors.WrapInvalid(fmt.Errorf("%w: empty type IRI", graph.ErrInvalidPattern),
			"query", "TypeScan", "argument check")
	}
	rows, err := g.Query(
		graph.P(graph.Var(VarID), rdfType, graph.IRI(typeIRI)),
		graph.P(graph.Var(VarID), graph.Var(VarPredicate), graph.Var(VarObject)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "query", "TypeScan", "graph query")
	}
	return rows, nil
}

// TypeScanCompact is TypeScan for a compact class IRI ("foaf:Person")
// resolved against namespaces. Absolute IRIs are used as they are.
func TypeScanCompact(g graph.Graph, class string, namespaces map[string]string) ([]graph.Binding, error) {
	return TypeScan(g, vocabulary.Expand(class, namespaces))
}

// Describe returns the distinct ?p ?o bindings of one subject.
func Describe(g graph.Graph, subject graph.Term) ([]graph.Binding, error) {
	rows, err := g.Query(graph.P(subject, graph.Var(VarPredicate), graph.Var(VarObject)))
	if err != nil {
		return nil, errors.Wrap(err, "query", "Describe", "graph query")
	}
	return distinct(rows), nil
}

// IsTypeInstance reports whether term has at least one rdf:type arc.
// Literals never do.
func IsTypeInstance(g graph.Graph, term graph.Term) (bool, error) {
	if term.IsLiteral() {
		return false, nil
	}
	rows, err := g.Query(graph.P(term, rdfType, graph.Var(VarObject)))
	if err != nil {
		return false, errors.Wrap(err, "query", "IsTypeInstance", "graph query")
	}
	return len(rows) > 0, nil
}

// Types returns the rdf:type objects of term in store order.
func Types(g graph.Graph, term graph.Term) ([]graph.Term, error) {
	if term.IsLiteral() {
		return nil, nil
	}
	rows, err := g.Query(graph.P(term, rdfType, graph.Var(VarObject)))
	if err != nil {
		return nil, errors.Wrap(err, "query", "Types", "graph query")
	}
	out := make([]graph.Term, 0, len(rows))
	for _, row := range rows {
		out = append(out, row[VarObject])
	}
	return out, nil
}

// Object returns the first object of a subject/predicate pair.
func Object(g graph.Graph, subject graph.Term, predicate string) (graph.Term, bool, error) {
	if subject.IsLiteral() {
		return graph.Term{}, false, nil
	}
	rows, err := g.Query(graph.P(subject, graph.IRI(predicate), graph.Var(VarObject)))
	if err != nil {
		return graph.Term{}, false, errors.Wrap(err, "query", "Object", "graph query")
	}
	if len(rows) == 0 {
		return graph.Term{}, false, nil
	}
	return rows[0][VarObject], true, nil
}

// IsCollection reports whether term is the head of an RDF collection: a
// blank node without type arcs that has an rdf:first arc.
func IsCollection(g graph.Graph, term graph.Term) (bool, error) {
	if !term.IsBlank() {
		return false, nil
	}
	typed, err := IsTypeInstance(g, term)
	if err != nil || typed {
		return false, err
	}
	_, ok, err := Object(g, term, vocabulary.RdfFirst)
	return ok, err
}

// Collection walks the rdf:first/rdf:rest chain starting at head and returns
// the members in chain order. The walk stops at rdf:nil, at a cell without
// rdf:rest, or when a cell is reached twice.
func Collection(g graph.Graph, head graph.Term) ([]graph.Term, error) {
	var members []graph.Term
	seen := make(map[graph.Term]bool)
	for cur := head; cur != rdfNil && !seen[cur]; {
		seen[cur] = true
		first, ok, err := Object(g, cur, vocabulary.RdfFirst)
		if err != nil {
			return nil, err
		}
		if ok {
			members = append(members, first)
		}
		next, ok, err := Object(g, cur, vocabulary.RdfRest)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		cur = next
	}
	return members, nil
}

func distinct(rows []graph.Binding) []graph.Binding {
	if len(rows) < 2 {
		return rows
	}
	type key struct{ p, o graph.Term }
	seen := make(map[key]bool, len(rows))
	out := rows[:0:0]
	for _, row := range rows {
		k := key{row[VarPredicate], row[VarObject]}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, row)
	}
	return out
}
