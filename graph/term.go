package graph

import (
	"fmt"
	"strings"

	"github.com/c360/semld/vocabulary"
)

// Kind distinguishes the kinds of RDF terms
type Kind int

const (
	// KindIRI is a named resource
	KindIRI Kind = iota
	// KindBlank is a blank node with a document-local label
	KindBlank
	// KindLiteral is a lexical value with optional datatype or language
	KindLiteral
	// KindVariable is a query variable; it never appears in stored triples
	KindVariable
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindIRI:
		return "iri"
	case KindBlank:
		return "blank"
	case KindLiteral:
		return "literal"
	case KindVariable:
		return "variable"
	default:
		return "unknown"
	}
}

// Term is an RDF term. Terms are comparable and can be used as map keys.
type Term struct {
	Kind     Kind
	Value    string
	Datatype string
	Language string
}

// IRI creates a named resource term.
func IRI(iri string) Term {
	return Term{Kind: KindIRI, Value: iri}
}

// Blank creates a blank node term. The "_:" prefix is optional.
func Blank(label string) Term {
	return Term{Kind: KindBlank, Value: strings.TrimPrefix(label, vocabulary.BlankPrefix)}
}

// Literal creates a plain string literal.
func Literal(value string) Term {
	return Term{Kind: KindLiteral, Value: value, Datatype: vocabulary.XsdString}
}

// TypedLiteral creates a literal with an explicit datatype IRI.
func TypedLiteral(value, datatype string) Term {
	return Term{Kind: KindLiteral, Value: value, Datatype: datatype}
}

// LangLiteral creates a language-tagged string literal.
func LangLiteral(value, language string) Term {
	return Term{Kind: KindLiteral, Value: value, Language: language}
}

// Var creates a query variable. A leading '?' is optional.
func Var(name string) Term {
	return Term{Kind: KindVariable, Value: strings.TrimPrefix(name, "?")}
}

// Resource creates an IRI term, or a blank node term for "_:" labels.
func Resource(id string) Term {
	if vocabulary.IsBlank(id) {
		return Blank(id)
	}
	return IRI(id)
}

// IsIRI reports whether t is a named resource.
func (t Term) IsIRI() bool { return t.Kind == KindIRI }

// IsBlank reports whether t is a blank node.
func (t Term) IsBlank() bool { return t.Kind == KindBlank }

// IsLiteral reports whether t is a literal.
func (t Term) IsLiteral() bool { return t.Kind == KindLiteral }

// IsVariable reports whether t is a query variable.
func (t Term) IsVariable() bool { return t.Kind == KindVariable }

// IsZero reports whether t is the zero Term.
func (t Term) IsZero() bool { return t == Term{} }

// String returns the identifier of a resource ("_:label" for blank nodes) or
// the lexical form of a literal.
func (t Term) String() string {
	switch t.Kind {
	case KindBlank:
		return vocabulary.BlankPrefix + t.Value
	case KindVariable:
		return "?" + t.Value
	default:
		return t.Value
	}
}

// NTriples renders the term in N-Triples syntax, mainly for logs and test output.
func (t Term) NTriples() string {
	switch t.Kind {
	case KindIRI:
		return "<" + t.Value + ">"
	case KindLiteral:
		lexical := fmt.Sprintf("%q", t.Value)
		if t.Language != "" {
			return lexical + "@" + t.Language
		}
		if t.Datatype != "" && t.Datatype != vocabulary.XsdString {
			return lexical + "^^<" + t.Datatype + ">"
		}
		return lexical
	default:
		return t.String()
	}
}

// Triple is a single RDF statement.
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// String renders the triple as an N-Triples line.
func (t Triple) String() string {
	return t.Subject.NTriples() + " " + t.Predicate.NTriples() + " " + t.Object.NTriples() + " ."
}

// Validate checks the positions of a stored triple.
func (t Triple) Validate() error {
	for _, term := range []Term{t.Subject, t.Predicate, t.Object} {
		if term.IsVariable() {
			return fmt.Errorf("%w: %s", ErrUnboundVariable, term)
		}
	}
	return t.checkPositions()
}

func (t Triple) checkPositions() error {
	if t.Subject.IsLiteral() || t.Subject.IsZero() {
		return fmt.Errorf("%w: subject %s", ErrInvalidTerm, t.Subject.NTriples())
	}
	if !(t.Predicate.IsIRI() || t.Predicate.IsVariable()) {
		return fmt.Errorf("%w: predicate %s", ErrInvalidTerm, t.Predicate.NTriples())
	}
	if t.Object.IsZero() {
		return fmt.Errorf("%w: empty object", ErrInvalidTerm)
	}
	return nil
}

// Pattern is a triple whose terms may be variables.
type Pattern Triple

// P creates a pattern.
func P(subject, predicate, object Term) Pattern {
	return Pattern{Subject: subject, Predicate: predicate, Object: object}
}

// Binding is one query result row, mapping variable names (without '?') to terms.
type Binding map[string]Term

// Graph is anything that can answer basic graph pattern queries.
type Graph interface {
	// Query returns one binding per solution of the conjunction of patterns.
	Query(patterns ...Pattern) ([]Binding, error)
}
