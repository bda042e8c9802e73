package expander

import (
	"fmt"
	"log/slog"

	"github.com/c360/semld/errors"
	"github.com/c360/semld/graph"
	"github.com/c360/semld/graph/query"
	"github.com/c360/semld/metric"
	"github.com/c360/semld/vocabulary"
)

// Keys added to expanded maps
const (
	KeyID      = "id"
	KeyType    = "@type"
	KeyContext = "@context"
)

// Options controls what an expansion adds besides the subject's fields.
type Options struct {
	// AddType records rdf:type objects under "@type".
	AddType bool

	// AddContext records, per subject, a "@context" map from field key to
	// the full predicate IRI it came from.
	AddContext bool
}

// Expander turns query bindings into nested field maps by following object
// terms through the graph.
type Expander struct {
	graph   graph.Graph
	opts    Options
	logger  *slog.Logger
	metrics *metric.Metrics
}

// Option configures an Expander.
type Option func(*Expander)

// WithLogger sets the logger used for per-binding traces.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Expander) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics records expansions and broken cycles on the given core metrics.
func WithMetrics(metrics *metric.Metrics) Option {
	return func(e *Expander) {
		e.metrics = metrics
	}
}

// New creates an expander over g.
func New(g graph.Graph, opts Options, options ...Option) *Expander {
	e := &Expander{
		graph:  g,
		opts:   opts,
		logger: slog.Default(),
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

// Expansion is the result of Expand: subjects in first-seen order and the
// field map of each.
type Expansion struct {
	Subjects []string
	Fields   map[string]map[string]any
}

// Len returns the number of subjects.
func (x *Expansion) Len() int {
	if x == nil {
		return 0
	}
	return len(x.Subjects)
}

// Get returns the field map of subject.
func (x *Expansion) Get(subject string) (map[string]any, bool) {
	if x == nil {
		return nil, false
	}
	m, ok := x.Fields[subject]
	return m, ok
}

// Maps returns the field maps in subject order.
func (x *Expansion) Maps() []map[string]any {
	if x.Len() == 0 {
		return nil
	}
	out := make([]map[string]any, len(x.Subjects))
	for i, s := range x.Subjects {
		out[i] = x.Fields[s]
	}
	return out
}

// Expand groups ?id ?p ?o bindings by subject and expands every object.
//
// Objects resolve in priority order: literals become their lexical form; an
// object equal to its subject stays a plain string; typed resources become
// nested maps with an "id" key; RDF collections become ordered slices; other
// blank nodes become anonymous maps of their own arcs; anything else becomes
// its identifier string. Repeated predicates turn the value into a slice in
// binding order.
func (e *Expander) Expand(bindings []graph.Binding) (*Expansion, error) {
	out := &Expansion{Fields: make(map[string]map[string]any)}
	sets := make(map[string]*fieldSet)

	for i, b := range bindings {
		subject, okID := b[query.VarID]
		predicate, okP := b[query.VarPredicate]
		object, okO := b[query.VarObject]
		if !okID || !okP || !okO {
			return nil, errors.WrapInvalid(
				fmt.Errorf("%w: binding %d lacks ?%s ?%s ?%s", errors.ErrInvalidData, i,
					query.VarID, query.VarPredicate, query.VarObject),
				"Expander", "Expand", "binding check")
		}

		id := subject.String()
		fields, seen := sets[id]
		if !seen {
			fields = newFieldSet(make(map[string]any))
			if e.opts.AddContext {
				fields.m[KeyContext] = make(map[string]any)
			}
			sets[id] = fields
			out.Fields[id] = fields.m
			out.Subjects = append(out.Subjects, id)
		}

		e.logger.Debug("expanding binding",
			"index", i,
			"subject", id,
			"predicate", predicate.Value,
			"object", object.NTriples())

		if predicate.Value == vocabulary.RdfType {
			if e.opts.AddType {
				fields.add(KeyType, object.String())
			}
			continue
		}

		key := vocabulary.LocalName(predicate.Value)
		if e.opts.AddContext {
			fields.m[KeyContext].(map[string]any)[key] = predicate.Value
		}

		value, err := e.object(subject, object, map[graph.Term]bool{subject: true})
		if err != nil {
			return nil, errors.Wrap(err, "Expander", "Expand", "object expansion")
		}
		fields.add(key, value)
	}

	e.metrics.RecordExpansion("expand", out.Len())
	return out, nil
}

// Describe expands a single subject into a map holding its "id" and fields.
func (e *Expander) Describe(subject graph.Term) (map[string]any, error) {
	m, err := e.describe(subject, map[graph.Term]bool{})
	if err != nil {
		return nil, errors.Wrap(err, "Expander", "Describe", "subject expansion")
	}
	e.metrics.RecordExpansion("describe", 1)
	return m, nil
}

// describe expands subject with path the set of subjects being expanded
// above it.
func (e *Expander) describe(subject graph.Term, path map[graph.Term]bool) (map[string]any, error) {
	path[subject] = true
	defer delete(path, subject)

	out := map[string]any{KeyID: subject.String()}
	if err := e.arcs(subject, out, path); err != nil {
		return nil, err
	}
	return out, nil
}

// anonymous expands an untyped blank node into a map of its arcs, without "id".
func (e *Expander) anonymous(blank graph.Term, path map[graph.Term]bool) (map[string]any, error) {
	path[blank] = true
	defer delete(path, blank)

	out := make(map[string]any)
	if err := e.arcs(blank, out, path); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Expander) arcs(subject graph.Term, m map[string]any, path map[graph.Term]bool) error {
	rows, err := query.Describe(e.graph, subject)
	if err != nil {
		return err
	}
	out := newFieldSet(m)
	for _, row := range rows {
		predicate, object := row[query.VarPredicate], row[query.VarObject]
		if predicate.Value == vocabulary.RdfType {
			if e.opts.AddType {
				out.add(KeyType, object.String())
			}
			continue
		}
		value, err := e.object(subject, object, path)
		if err != nil {
			return err
		}
		out.add(vocabulary.LocalName(predicate.Value), value)
	}
	return nil
}

func (e *Expander) object(subject, object graph.Term, path map[graph.Term]bool) (any, error) {
	if object.IsLiteral() {
		return object.Value, nil
	}
	if object == subject {
		return object.String(), nil
	}
	if object.IsIRI() && object.Value == vocabulary.RdfNil {
		return []any{}, nil
	}

	typed, err := query.IsTypeInstance(e.graph, object)
	if err != nil {
		return nil, err
	}
	if typed {
		if path[object] {
			e.cycle(subject, object)
			return object.String(), nil
		}
		return e.describe(object, path)
	}

	if !object.IsBlank() {
		return object.String(), nil
	}
	if path[object] {
		e.cycle(subject, object)
		return object.String(), nil
	}

	isList, err := query.IsCollection(e.graph, object)
	if err != nil {
		return nil, err
	}
	if isList {
		return e.collection(subject, object, path)
	}
	return e.anonymous(object, path)
}

func (e *Expander) collection(subject, head graph.Term, path map[graph.Term]bool) ([]any, error) {
	members, err := query.Collection(e.graph, head)
	if err != nil {
		return nil, err
	}
	path[head] = true
	defer delete(path, head)

	items := make([]any, 0, len(members))
	for _, m := range members {
		item, err := e.object(subject, m, path)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (e *Expander) cycle(subject, object graph.Term) {
	e.logger.Debug("cycle reached, keeping reference", "subject", subject.String(), "object", object.String())
	e.metrics.RecordCycleBroken()
}

// fieldSet collects the fields of one map and how many values each received.
type fieldSet struct {
	m     map[string]any
	count map[string]int
}

func newFieldSet(m map[string]any) *fieldSet {
	return &fieldSet{m: m, count: make(map[string]int)}
}

// add stores value under key: the first value as is, a second one turns the
// entry into a two-element slice and later ones are appended. A collection
// counts as a single value.
func (fs *fieldSet) add(key string, value any) {
	fs.count[key]++
	switch fs.count[key] {
	case 1:
		fs.m[key] = value
	case 2:
		fs.m[key] = []any{fs.m[key], value}
	default:
		fs.m[key] = append(fs.m[key].([]any), value)
	}
}
