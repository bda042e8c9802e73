package graph

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/piprate/json-gold/ld"

	"github.com/c360/semld/errors"
	"github.com/c360/semld/metric"
)

const defaultGraph = "@default"

// ParseOption configures Parse.
type ParseOption func(*parser)

type parser struct {
	logger  *slog.Logger
	metrics *metric.Metrics
	base    string
}

// WithLogger sets the logger used for parse traces.
func WithLogger(logger *slog.Logger) ParseOption {
	return func(p *parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMetrics counts parse failures on the given core metrics.
func WithMetrics(metrics *metric.Metrics) ParseOption {
	return func(p *parser) {
		p.metrics = metrics
	}
}

// WithBase sets the base IRI relative identifiers resolve against.
func WithBase(base string) ParseOption {
	return func(p *parser) {
		p.base = base
	}
}

// Parse reads a JSON-LD document into a new Store. The optional context is
// applied as an expansion context in addition to the document's own
// "@context". Triples of named graphs are merged into the store after the
// default graph.
func Parse(data []byte, context map[string]any, opts ...ParseOption) (*Store, error) {
	p := &parser{logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		p.metrics.RecordParseError()
		return nil, errors.WrapInvalid(errors.Join(errors.ErrParse, err), "graph", "Parse", "JSON decoding")
	}
	return p.parse(doc, context)
}

// ParseDocument is Parse for an already decoded JSON-LD document.
func ParseDocument(doc any, context map[string]any, opts ...ParseOption) (*Store, error) {
	p := &parser{logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p.parse(doc, context)
}

func (p *parser) parse(doc any, context map[string]any) (*Store, error) {
	proc := ld.NewJsonLdProcessor()
	options := ld.NewJsonLdOptions(p.base)
	if len(context) > 0 {
		options.ExpandContext = context
	}

	out, err := proc.ToRDF(doc, options)
	if err != nil {
		p.metrics.RecordParseError()
		return nil, errors.WrapInvalid(errors.Join(errors.ErrParse, err), "graph", "Parse", "RDF conversion")
	}
	dataset, ok := out.(*ld.RDFDataset)
	if !ok {
		p.metrics.RecordParseError()
		return nil, errors.WrapInvalid(fmt.Errorf("%w: unexpected result %T", errors.ErrParse, out),
			"graph", "Parse", "RDF conversion")
	}

	store := NewStore()
	for _, name := range graphNames(dataset) {
		for _, quad := range dataset.Graphs[name] {
			t, ok := convertQuad(quad)
			if !ok {
				p.logger.Debug("skipping quad", "graph", name)
				continue
			}
			if err := store.Add(t); err != nil {
				return nil, errors.WrapInvalid(errors.Join(errors.ErrParse, err), "graph", "Parse", "triple insert")
			}
		}
	}

	p.logger.Debug("parsed JSON-LD document", "triples", store.Len())
	return store, nil
}

func graphNames(dataset *ld.RDFDataset) []string {
	names := make([]string, 0, len(dataset.Graphs))
	for name := range dataset.Graphs {
		if name != defaultGraph {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := dataset.Graphs[defaultGraph]; ok {
		names = append([]string{defaultGraph}, names...)
	}
	return names
}

func convertQuad(q *ld.Quad) (Triple, bool) {
	if q == nil {
		return Triple{}, false
	}
	s, ok := convertNode(q.Subject)
	if !ok {
		return Triple{}, false
	}
	pr, ok := convertNode(q.Predicate)
	if !ok {
		return Triple{}, false
	}
	o, ok := convertNode(q.Object)
	if !ok {
		return Triple{}, false
	}
	return Triple{Subject: s, Predicate: pr, Object: o}, true
}

func convertNode(n ld.Node) (Term, bool) {
	switch tn := n.(type) {
	case *ld.IRI:
		return IRI(tn.Value), true
	case *ld.BlankNode:
		return Blank(tn.Attribute), true
	case *ld.Literal:
		if tn.Language != "" {
			return LangLiteral(tn.Value, tn.Language), true
		}
		return TypedLiteral(tn.Value, tn.Datatype), true
	default:
		return Term{}, false
	}
}
