package mapper

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/c360/semld/cache"
	"github.com/c360/semld/errors"
	"github.com/c360/semld/expander"
	"github.com/c360/semld/graph"
	"github.com/c360/semld/graph/query"
	"github.com/c360/semld/metric"
	"github.com/c360/semld/thing"
	"github.com/c360/semld/vocabulary"
)

// QueryOptions controls a typed query.
type QueryOptions struct {
	// Limit caps the number of returned nodes when greater than zero.
	Limit int

	// Context holds extra JSON-LD context entries used while parsing, on
	// top of the queried type's namespaces.
	Context map[string]any
}

// Mapper reads JSON-LD documents back into typed nodes.
type Mapper struct {
	registry *vocabulary.Registry
	logger   *slog.Logger
	metrics  *metric.Metrics
	graphs   *cache.LRU[*graph.Store]
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithLogger sets the logger of the mapper and of the parser and expander it runs.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Mapper) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithMetrics records query durations, parse errors and expansions.
func WithMetrics(metrics *metric.Metrics) Option {
	return func(m *Mapper) {
		m.metrics = metrics
	}
}

// WithGraphCache keeps parsed documents in graphs, keyed by source content
// and parse context. Cached stores are shared between queries and never
// modified.
func WithGraphCache(graphs *cache.LRU[*graph.Store]) Option {
	return func(m *Mapper) {
		m.graphs = graphs
	}
}

// New creates a mapper bound to registry.
func New(registry *vocabulary.Registry, opts ...Option) *Mapper {
	m := &Mapper{
		registry: registry,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Query returns one node of typeName per subject typed with the type's class
// IRI in src, in first-seen subject order. A document without matching
// subjects yields nil and no error.
func (m *Mapper) Query(typeName string, src Source, opts QueryOptions) ([]*thing.Node, error) {
	defer m.observe("query", time.Now())

	if !m.registry.IsRegistered(typeName) {
		return nil, errors.WrapInvalid(fmt.Errorf("%w: %q", errors.ErrUnknownType, typeName),
			"Mapper", "Query", "type lookup")
	}

	context := make(map[string]any)
	for prefix, iri := range m.registry.Namespaces(typeName) {
		context[prefix] = iri
	}
	for k, v := range opts.Context {
		context[k] = v
	}

	store, err := m.parse(src, context)
	if err != nil {
		return nil, errors.Wrap(err, "Mapper", "Query", "document parse")
	}

	typeIRI := m.registry.TypeIRI(typeName)
	rows, err := query.TypeScan(store, typeIRI)
	if err != nil {
		return nil, errors.Wrap(err, "Mapper", "Query", "type scan")
	}
	m.logger.Debug("type scan finished",
		"type", typeName,
		"class", typeIRI,
		"source", src.String(),
		"bindings", len(rows))
	if len(rows) == 0 {
		return nil, nil
	}
	rows = limitSubjects(rows, opts.Limit)

	exp, err := m.expander(store, expander.Options{AddType: true}).Expand(rows)
	if err != nil {
		return nil, errors.Wrap(err, "Mapper", "Query", "expansion")
	}

	inverse := m.inverse(typeName)
	nodes := make([]*thing.Node, 0, exp.Len())
	for _, subject := range exp.Subjects {
		fields, _ := exp.Get(subject)
		renamed := Rename(m.registry, fields, inverse)
		renamed["id"] = subject
		nodes = append(nodes, m.materialize(typeName, renamed))
	}
	return nodes, nil
}

// QueryOne returns the first matching node, or nil when there is none. Only
// that subject is expanded.
func (m *Mapper) QueryOne(typeName string, src Source, opts QueryOptions) (*thing.Node, error) {
	opts.Limit = 1
	nodes, err := m.Query(typeName, src, opts)
	if err != nil || len(nodes) == 0 {
		return nil, err
	}
	return nodes[0], nil
}

// DQuery is an untyped query: it returns the expanded maps of every subject
// typed with the compact class IRI subject (e.g. "prov:Agent"), resolved
// against context. Each map carries "id", "@type" and a "@context" of the
// predicates its keys came from. A document without matching subjects
// yields nil and no error.
func (m *Mapper) DQuery(subject string, src Source, context map[string]any) ([]map[string]any, error) {
	defer m.observe("dquery", time.Now())

	store, err := m.parse(src, context)
	if err != nil {
		return nil, errors.Wrap(err, "Mapper", "DQuery", "document parse")
	}

	rows, err := query.TypeScanCompact(store, subject, vocabulary.StringNamespaces(context))
	if err != nil {
		return nil, errors.Wrap(err, "Mapper", "DQuery", "type scan")
	}
	m.logger.Debug("type scan finished", "subject", subject, "source", src.String(), "bindings", len(rows))
	if len(rows) == 0 {
		return nil, nil
	}

	exp, err := m.expander(store, expander.Options{AddType: true, AddContext: true}).Expand(rows)
	if err != nil {
		return nil, errors.Wrap(err, "Mapper", "DQuery", "expansion")
	}
	out := exp.Maps()
	for i, id := range exp.Subjects {
		out[i]["id"] = id
	}
	return out, nil
}

func (m *Mapper) parse(src Source, context map[string]any) (*graph.Store, error) {
	data, doc, err := src.load(m.logger)
	if err != nil {
		return nil, err
	}

	key, cacheable := "", false
	if m.graphs != nil {
		key, cacheable = graphKey(data, doc, context)
		if cacheable {
			if store, ok := m.graphs.Get(key); ok {
				m.logger.Debug("parsed document cache hit", "source", src.String())
				return store, nil
			}
		}
	}

	opts := []graph.ParseOption{graph.WithLogger(m.logger), graph.WithMetrics(m.metrics)}
	var store *graph.Store
	if doc != nil {
		store, err = graph.ParseDocument(doc, context, opts...)
	} else {
		store, err = graph.Parse(data, context, opts...)
	}
	if err != nil {
		return nil, err
	}

	if cacheable {
		if _, err := m.graphs.Set(key, store); err != nil {
			m.logger.Warn("parsed document not cached", "source", src.String(), "error", err)
		}
	}
	return store, nil
}

// graphKey hashes the document and its parse context. Decoded documents are
// re-encoded first; encoding/json sorts map keys, so equal maps hash alike.
func graphKey(data []byte, doc map[string]any, context map[string]any) (string, bool) {
	if doc != nil {
		encoded, err := json.Marshal(doc)
		if err != nil {
			return "", false
		}
		data = encoded
	}
	encodedContext, err := json.Marshal(context)
	if err != nil {
		return "", false
	}

	h := sha256.New()
	h.Write(data)
	h.Write([]byte{0})
	h.Write(encodedContext)
	return hex.EncodeToString(h.Sum(nil)), true
}

func (m *Mapper) expander(store *graph.Store, opts expander.Options) *expander.Expander {
	return expander.New(store, opts, expander.WithLogger(m.logger), expander.WithMetrics(m.metrics))
}

func (m *Mapper) inverse(typeName string) map[string]string {
	inverse, conflicts := InverseURIRefs(m.registry, typeName)
	for _, local := range conflicts {
		m.logger.Warn("several fields share a local name, keeping the first in sorted order",
			"type", typeName,
			"local_name", local,
			"field", inverse[local])
	}
	return inverse
}

// materialize builds the node of a renamed map, turning nested maps of
// registered types into nested nodes.
func (m *Mapper) materialize(typeName string, renamed map[string]any) *thing.Node {
	converted := make(map[string]any, len(renamed))
	for k, v := range renamed {
		converted[k] = m.materializeValue(v)
	}
	return thing.FromMap(m.registry, typeName, converted)
}

func (m *Mapper) materializeValue(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		if typeName, ok := nestedType(m.registry, tv); ok {
			return m.materialize(typeName, tv)
		}
		out := make(map[string]any, len(tv))
		for k, item := range tv {
			out[k] = m.materializeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(tv))
		for i, item := range tv {
			out[i] = m.materializeValue(item)
		}
		return out
	default:
		return v
	}
}

func (m *Mapper) observe(operation string, start time.Time) {
	m.metrics.RecordDuration(operation, time.Since(start))
}

// limitSubjects keeps the bindings of the first n distinct subjects.
func limitSubjects(rows []graph.Binding, n int) []graph.Binding {
	if n <= 0 {
		return rows
	}
	kept := make(map[graph.Term]bool, n)
	out := rows[:0:0]
	for _, row := range rows {
		id := row[query.VarID]
		if !kept[id] {
			if len(kept) == n {
				continue
			}
			kept[id] = true
		}
		out = append(out, row)
	}
	return out
}
