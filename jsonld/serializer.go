package jsonld

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/c360/semld/config"
	"github.com/c360/semld/errors"
	"github.com/c360/semld/metric"
	"github.com/c360/semld/thing"
	"github.com/c360/semld/vocabulary"
)

// JSON-LD keywords used in serialized documents
const (
	KeywordContext = "@context"
	KeywordID      = "@id"
	KeywordType    = "@type"
	KeywordList    = "@list"
)

// Options controls a single serialization call. Start from DefaultOptions.
type Options struct {
	// ExcludeNone drops fields whose value is nil. When false they are
	// emitted as JSON null.
	ExcludeNone bool

	// ResolveKeys emits every mapped field under its compact IRI instead of
	// aliasing the field name in the context.
	ResolveKeys bool

	// AssignBlankID gives nodes without an ID a blank node label for the
	// output. The node itself is not modified.
	AssignBlankID bool

	// Context holds caller entries merged over the generated context. It must
	// be a map[string]any or map[string]string.
	Context any
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		ExcludeNone:   true,
		AssignBlankID: true,
	}
}

// Serializer turns typed nodes into JSON-LD documents using the registry for
// namespaces and field IRIs.
type Serializer struct {
	registry *vocabulary.Registry
	config   *config.Store
	logger   *slog.Logger
	metrics  *metric.Metrics
}

// Option configures a Serializer.
type Option func(*Serializer)

// WithLogger sets the logger used for debug traces.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Serializer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records serializations on the given core metrics.
func WithMetrics(metrics *metric.Metrics) Option {
	return func(s *Serializer) {
		s.metrics = metrics
	}
}

// WithConfig sets the configuration store used for blank node labels.
// Defaults to config.Global().
func WithConfig(store *config.Store) Option {
	return func(s *Serializer) {
		if store != nil {
			s.config = store
		}
	}
}

// NewSerializer creates a serializer bound to registry.
func NewSerializer(registry *vocabulary.Registry, opts ...Option) *Serializer {
	s := &Serializer{
		registry: registry,
		config:   config.Global(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Marshal serializes node into JSON-LD bytes.
func (s *Serializer) Marshal(node *thing.Node, opts Options) ([]byte, error) {
	doc, err := s.Document(node, opts)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.WrapInvalid(errors.Join(errors.ErrInvalidData, err), "Serializer", "Marshal", "JSON encoding")
	}
	return data, nil
}

// Document serializes node into a JSON-LD document:
//
//	{"@context": {...}, "@type": "foaf:Person", "@id": "...", "first_name": "Ada"}
//
// Sequences become {"@list": [...]} so their order survives as an RDF
// collection. A node reached again while it is still being serialized is
// emitted as a {"@id": ...} reference.
func (s *Serializer) Document(node *thing.Node, opts Options) (map[string]any, error) {
	if node == nil {
		return nil, errors.WrapInvalid(errors.ErrInvalidData, "Serializer", "Document", "nil node")
	}

	overrides, err := contextOverrides(opts.Context)
	if err != nil {
		return nil, errors.WrapInvalid(err, "Serializer", "Document", "context check")
	}

	ctx := make(map[string]any)
	for prefix, iri := range s.registry.Namespaces(node.Type) {
		ctx[prefix] = iri
	}
	for k, v := range overrides {
		ctx[k] = v
	}

	st := &serialization{
		s:       s,
		opts:    opts,
		ctx:     ctx,
		ids:     make(map[*thing.Node]string),
		onPath:  make(map[*thing.Node]bool),
		emitted: make(map[*thing.Node]map[string]any),
	}

	body, err := st.node(node)
	if err != nil {
		return nil, err
	}

	doc := make(map[string]any, len(body)+1)
	doc[KeywordContext] = ctx
	for k, v := range body {
		doc[k] = v
	}

	s.logger.Debug("serialized node",
		"type", node.Type,
		"id", body[KeywordID],
		"context", ctx)
	s.metrics.RecordSerialization(node.Type)
	return doc, nil
}

func contextOverrides(c any) (map[string]any, error) {
	switch tc := c.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return tc, nil
	case map[string]string:
		out := make(map[string]any, len(tc))
		for k, v := range tc {
			out[k] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w, got %T", errors.ErrContextType, c)
	}
}

// serialization is the state of one Document call.
type serialization struct {
	s    *Serializer
	opts Options
	ctx  map[string]any

	ids     map[*thing.Node]string
	onPath  map[*thing.Node]bool
	emitted map[*thing.Node]map[string]any
}

// identity returns the output ID of n, generating a blank label once per call
// when allowed (or when force is set).
func (st *serialization) identity(n *thing.Node, force bool) string {
	if n.ID != "" {
		return n.ID
	}
	if id, ok := st.ids[n]; ok {
		return id
	}
	if !st.opts.AssignBlankID && !force {
		return ""
	}
	id := st.s.config.NewBlankID()
	st.ids[n] = id
	st.s.logger.Debug("assigned blank node label", "type", n.Type, "id", id)
	return id
}

func (st *serialization) node(n *thing.Node) (map[string]any, error) {
	if st.onPath[n] {
		id := st.identity(n, true)
		// the enclosing object was written before it needed an identity
		if out := st.emitted[n]; out != nil {
			out[KeywordID] = id
		}
		return map[string]any{KeywordID: id}, nil
	}
	st.onPath[n] = true
	defer delete(st.onPath, n)

	namespaces := st.s.registry.Namespaces(n.Type)
	for prefix, iri := range namespaces {
		if _, exists := st.ctx[prefix]; !exists {
			st.ctx[prefix] = iri
		}
	}

	out := make(map[string]any, n.Len()+2)
	st.emitted[n] = out
	if n.Type != "" {
		out[KeywordType] = st.typeIRI(n.Type)
	}
	if id := st.identity(n, false); id != "" {
		out[KeywordID] = id
	}

	for _, f := range n.Fields() {
		if f.Value == nil && st.opts.ExcludeNone {
			continue
		}
		key := st.key(n.Type, f.Name, namespaces)
		value, err := st.value(f.Value)
		if err != nil {
			return nil, errors.WrapInvalid(fmt.Errorf("field %s: %w", f.Name, err),
				"Serializer", "Document", "value conversion")
		}
		out[key] = value
	}
	return out, nil
}

func (st *serialization) typeIRI(typeName string) string {
	class := st.s.registry.ClassIRI(typeName)
	if class == typeName {
		return vocabulary.LocalPrefix + ":" + typeName
	}
	return class
}

// key resolves the document key of a field. Mapped fields whose compact IRI
// has a different local name keep their own name and get a context alias,
// unless ResolveKeys is set or the alias is already taken.
func (st *serialization) key(typeName, field string, namespaces map[string]string) string {
	compact, ok := st.s.registry.URIRef(typeName, field)
	if !ok {
		return field
	}
	if st.opts.ResolveKeys || vocabulary.LocalName(compact) == field {
		return compact
	}
	full := vocabulary.Expand(compact, namespaces)
	if existing, taken := st.ctx[field]; taken && existing != full {
		return compact
	}
	st.ctx[field] = full
	return field
}

func (st *serialization) value(v any) (any, error) {
	switch tv := v.(type) {
	case nil:
		return nil, nil
	case *thing.Node:
		if tv == nil {
			return nil, nil
		}
		return st.node(tv)
	case time.Time:
		return tv.Format(time.RFC3339Nano), nil
	case string, bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return tv, nil
	case json.Number:
		return tv, nil
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, item := range tv {
			converted, err := st.value(item)
			if err != nil {
				return nil, err
			}
			out[k] = converted
		}
		return out, nil
	case fmt.Stringer:
		return tv.String(), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		return st.value(rv.Elem().Interface())
	}
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		items := make([]any, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			item, err := st.value(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return map[string]any{KeywordList: items}, nil
	}
	return nil, fmt.Errorf("%w: %T", errors.ErrUnsupported, v)
}
