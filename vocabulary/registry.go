package vocabulary

import (
	"fmt"
	"sort"
	"sync"

	"github.com/c360/semld/errors"
)

// RootType is the type every registered type descends from unless it names
// another parent. It maps to owl:Thing and declares the rdfs:label field.
const RootType = "Thing"

// typeEntry holds what a single type declared itself; inherited entries are
// merged at read time.
type typeEntry struct {
	name       string
	parent     string
	namespaces map[string]string
	urirefs    map[string]string
}

// Registry maps type names to their namespaces and field IRIs.
//
// A type's effective view is the union of its own declarations with those of
// its ancestors; own declarations win on key collision. The merge happens on
// every read, so later changes to an ancestor are visible to all subtypes.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	types map[string]*typeEntry
}

// Declaration collects the functional options of a Register call.
type Declaration struct {
	Parent     string
	Class      string
	Namespaces map[string]string
	URIRefs    map[string]string
}

// Option is a functional option for configuring type registration.
type Option func(*Declaration)

// WithParent sets the type this type inherits namespaces and URI references from.
func WithParent(parent string) Option {
	return func(d *Declaration) {
		d.Parent = parent
	}
}

// WithClass sets the compact (or absolute) class IRI of the type, e.g. "foaf:Person".
func WithClass(compact string) Option {
	return func(d *Declaration) {
		d.Class = compact
	}
}

// WithNamespace declares a prefix → namespace IRI mapping.
func WithNamespace(prefix, iri string) Option {
	return func(d *Declaration) {
		if d.Namespaces == nil {
			d.Namespaces = make(map[string]string)
		}
		d.Namespaces[prefix] = iri
	}
}

// WithNamespaces declares several prefix → namespace IRI mappings.
func WithNamespaces(namespaces map[string]string) Option {
	return func(d *Declaration) {
		for prefix, iri := range namespaces {
			WithNamespace(prefix, iri)(d)
		}
	}
}

// WithURIRef maps a field (or type) name to its compact IRI.
//
// Example:
//
//	WithURIRef("first_name", "foaf:firstName")
func WithURIRef(key, compact string) Option {
	return func(d *Declaration) {
		if d.URIRefs == nil {
			d.URIRefs = make(map[string]string)
		}
		d.URIRefs[key] = compact
	}
}

// WithURIRefs maps several field names to their compact IRIs.
func WithURIRefs(urirefs map[string]string) Option {
	return func(d *Declaration) {
		for key, compact := range urirefs {
			WithURIRef(key, compact)(d)
		}
	}
}

// NewRegistry creates a registry seeded with RootType.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Reset()
	return r
}

// Reset removes every registered type and re-creates RootType.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.types = map[string]*typeEntry{
		RootType: {
			name: RootType,
			namespaces: map[string]string{
				"owl":  OwlNamespace,
				"rdfs": RdfsNamespace,
			},
			urirefs: map[string]string{
				RootType: "owl:Thing",
				"label":  "rdfs:label",
			},
		},
	}
}

// Register declares a type, or merges new declarations into an existing one.
// New values win over previously registered ones.
//
// The parent defaults to RootType and must already be registered.
//
// Example:
//
//	reg.Register("Person",
//	    vocabulary.WithNamespace("foaf", "http://xmlns.com/foaf/0.1/"),
//	    vocabulary.WithClass("foaf:Person"),
//	    vocabulary.WithURIRef("first_name", "foaf:firstName"))
func (r *Registry) Register(name string, opts ...Option) error {
	if name == "" {
		return errors.WrapInvalid(errors.ErrInvalidData, "Registry", "Register", "empty type name")
	}

	decl := Declaration{}
	for _, opt := range opts {
		if opt != nil {
			opt(&decl)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.types[name]
	if !exists {
		entry = &typeEntry{
			name:       name,
			namespaces: make(map[string]string),
			urirefs:    make(map[string]string),
		}
		if name != RootType {
			entry.parent = RootType
		}
	}

	parent := entry.parent
	if decl.Parent != "" {
		parent = decl.Parent
	}
	if parent != "" {
		if _, ok := r.types[parent]; !ok {
			return errors.WrapInvalid(fmt.Errorf("%w: parent %q of %q", errors.ErrUnknownType, parent, name),
				"Registry", "Register", "parent lookup")
		}
		if r.descendsFrom(parent, name) {
			return errors.WrapFatal(fmt.Errorf("%w: %q -> %q", errors.ErrInheritanceLoop, name, parent),
				"Registry", "Register", "inheritance check")
		}
	}

	entry.parent = parent
	for prefix, iri := range decl.Namespaces {
		entry.namespaces[prefix] = iri
	}
	for key, compact := range decl.URIRefs {
		entry.urirefs[key] = compact
	}
	if decl.Class != "" {
		entry.urirefs[name] = decl.Class
	}

	r.types[name] = entry
	return nil
}

// descendsFrom reports whether child has ancestor in its parent chain
// (including child itself). Caller holds the lock.
func (r *Registry) descendsFrom(child, ancestor string) bool {
	seen := make(map[string]bool)
	for cur := child; cur != ""; {
		if cur == ancestor {
			return true
		}
		if seen[cur] {
			return false
		}
		seen[cur] = true
		entry, ok := r.types[cur]
		if !ok {
			return false
		}
		cur = entry.parent
	}
	return false
}

// chain returns the entries from the root ancestor down to name.
// Caller holds the read lock. Unknown types yield nil.
func (r *Registry) chain(name string) []*typeEntry {
	var out []*typeEntry
	seen := make(map[string]bool)
	for cur := name; cur != "" && !seen[cur]; {
		seen[cur] = true
		entry, ok := r.types[cur]
		if !ok {
			break
		}
		out = append(out, entry)
		cur = entry.parent
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// IsRegistered reports whether name has been registered.
func (r *Registry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.types[name]
	return ok
}

// Parent returns the parent type name, empty for RootType and unknown types.
func (r *Registry) Parent(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if entry, ok := r.types[name]; ok {
		return entry.parent
	}
	return ""
}

// Types returns all registered type names in sorted order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Namespaces returns the merged prefix → IRI map of a type.
// Unknown types yield an empty map.
func (r *Registry) Namespaces(name string) map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]string)
	for _, entry := range r.chain(name) {
		for k, v := range entry.namespaces {
			out[k] = v
		}
	}
	return out
}

// URIRefs returns the merged field-or-type name → compact IRI map of a type.
// Unknown types yield an empty map.
func (r *Registry) URIRefs(name string) map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]string)
	for _, entry := range r.chain(name) {
		for k, v := range entry.urirefs {
			out[k] = v
		}
	}
	return out
}

// OwnURIRefs returns only what the type declared itself.
func (r *Registry) OwnURIRefs(name string) map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]string)
	if entry, ok := r.types[name]; ok {
		for k, v := range entry.urirefs {
			out[k] = v
		}
	}
	return out
}

// URIRef looks up the compact IRI of a field (or type) name, honoring inheritance.
func (r *Registry) URIRef(name, key string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.chain(name)
	for i := len(entries) - 1; i >= 0; i-- {
		if v, ok := entries[i].urirefs[key]; ok {
			return v, true
		}
	}
	return "", false
}

// FieldURIRefs is URIRefs without the class entries of the type and its ancestors.
func (r *Registry) FieldURIRefs(name string) map[string]string {
	refs := r.URIRefs(name)

	r.mu.RLock()
	defer r.mu.RUnlock()
	for key := range refs {
		if _, isType := r.types[key]; isType {
			delete(refs, key)
		}
	}
	return refs
}

// ClassIRI returns the compact class IRI of a type, falling back to the type
// name itself when none was declared.
func (r *Registry) ClassIRI(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if entry, ok := r.types[name]; ok {
		if v, ok := entry.urirefs[name]; ok {
			return v
		}
	}
	return name
}

// TypeIRI returns the absolute class IRI used in rdf:type arcs. A type without
// a resolvable class IRI yields "local:<Type>".
func (r *Registry) TypeIRI(name string) string {
	compact := r.ClassIRI(name)
	if compact == name {
		compact = LocalPrefix + ":" + name
	}
	return Expand(compact, r.Namespaces(name))
}

// IRI returns the IRI of a type (key == "") or one of its fields.
// With compact set the registered "prefix:local" form is returned, otherwise
// it is expanded against the type's namespaces.
func (r *Registry) IRI(name, key string, compact bool) (string, bool) {
	if key == "" {
		key = name
	}
	ref, ok := r.URIRef(name, key)
	if !ok {
		return "", false
	}
	if compact {
		return ref, true
	}
	return Expand(ref, r.Namespaces(name)), true
}

// TypeByIRI finds the registered type whose class IRI expands to iri, the
// inverse of TypeIRI: a classless type is found by "local:<Type>".
// Ties between types sharing a class IRI resolve to the first name in sorted order.
func (r *Registry) TypeByIRI(iri string) (string, bool) {
	for _, name := range r.Types() {
		if name == RootType && iri != OwlThing {
			continue
		}
		if r.TypeIRI(name) == iri {
			return name, true
		}
	}
	return "", false
}

// SetNamespace adds or replaces a namespace on an existing type.
func (r *Registry) SetNamespace(name, prefix, iri string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.types[name]
	if !ok {
		return errors.WrapInvalid(fmt.Errorf("%w: %q", errors.ErrUnknownType, name),
			"Registry", "SetNamespace", "type lookup")
	}
	entry.namespaces[prefix] = iri
	return nil
}

// SetURIRef adds or replaces a field IRI on an existing type.
func (r *Registry) SetURIRef(name, key, compact string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.types[name]
	if !ok {
		return errors.WrapInvalid(fmt.Errorf("%w: %q", errors.ErrUnknownType, name),
			"Registry", "SetURIRef", "type lookup")
	}
	entry.urirefs[key] = compact
	return nil
}
