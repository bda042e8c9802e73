package thing

import (
	"sort"

	"github.com/c360/semld/vocabulary"
)

// Field is one named value of a Node. Declared fields are Known; values the
// type does not declare are Extra and are kept apart from the declared ones.
type Field struct {
	Name  string
	Value any
	Extra bool
}

// Known creates a declared field.
func Known(name string, value any) Field {
	return Field{Name: name, Value: value}
}

// Extra creates an undeclared field.
func Extra(name string, value any) Field {
	return Field{Name: name, Value: value, Extra: true}
}

// Node is a typed record: an identity, a registered type name, ordered
// declared fields and an open map of extra fields.
//
// Values are scalars (string, bool, integers, floats, time.Time), nested
// *Node values, or slices of either. Once ID is set the engine never changes it.
type Node struct {
	ID   string
	Type string

	fields     []Field
	index      map[string]int
	extra      map[string]any
	extraOrder []string
}

// New creates a node of the given type holding fields in order.
func New(typeName string, fields ...Field) *Node {
	n := &Node{Type: typeName}
	for _, f := range fields {
		n.add(f)
	}
	return n
}

// WithID sets the node identity and returns the node.
func (n *Node) WithID(id string) *Node {
	n.ID = id
	return n
}

func (n *Node) add(f Field) {
	if f.Extra {
		n.SetExtra(f.Name, f.Value)
		return
	}
	n.Set(f.Name, f.Value)
}

// Set assigns a declared field, keeping its original position when it already exists.
func (n *Node) Set(name string, value any) *Node {
	if n.index == nil {
		n.index = make(map[string]int)
	}
	if i, ok := n.index[name]; ok {
		n.fields[i].Value = value
		return n
	}
	n.index[name] = len(n.fields)
	n.fields = append(n.fields, Known(name, value))
	return n
}

// SetExtra assigns an undeclared field.
func (n *Node) SetExtra(name string, value any) *Node {
	if n.extra == nil {
		n.extra = make(map[string]any)
	}
	if _, ok := n.extra[name]; !ok {
		n.extraOrder = append(n.extraOrder, name)
	}
	n.extra[name] = value
	return n
}

// Get returns a declared or extra field value.
func (n *Node) Get(name string) (any, bool) {
	if i, ok := n.index[name]; ok {
		return n.fields[i].Value, true
	}
	v, ok := n.extra[name]
	return v, ok
}

// Delete removes a declared or extra field.
func (n *Node) Delete(name string) {
	if i, ok := n.index[name]; ok {
		n.fields = append(n.fields[:i], n.fields[i+1:]...)
		delete(n.index, name)
		for j := i; j < len(n.fields); j++ {
			n.index[n.fields[j].Name] = j
		}
		return
	}
	if _, ok := n.extra[name]; ok {
		delete(n.extra, name)
		for i, k := range n.extraOrder {
			if k == name {
				n.extraOrder = append(n.extraOrder[:i], n.extraOrder[i+1:]...)
				break
			}
		}
	}
}

// Fields returns declared fields in order followed by extra fields in the
// order they were first set.
func (n *Node) Fields() []Field {
	out := make([]Field, 0, len(n.fields)+len(n.extraOrder))
	out = append(out, n.fields...)
	for _, name := range n.extraOrder {
		out = append(out, Extra(name, n.extra[name]))
	}
	return out
}

// KnownFields returns only the declared fields.
func (n *Node) KnownFields() []Field {
	return append([]Field(nil), n.fields...)
}

// ExtraFields returns a copy of the extra field map.
func (n *Node) ExtraFields() map[string]any {
	out := make(map[string]any, len(n.extra))
	for k, v := range n.extra {
		out[k] = v
	}
	return out
}

// Len returns the number of fields, declared and extra.
func (n *Node) Len() int {
	return len(n.fields) + len(n.extra)
}

// Map flattens the node into a plain map. Nested nodes become maps too and the
// identity, when set, is stored under "id".
func (n *Node) Map() map[string]any {
	return n.toMap(make(map[*Node]bool))
}

func (n *Node) toMap(visiting map[*Node]bool) map[string]any {
	out := make(map[string]any, n.Len()+1)
	if n.ID != "" {
		out["id"] = n.ID
	}
	visiting[n] = true
	defer delete(visiting, n)
	for _, f := range n.Fields() {
		out[f.Name] = plainValue(f.Value, visiting)
	}
	return out
}

func plainValue(v any, visiting map[*Node]bool) any {
	switch tv := v.(type) {
	case *Node:
		if tv == nil {
			return nil
		}
		if visiting[tv] {
			return tv.ID
		}
		return tv.toMap(visiting)
	case []any:
		out := make([]any, len(tv))
		for i, item := range tv {
			out[i] = plainValue(item, visiting)
		}
		return out
	case []*Node:
		out := make([]any, len(tv))
		for i, item := range tv {
			out[i] = plainValue(item, visiting)
		}
		return out
	default:
		return v
	}
}

// FromMap builds a node from a plain map, classifying keys as declared when
// the registry maps them for typeName and as extra otherwise. The "id" key
// becomes the identity; keys starting with '@' are dropped. Keys are visited
// in sorted order so the result is deterministic.
func FromMap(reg *vocabulary.Registry, typeName string, m map[string]any) *Node {
	n := New(typeName)
	declared := reg.FieldURIRefs(typeName)

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := m[k]
		switch {
		case k == "id":
			if s, ok := v.(string); ok {
				n.ID = s
			}
		case len(k) > 0 && k[0] == '@':
		default:
			if _, ok := declared[k]; ok {
				n.Set(k, v)
			} else {
				n.SetExtra(k, v)
			}
		}
	}
	return n
}
