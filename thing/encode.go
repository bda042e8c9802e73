package thing

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/c360/semld/errors"
)

// TagName is the struct tag read by Encode and Decode.
//
//	type Person struct {
//	    ID        string         `jsonld:"id"`
//	    FirstName string         `jsonld:"first_name" validate:"required"`
//	    Age       int            `jsonld:"age,omitempty"`
//	    Knows     []*Person      `jsonld:"knows"`
//	    Other     map[string]any `jsonld:",remain"`
//	}
//
// The "id" field is the node identity, ",remain" collects extra fields and
// "-" skips a field. Fields tagged ",omitempty" are left out of the node when
// they hold their zero value. Untagged exported fields use their Go name.
const TagName = "jsonld"

// Typed lets a record name its registered type. Records that don't implement
// it are registered under their Go type name.
type Typed interface {
	TypeName() string
}

var timeType = reflect.TypeOf(time.Time{})

// Encode turns a struct (or pointer to struct) into a Node. Nested structs
// become nested nodes and slices keep their order. Pointer cycles are
// preserved: the same struct pointer always maps to the same *Node.
func Encode(v any) (*Node, error) {
	rv := reflect.ValueOf(v)
	enc := &encoder{seen: make(map[uintptr]*Node)}
	node, err := enc.encodeStruct(rv)
	if err != nil {
		return nil, errors.WrapInvalid(err, "thing", "Encode", "record encoding")
	}
	return node, nil
}

type encoder struct {
	seen map[uintptr]*Node
}

// TypeNameOf returns the registered type name of a record.
func TypeNameOf(v any) string {
	if t, ok := v.(Typed); ok {
		return t.TypeName()
	}
	rt := reflect.TypeOf(v)
	for rt != nil && rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt == nil {
		return ""
	}
	return rt.Name()
}

func (e *encoder) encodeStruct(rv reflect.Value) (*Node, error) {
	var ptr uintptr
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: nil record", errors.ErrUnsupported)
		}
		ptr = rv.Pointer()
		if n, ok := e.seen[ptr]; ok {
			return n, nil
		}
	}

	typeName := ""
	if rv.IsValid() && rv.CanInterface() {
		typeName = TypeNameOf(rv.Interface())
	}

	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", errors.ErrUnsupported, rv.Kind())
	}

	node := New(typeName)
	if ptr != 0 {
		e.seen[ptr] = node
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, opts := parseTag(sf)
		if name == "-" {
			continue
		}
		fv := rv.Field(i)

		if hasOption(opts, "remain") {
			if err := e.encodeRemain(node, fv); err != nil {
				return nil, err
			}
			continue
		}

		if name == "id" {
			if fv.Kind() == reflect.String {
				node.ID = fv.String()
			} else if fv.Kind() == reflect.Pointer && !fv.IsNil() && fv.Elem().Kind() == reflect.String {
				node.ID = fv.Elem().String()
			}
			continue
		}
		if hasOption(opts, "omitempty") && fv.IsZero() {
			continue
		}

		value, err := e.encodeValue(fv)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", sf.Name, err)
		}
		node.Set(name, value)
	}
	return node, nil
}

func (e *encoder) encodeRemain(node *Node, fv reflect.Value) error {
	if fv.Kind() != reflect.Map || fv.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("%w: remain field must be map[string]any", errors.ErrUnsupported)
	}
	keys := fv.MapKeys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	sort.Strings(names)
	for _, k := range names {
		value, err := e.encodeValue(fv.MapIndex(reflect.ValueOf(k)))
		if err != nil {
			return fmt.Errorf("extra %s: %w", k, err)
		}
		node.SetExtra(k, value)
	}
	return nil
}

func (e *encoder) encodeValue(fv reflect.Value) (any, error) {
	if !fv.IsValid() {
		return nil, nil
	}
	switch fv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if fv.IsNil() {
			return nil, nil
		}
		if fv.Kind() == reflect.Pointer && isRecord(fv.Type().Elem()) {
			return e.encodeStruct(fv)
		}
		if fv.Kind() == reflect.Interface {
			if n, ok := fv.Interface().(*Node); ok {
				return n, nil
			}
		}
		return e.encodeValue(fv.Elem())
	case reflect.Struct:
		if fv.Type() == timeType {
			return fv.Interface(), nil
		}
		return e.encodeStruct(fv)
	case reflect.Slice, reflect.Array:
		if fv.Kind() == reflect.Slice && fv.IsNil() {
			return nil, nil
		}
		if fv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, fmt.Errorf("%w: byte slices", errors.ErrUnsupported)
		}
		out := make([]any, fv.Len())
		for i := 0; i < fv.Len(); i++ {
			item, err := e.encodeValue(fv.Index(i))
			if err != nil {
				return nil, err
			}
			out[i] = item
		}
		return out, nil
	case reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
		return nil, fmt.Errorf("%w: %s", errors.ErrUnsupported, fv.Kind())
	default:
		return fv.Interface(), nil
	}
}

func isRecord(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t != timeType && t != reflect.TypeOf(Node{})
}

func parseTag(sf reflect.StructField) (name, opts string) {
	tag, ok := sf.Tag.Lookup(TagName)
	if !ok {
		return sf.Name, ""
	}
	name, opts, _ = strings.Cut(tag, ",")
	if name == "" && !hasOption(opts, "remain") {
		name = sf.Name
	}
	return name, opts
}

func hasOption(opts, option string) bool {
	for _, o := range strings.Split(opts, ",") {
		if o == option {
			return true
		}
	}
	return false
}
