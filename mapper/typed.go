package mapper

import (
	"github.com/c360/semld/errors"
	"github.com/c360/semld/thing"
)

// QueryInto runs Query and decodes every node into T, a struct with jsonld
// tags. Constraint failures of the `validate` tags return errors.ErrValidation.
func QueryInto[T any](m *Mapper, typeName string, src Source, opts QueryOptions) ([]T, error) {
	nodes, err := m.Query(typeName, src, opts)
	if err != nil || len(nodes) == 0 {
		return nil, err
	}
	out := make([]T, len(nodes))
	for i, node := range nodes {
		if err := thing.Decode(node, &out[i]); err != nil {
			return nil, errors.Wrap(err, "Mapper", "QueryInto", "record construction")
		}
	}
	return out, nil
}

// QueryOneInto runs QueryOne and decodes the node into a new T. It returns
// nil when nothing matched.
func QueryOneInto[T any](m *Mapper, typeName string, src Source, opts QueryOptions) (*T, error) {
	node, err := m.QueryOne(typeName, src, opts)
	if err != nil || node == nil {
		return nil, err
	}
	out := new(T)
	if err := thing.Decode(node, out); err != nil {
		return nil, errors.Wrap(err, "Mapper", "QueryOneInto", "record construction")
	}
	return out, nil
}
