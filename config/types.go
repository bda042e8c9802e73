package config

import (
	"github.com/c360/semld/errors"
	"github.com/c360/semld/vocabulary"
)

// TypeConfig declares a record type in the configuration file.
//
//	types:
//	  - name: Person
//	    class: foaf:Person
//	    namespaces:
//	      foaf: http://xmlns.com/foaf/0.1/
//	    urirefs:
//	      first_name: foaf:firstName
type TypeConfig struct {
	Name       string            `yaml:"name"`
	Parent     string            `yaml:"parent"`
	Class      string            `yaml:"class"`
	Namespaces map[string]string `yaml:"namespaces"`
	URIRefs    map[string]string `yaml:"urirefs"`
}

// RegisterTypes registers the file's types on reg in file order. A parent must
// be declared before its subtypes unless reg already knows it.
func (f *File) RegisterTypes(reg *vocabulary.Registry) error {
	for _, t := range f.Types {
		opts := []vocabulary.Option{
			vocabulary.WithNamespaces(t.Namespaces),
			vocabulary.WithURIRefs(t.URIRefs),
		}
		if t.Parent != "" {
			opts = append(opts, vocabulary.WithParent(t.Parent))
		}
		if t.Class != "" {
			opts = append(opts, vocabulary.WithClass(t.Class))
		}
		if err := reg.Register(t.Name, opts...); err != nil {
			return errors.Wrap(err, "File", "RegisterTypes", "register "+t.Name)
		}
	}
	return nil
}
