// Package thing holds the typed records exchanged with the JSON-LD layer.
//
// A Node is a record of a registered type: an identity, declared fields in
// order and an open set of extra fields the type does not know about. Nodes
// are usually built from Go structs with Encode and turned back into structs
// with Decode:
//
//	type Person struct {
//	    ID        string `jsonld:"id"`
//	    FirstName string `jsonld:"first_name" validate:"required"`
//	}
//
//	node, err := thing.Encode(&Person{FirstName: "Ada"})
//	...
//	var p Person
//	err = thing.Decode(node, &p) // errors.ErrValidation on constraint failure
package thing
