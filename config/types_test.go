package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/semld/errors"
	"github.com/c360/semld/vocabulary"
)

const typesYAML = `
types:
  - name: Agent
    class: prov:Agent
    namespaces:
      prov: http://www.w3.org/ns/prov#
  - name: Person
    parent: Agent
    class: foaf:Person
    namespaces:
      foaf: http://xmlns.com/foaf/0.1/
    urirefs:
      first_name: foaf:firstName
`

func TestFile_RegisterTypes(t *testing.T) {
	f, err := Parse([]byte(typesYAML))
	require.NoError(t, err)
	require.Len(t, f.Types, 2)

	reg := vocabulary.NewRegistry()
	require.NoError(t, f.RegisterTypes(reg))

	assert.Equal(t, "Agent", reg.Parent("Person"))
	assert.Equal(t, "http://xmlns.com/foaf/0.1/Person", reg.TypeIRI("Person"))
	assert.Equal(t, "http://www.w3.org/ns/prov#Agent", reg.TypeIRI("Agent"))

	iri, ok := reg.IRI("Person", "first_name", false)
	require.True(t, ok)
	assert.Equal(t, "http://xmlns.com/foaf/0.1/firstName", iri)

	// inherited from Agent
	assert.Equal(t, "http://www.w3.org/ns/prov#", reg.Namespaces("Person")["prov"])
}

func TestFile_RegisterTypes_UnknownParent(t *testing.T) {
	f, err := Parse([]byte(`
types:
  - name: Person
    parent: Agent
`))
	require.NoError(t, err)

	err = f.RegisterTypes(vocabulary.NewRegistry())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnknownType)
}

func TestParse_TypeWithoutName(t *testing.T) {
	_, err := Parse([]byte(`
types:
  - class: foaf:Person
`))
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))
}
