package vocabulary

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/semld/errors"
)

func newPersonRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	require.NoError(t, reg.Register("Person",
		WithNamespace("foaf", "http://xmlns.com/foaf/0.1/"),
		WithNamespace("prov", "http://www.w3.org/ns/prov#"),
		WithClass("prov:Person"),
		WithURIRef("first_name", "foaf:firstName"),
		WithURIRef("last_name", "foaf:lastName")))
	return reg
}

func TestNewRegistry_RootType(t *testing.T) {
	reg := NewRegistry()

	assert.True(t, reg.IsRegistered(RootType))
	assert.Equal(t, "owl:Thing", reg.ClassIRI(RootType))
	assert.Equal(t, OwlThing, reg.TypeIRI(RootType))

	label, ok := reg.IRI(RootType, "label", false)
	require.True(t, ok)
	assert.Equal(t, RdfsLabel, label)
}

func TestRegistry_RegisterInheritsFromRoot(t *testing.T) {
	reg := newPersonRegistry(t)

	assert.Equal(t, RootType, reg.Parent("Person"))

	ns := reg.Namespaces("Person")
	assert.Equal(t, "http://xmlns.com/foaf/0.1/", ns["foaf"])
	assert.Equal(t, OwlNamespace, ns["owl"], "root namespaces are inherited")

	refs := reg.URIRefs("Person")
	assert.Equal(t, "foaf:firstName", refs["first_name"])
	assert.Equal(t, "rdfs:label", refs["label"])
	assert.Equal(t, "prov:Person", refs["Person"])
}

func TestRegistry_OwnDeclarationsWin(t *testing.T) {
	reg := newPersonRegistry(t)
	require.NoError(t, reg.Register("Student",
		WithParent("Person"),
		WithNamespace("schema", "https://schema.org/"),
		WithNamespace("foaf", "https://override.example/foaf/"),
		WithClass("schema:Student"),
		WithURIRef("first_name", "schema:givenName")))

	refs := reg.URIRefs("Student")
	assert.Equal(t, "schema:givenName", refs["first_name"])
	assert.Equal(t, "foaf:lastName", refs["last_name"])

	ns := reg.Namespaces("Student")
	assert.Equal(t, "https://override.example/foaf/", ns["foaf"])

	// The parent is unaffected.
	assert.Equal(t, "foaf:firstName", reg.URIRefs("Person")["first_name"])
	assert.Equal(t, "http://xmlns.com/foaf/0.1/", reg.Namespaces("Person")["foaf"])

	own := reg.OwnURIRefs("Student")
	assert.NotContains(t, own, "last_name")
}

func TestRegistry_AncestorChangesVisible(t *testing.T) {
	reg := newPersonRegistry(t)
	require.NoError(t, reg.Register("Student", WithParent("Person")))

	require.NoError(t, reg.SetURIRef("Person", "age", "foaf:age"))
	v, ok := reg.URIRef("Student", "age")
	require.True(t, ok)
	assert.Equal(t, "foaf:age", v)
}

func TestRegistry_ReRegisterMerges(t *testing.T) {
	reg := newPersonRegistry(t)
	require.NoError(t, reg.Register("Person", WithURIRef("mbox", "foaf:mbox")))

	refs := reg.URIRefs("Person")
	assert.Equal(t, "foaf:mbox", refs["mbox"])
	assert.Equal(t, "foaf:firstName", refs["first_name"])
	assert.Equal(t, RootType, reg.Parent("Person"))
}

func TestRegistry_UnknownTypeIsEmpty(t *testing.T) {
	reg := NewRegistry()

	assert.Empty(t, reg.Namespaces("Nope"))
	assert.Empty(t, reg.URIRefs("Nope"))
	assert.Empty(t, reg.OwnURIRefs("Nope"))
	_, ok := reg.URIRef("Nope", "x")
	assert.False(t, ok)
	assert.Equal(t, "", reg.Parent("Nope"))
}

func TestRegistry_RegisterErrors(t *testing.T) {
	reg := newPersonRegistry(t)

	err := reg.Register("")
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))

	err = reg.Register("Orphan", WithParent("Missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnknownType)

	require.NoError(t, reg.Register("Student", WithParent("Person")))
	err = reg.Register("Person", WithParent("Student"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInheritanceLoop)
	assert.True(t, errors.IsFatal(err))
	assert.Equal(t, RootType, reg.Parent("Person"), "failed registration leaves the entry untouched")
}

func TestRegistry_SetOnUnknownType(t *testing.T) {
	reg := NewRegistry()
	assert.ErrorIs(t, reg.SetNamespace("Nope", "a", "b"), errors.ErrUnknownType)
	assert.ErrorIs(t, reg.SetURIRef("Nope", "a", "b"), errors.ErrUnknownType)
}

func TestRegistry_IRI(t *testing.T) {
	reg := newPersonRegistry(t)

	tests := []struct {
		name     string
		key      string
		compact  bool
		expected string
		found    bool
	}{
		{name: "class compact", key: "", compact: true, expected: "prov:Person", found: true},
		{name: "class expanded", key: "", compact: false, expected: "http://www.w3.org/ns/prov#Person", found: true},
		{name: "field compact", key: "first_name", compact: true, expected: "foaf:firstName", found: true},
		{name: "field expanded", key: "first_name", compact: false, expected: "http://xmlns.com/foaf/0.1/firstName", found: true},
		{name: "inherited field", key: "label", compact: false, expected: RdfsLabel, found: true},
		{name: "missing field", key: "age", compact: true, expected: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := reg.IRI("Person", tt.key, tt.compact)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRegistry_TypeIRIAndLookup(t *testing.T) {
	reg := newPersonRegistry(t)
	require.NoError(t, reg.Register("Note"))

	assert.Equal(t, "http://www.w3.org/ns/prov#Person", reg.TypeIRI("Person"))
	assert.Equal(t, "local:Note", reg.TypeIRI("Note"))

	name, ok := reg.TypeByIRI("http://www.w3.org/ns/prov#Person")
	require.True(t, ok)
	assert.Equal(t, "Person", name)

	name, ok = reg.TypeByIRI("local:Note")
	require.True(t, ok, "classless types resolve by their local IRI")
	assert.Equal(t, "Note", name)

	name, ok = reg.TypeByIRI(OwlThing)
	require.True(t, ok)
	assert.Equal(t, RootType, name)

	_, ok = reg.TypeByIRI("https://example.org/Unknown")
	assert.False(t, ok)
}

func TestRegistry_FieldURIRefs(t *testing.T) {
	reg := newPersonRegistry(t)

	fields := reg.FieldURIRefs("Person")
	assert.Contains(t, fields, "first_name")
	assert.Contains(t, fields, "label")
	assert.NotContains(t, fields, "Person")
	assert.NotContains(t, fields, RootType)
}

func TestRegistry_ResetAndTypes(t *testing.T) {
	reg := newPersonRegistry(t)
	assert.Equal(t, []string{"Person", RootType}, reg.Types())

	reg.Reset()
	assert.Equal(t, []string{RootType}, reg.Types())
	assert.False(t, reg.IsRegistered("Person"))
}

func TestRegistry_ConcurrentReads(t *testing.T) {
	reg := newPersonRegistry(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "foaf:firstName", reg.URIRefs("Person")["first_name"])
			assert.NotEmpty(t, reg.Namespaces("Person"))
		}()
	}
	wg.Wait()
}
