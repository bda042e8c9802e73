package graph

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/semld/errors"
	"github.com/c360/semld/metric"
	"github.com/c360/semld/vocabulary"
)

const foaf = "http://xmlns.com/foaf/0.1/"

func TestParse(t *testing.T) {
	data := []byte(`{
		"@context": {
			"foaf": "http://xmlns.com/foaf/0.1/",
			"first_name": "http://xmlns.com/foaf/0.1/firstName"
		},
		"@id": "http://example.org/ada",
		"@type": "foaf:Person",
		"first_name": "Ada",
		"foaf:age": 36
	}`)

	store, err := Parse(data, nil)
	require.NoError(t, err)

	ada := IRI("http://example.org/ada")
	assert.True(t, store.Contains(Triple{ada, IRI(vocabulary.RdfType), IRI(foaf + "Person")}))
	assert.True(t, store.Contains(Triple{ada, IRI(foaf + "firstName"), Literal("Ada")}))
	assert.True(t, store.Contains(Triple{ada, IRI(foaf + "age"),
		TypedLiteral("36", vocabulary.XsdNamespace+"integer")}))
}

func TestParse_List(t *testing.T) {
	data := []byte(`{
		"@context": {"ex": "http://example.org/"},
		"@id": "ex:s",
		"ex:items": {"@list": ["a", "b", "c"]}
	}`)

	store, err := Parse(data, nil)
	require.NoError(t, err)

	rows, err := store.Query(P(IRI("http://example.org/s"), IRI("http://example.org/items"), Var("head")))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	head := rows[0]["head"]
	assert.True(t, head.IsBlank())

	var items []string
	for cur := head; cur != IRI(vocabulary.RdfNil); {
		first, err := store.Query(P(cur, IRI(vocabulary.RdfFirst), Var("v")))
		require.NoError(t, err)
		require.Len(t, first, 1)
		items = append(items, first[0]["v"].Value)

		rest, err := store.Query(P(cur, IRI(vocabulary.RdfRest), Var("next")))
		require.NoError(t, err)
		require.Len(t, rest, 1)
		cur = rest[0]["next"]
	}
	assert.Equal(t, []string{"a", "b", "c"}, items)
}

func TestParse_ExpandContext(t *testing.T) {
	data := []byte(`{"@id": "http://example.org/a", "name": "x"}`)

	store, err := Parse(data, map[string]any{"name": "https://schema.org/name"})
	require.NoError(t, err)
	assert.True(t, store.Contains(Triple{IRI("http://example.org/a"), IRI("https://schema.org/name"), Literal("x")}))

	store, err = Parse(data, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len(), "undefined terms are dropped")
}

func TestParse_Errors(t *testing.T) {
	registry := metric.NewMetricsRegistry()
	m := registry.CoreMetrics()

	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"@id": `},
		{"bad context", `{"@context": 5, "@id": "http://example.org/a"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), nil, WithMetrics(m))
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrParse)
			assert.True(t, errors.IsParseError(err))
			assert.True(t, errors.IsInvalid(err))
		})
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ParseErrors))
}

func TestParseDocument(t *testing.T) {
	doc := map[string]any{
		"@id":                      "_:x",
		"http://example.org/label": "blank",
	}

	store, err := ParseDocument(doc, nil)
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())
	assert.True(t, store.Triples()[0].Subject.IsBlank())
}
