package thing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/semld/errors"
)

type address struct {
	Street string `jsonld:"street"`
}

type person struct {
	ID        string         `jsonld:"id"`
	FirstName string         `jsonld:"first_name" validate:"required"`
	Age       int            `jsonld:"age"`
	Born      time.Time      `jsonld:"born"`
	Aliases   []string       `jsonld:"aliases"`
	Home      *address       `jsonld:"home"`
	Friend    *person        `jsonld:"friend"`
	Secret    string         `jsonld:"-"`
	Other     map[string]any `jsonld:",remain"`
}

func (person) TypeName() string { return "Person" }

func TestEncode(t *testing.T) {
	born := time.Date(1815, 12, 10, 0, 0, 0, 0, time.UTC)
	p := &person{
		ID:        "http://example.org/ada",
		FirstName: "Ada",
		Age:       36,
		Born:      born,
		Aliases:   []string{"Augusta", "Countess"},
		Home:      &address{Street: "St James's Square"},
		Secret:    "hidden",
		Other:     map[string]any{"b": 2, "a": 1},
	}

	n, err := Encode(p)
	require.NoError(t, err)

	assert.Equal(t, "Person", n.Type)
	assert.Equal(t, "http://example.org/ada", n.ID)

	v, ok := n.Get("aliases")
	require.True(t, ok)
	assert.Equal(t, []any{"Augusta", "Countess"}, v)

	v, ok = n.Get("home")
	require.True(t, ok)
	home, ok := v.(*Node)
	require.True(t, ok)
	assert.Equal(t, "address", home.Type)

	v, _ = n.Get("born")
	assert.Equal(t, born, v)

	_, ok = n.Get("Secret")
	assert.False(t, ok)

	fields := n.Fields()
	last := fields[len(fields)-2:]
	assert.Equal(t, "a", last[0].Name)
	assert.True(t, last[0].Extra)
	assert.Equal(t, "b", last[1].Name)
}

func TestEncode_Cycle(t *testing.T) {
	a := &person{ID: "http://example.org/a", FirstName: "a"}
	b := &person{ID: "http://example.org/b", FirstName: "b", Friend: a}
	a.Friend = b

	n, err := Encode(a)
	require.NoError(t, err)

	v, _ := n.Get("friend")
	nb := v.(*Node)
	v, _ = nb.Get("friend")
	assert.Same(t, n, v)
}

func TestEncode_Unsupported(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"not a struct", 42},
		{"nil pointer", (*person)(nil)},
		{"map field", struct {
			M map[string]int `jsonld:"m"`
		}{M: map[string]int{"a": 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrUnsupported)
			assert.True(t, errors.IsInvalid(err))
		})
	}
}

func TestEncode_OmitEmpty(t *testing.T) {
	type contact struct {
		Name  string   `jsonld:"name"`
		Email string   `jsonld:"email,omitempty"`
		Age   int      `jsonld:"age,omitempty"`
		Tags  []string `jsonld:"tags,omitempty"`
		Home  *address `jsonld:"home,omitempty"`
		Score int      `jsonld:"score"`
	}

	tests := []struct {
		name    string
		input   contact
		present []string
		absent  []string
	}{
		{
			name:    "zero values skipped",
			input:   contact{Name: "Ada"},
			present: []string{"name", "score"},
			absent:  []string{"email", "age", "tags", "home"},
		},
		{
			name:    "set values kept",
			input:   contact{Name: "Ada", Email: "ada@example.org", Age: 36, Tags: []string{"math"}, Home: &address{}},
			present: []string{"name", "email", "age", "tags", "home", "score"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Encode(tt.input)
			require.NoError(t, err)
			for _, name := range tt.present {
				_, ok := n.Get(name)
				assert.True(t, ok, "field %s", name)
			}
			for _, name := range tt.absent {
				_, ok := n.Get(name)
				assert.False(t, ok, "field %s", name)
			}
		})
	}
}

func TestDecode_OmitEmptyTag(t *testing.T) {
	type contact struct {
		Name string `jsonld:"name"`
		Age  int    `jsonld:"age,omitempty"`
	}

	var c contact
	require.NoError(t, Decode(map[string]any{"name": "Ada", "age": "36"}, &c))
	assert.Equal(t, contact{Name: "Ada", Age: 36}, c)
}

func TestDecode(t *testing.T) {
	src := map[string]any{
		"@type":      "foaf:Person",
		"id":         "http://example.org/ada",
		"first_name": "Ada",
		"age":        "36",
		"born":       "1815-12-10T00:00:00Z",
		"aliases":    "Augusta",
		"home":       map[string]any{"street": "St James's Square", "@type": "schema:Place"},
		"shoe_size":  "38",
	}

	var p person
	require.NoError(t, Decode(src, &p))

	assert.Equal(t, "http://example.org/ada", p.ID)
	assert.Equal(t, "Ada", p.FirstName)
	assert.Equal(t, 36, p.Age)
	assert.Equal(t, 1815, p.Born.Year())
	assert.Equal(t, []string{"Augusta"}, p.Aliases)
	require.NotNil(t, p.Home)
	assert.Equal(t, "St James's Square", p.Home.Street)
	assert.Equal(t, map[string]any{"shoe_size": "38"}, p.Other)
}

func TestDecode_FromNode(t *testing.T) {
	n := New("Person", Known("first_name", "Ada"), Extra("hobby", "maths")).WithID("_:N1")

	var p person
	require.NoError(t, Decode(n, &p))
	assert.Equal(t, "_:N1", p.ID)
	assert.Equal(t, "Ada", p.FirstName)
	assert.Equal(t, "maths", p.Other["hobby"])
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name     string
		src      any
		sentinel error
	}{
		{"missing required field", map[string]any{"age": 3}, errors.ErrValidation},
		{"bad integer", map[string]any{"first_name": "x", "age": "three"}, errors.ErrValidation},
		{"unsupported source", "nope", errors.ErrUnsupported},
		{"nil node", (*Node)(nil), errors.ErrInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p person
			err := Decode(tt.src, &p)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	in := &person{ID: "http://example.org/ada", FirstName: "Ada", Aliases: []string{"a", "b"}}

	n, err := Encode(in)
	require.NoError(t, err)

	var out person
	require.NoError(t, Decode(n, &out))
	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, in.FirstName, out.FirstName)
	assert.Equal(t, in.Aliases, out.Aliases)
}
