package rdf

import (
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize(t *testing.T) {
	quads := []quad.Quad{
		{
			Subject:   quad.IRI("http://example.org/s"),
			Predicate: quad.IRI("http://example.org/p"),
			Object:    quad.IRI("http://example.org/o"),
		},
		{
			Subject:   quad.IRI("http://example.org/s"),
			Predicate: quad.IRI("http://example.org/p"),
			Object:    quad.IRI("http://example.org/o2"),
		},
	}

	text, err := Serialize(quads)
	require.NoError(t, err)
	assert.Equal(t,
		"<http://example.org/s> <http://example.org/p> <http://example.org/o> .\n"+
			"<http://example.org/s> <http://example.org/p> <http://example.org/o2> .\n",
		text)
}

func TestSerialize_Empty(t *testing.T) {
	text, err := Serialize(nil)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestReassert(t *testing.T) {
	original := []quad.Quad{
		{
			Subject:   quad.IRI("http://example.org/s"),
			Predicate: quad.IRI("http://example.org/p"),
			Object:    quad.IRI("http://example.org/o"),
		},
	}

	restated := Reassert(original, quad.IRI("http://www.example.org/graph"))
	require.Len(t, restated, 1)
	assert.Equal(t, quad.IRI("http://www.example.org/graph"), restated[0].Subject)
	assert.Equal(t, original[0].Predicate, restated[0].Predicate)
	assert.Equal(t, original[0].Object, restated[0].Object)

	// Input batch is untouched.
	assert.Equal(t, quad.IRI("http://example.org/s"), original[0].Subject)
}
