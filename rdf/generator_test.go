package rdf

import (
	"strings"
	"sync"
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate(t *testing.T) {
	g := NewGenerator()
	subject := quad.IRI("http://example.org/alice")

	quads, err := g.Generate(3, subject)
	require.NoError(t, err)
	require.Len(t, quads, 3)

	for _, q := range quads {
		assert.Equal(t, subject, q.Subject)
		assert.Equal(t, quad.IRI("http://www.example.org/test"), q.Predicate)
		obj, ok := q.Object.(quad.IRI)
		require.True(t, ok, "object must be an IRI")
		assert.True(t, strings.HasPrefix(string(obj), "http://www.example.org/test/"))
	}
}

func TestGenerator_RejectsZeroCount(t *testing.T) {
	g := NewGenerator()

	_, err := g.Generate(0, quad.IRI("http://example.org/alice"))
	assert.Error(t, err)

	_, err = g.Generate(-1, quad.IRI("http://example.org/alice"))
	assert.Error(t, err)
}

func TestGenerator_ObjectsUniqueAcrossBatchesAndSubjects(t *testing.T) {
	g := NewGenerator()
	seen := make(map[quad.Value]bool)

	for _, subject := range []quad.IRI{"http://example.org/a", "http://example.org/b"} {
		for i := 0; i < 10; i++ {
			quads, err := g.Generate(5, subject)
			require.NoError(t, err)
			for _, q := range quads {
				assert.False(t, seen[q.Object], "object %v generated twice", q.Object)
				seen[q.Object] = true
			}
		}
	}
}

func TestGenerator_ObjectsUniqueAcrossGoroutines(t *testing.T) {
	g := NewGenerator()

	const workers = 8
	const batches = 50

	results := make([][]quad.Quad, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < batches; i++ {
				quads, err := g.Generate(4, quad.IRI("http://example.org/s"))
				if err != nil {
					return
				}
				results[w] = append(results[w], quads...)
			}
		}()
	}
	wg.Wait()

	seen := make(map[quad.Value]bool)
	for w := 0; w < workers; w++ {
		require.Len(t, results[w], batches*4)
		for _, q := range results[w] {
			assert.False(t, seen[q.Object], "object %v generated twice", q.Object)
			seen[q.Object] = true
		}
	}
}

func TestGenerator_Options(t *testing.T) {
	g := NewGenerator(
		WithPredicate(quad.IRI("http://example.org/p")),
		WithObjectNamespace("http://example.org/obj/"),
	)

	quads, err := g.Generate(1, quad.IRI("http://example.org/s"))
	require.NoError(t, err)
	assert.Equal(t, quad.IRI("http://example.org/p"), quads[0].Predicate)
	assert.Equal(t, quad.IRI("http://example.org/obj/0"), quads[0].Object)
}
