package rdf

import (
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Validates the run-global uniqueness guarantee: for any sequence of batch
// sizes, no two triples from the same Generator share an object value.
func TestProperty_ObjectUniqueness(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("objects never repeat across any batch sequence", prop.ForAll(
		func(sizes []int) bool {
			g := NewGenerator()
			seen := make(map[quad.Value]bool)
			for _, n := range sizes {
				quads, err := g.Generate(n, quad.IRI("http://example.org/s"))
				if err != nil {
					return false
				}
				for _, q := range quads {
					if seen[q.Object] {
						return false
					}
					seen[q.Object] = true
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(1, 20)),
	))

	properties.Property("batch size is always honored", prop.ForAll(
		func(n int) bool {
			g := NewGenerator()
			quads, err := g.Generate(n, quad.IRI("http://example.org/s"))
			return err == nil && len(quads) == n
		},
		gen.IntRange(1, 100),
	))

	properties.TestingRun(t)
}
