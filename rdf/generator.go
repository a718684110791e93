package rdf

import (
	"fmt"
	"sync/atomic"

	"github.com/cayleygraph/quad"

	vocab "github.com/c360studio/graphload/vocabulary/graphload"
)

// Generator synthesizes triple batches for a subject. Every object IRI is
// derived from a single monotonically increasing counter, so no two triples
// produced by the same Generator share an object, across all subjects and
// all goroutines.
type Generator struct {
	counter   atomic.Uint64
	predicate quad.IRI
	objectNS  string
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithPredicate overrides the predicate used for synthesized triples.
func WithPredicate(predicate quad.IRI) GeneratorOption {
	return func(g *Generator) {
		g.predicate = predicate
	}
}

// WithObjectNamespace overrides the namespace prefix for object IRIs.
func WithObjectNamespace(ns string) GeneratorOption {
	return func(g *Generator) {
		g.objectNS = ns
	}
}

// NewGenerator creates a Generator using the workload vocabulary defaults.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		predicate: quad.IRI(vocab.InsertPredicate),
		objectNS:  vocab.ObjectNamespace,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns count triples of the form (subject, predicate, object_i)
// where each object_i is a fresh counter-derived IRI. count must be at least 1.
func (g *Generator) Generate(count int, subject quad.IRI) ([]quad.Quad, error) {
	if count < 1 {
		return nil, fmt.Errorf("triple count must be >= 1, got %d", count)
	}

	quads := make([]quad.Quad, 0, count)
	for i := 0; i < count; i++ {
		n := g.counter.Add(1) - 1
		quads = append(quads, quad.Quad{
			Subject:   subject,
			Predicate: g.predicate,
			Object:    quad.IRI(fmt.Sprintf("%s%d", g.objectNS, n)),
		})
	}
	return quads, nil
}
