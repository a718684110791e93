package rdf

import (
	"fmt"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/nquads"
)

// Serialize renders a triple batch as N-Triples text, one statement per line.
func Serialize(quads []quad.Quad) (string, error) {
	var sb strings.Builder
	w := nquads.NewWriter(&sb)
	for _, q := range quads {
		if err := w.WriteQuad(q); err != nil {
			return "", fmt.Errorf("serialize triple: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close n-triples writer: %w", err)
	}
	return sb.String(), nil
}

// Reassert returns a copy of the batch with every subject replaced. Used to
// restate a subject's triples about the canonical graph subject before they
// are inserted into a named graph.
func Reassert(quads []quad.Quad, subject quad.IRI) []quad.Quad {
	out := make([]quad.Quad, len(quads))
	for i, q := range quads {
		q.Subject = subject
		out[i] = q
	}
	return out
}
