package rdf

import (
	"fmt"
	"os"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/nquads"
)

// SubjectsFromFile extracts the subject universe from an N-Triples file.
// A subject qualifies when at least one of its triples has typeIRI as object,
// regardless of predicate. Order of first appearance is preserved and
// duplicates are dropped; slice order is load-bearing for worker partitioning.
func SubjectsFromFile(path string, typeIRI quad.IRI) ([]quad.IRI, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	dec := nquads.NewReader(f, false)
	quads, err := quad.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}

	seen := make(map[quad.IRI]bool)
	var subjects []quad.IRI
	for _, q := range quads {
		obj, ok := q.Object.(quad.IRI)
		if !ok || obj != typeIRI {
			continue
		}
		subj, ok := q.Subject.(quad.IRI)
		if !ok || seen[subj] {
			continue
		}
		seen[subj] = true
		subjects = append(subjects, subj)
	}
	return subjects, nil
}
