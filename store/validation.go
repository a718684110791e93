package store

import (
	"context"
	"fmt"

	"github.com/cayleygraph/quad"

	vocab "github.com/c360studio/graphload/vocabulary/graphload"
)

// GraphScope selects which part of the store a validation query inspects.
type GraphScope string

const (
	// ScopeDefault inspects the default graph only.
	ScopeDefault GraphScope = "default"

	// ScopeNamed inspects the named graph keyed by the subject's IRI.
	ScopeNamed GraphScope = "named"

	// ScopeBoth inspects the union of default and named graph state.
	ScopeBoth GraphScope = "both"
)

// Validation is a post-condition snapshot: the CONSTRUCT query that captures
// a subject's state and the N-Triples text the store returned for it. Once
// captured it is never mutated; it is the replay harness's ground truth.
type Validation struct {
	Query    string `json:"query"`
	Expected string `json:"expected"`
}

// DefaultGraphQuery captures a subject's triples in the default graph.
// Blank objects are filtered everywhere: blank node labels are not stable
// across serializations and would break snapshot comparison.
func DefaultGraphQuery(subject quad.IRI) string {
	return fmt.Sprintf("CONSTRUCT {\n"+
		"    %s ?p ?o\n"+
		"}\n"+
		"WHERE {\n"+
		"    %s ?p ?o .\n"+
		"    FILTER(!isBlank(?o))\n"+
		"}", subject, subject)
}

// DefaultGraphQueryWithLimit is the bounded variant used to pick the victim
// triples of a DELETE DATA operation.
func DefaultGraphQueryWithLimit(subject quad.IRI, limit int) string {
	return fmt.Sprintf("CONSTRUCT { %s ?p ?o } WHERE { %s ?p ?o . FILTER(!isBlank(?o)) } LIMIT %d",
		subject, subject, limit)
}

// NamedGraphQuery captures the named graph keyed by the subject's IRI. The
// triples inside are matched against the canonical graph subject, not the
// graph's own IRI; the constructed triples keep the subject so snapshots of
// different graphs stay distinguishable.
func NamedGraphQuery(subject quad.IRI) string {
	graphSubject := quad.IRI(vocab.GraphSubject)
	return fmt.Sprintf("CONSTRUCT {\n"+
		"    %s ?p ?o\n"+
		"}\n"+
		"WHERE {\n"+
		"    GRAPH %s { %s ?p ?o . FILTER(!isBlank(?o)) }\n"+
		"}", subject, subject, graphSubject)
}

// BothGraphsQuery captures default-graph and named-graph state in one query.
func BothGraphsQuery(subject quad.IRI) string {
	graphSubject := quad.IRI(vocab.GraphSubject)
	return fmt.Sprintf("CONSTRUCT {\n"+
		"    %s ?pd ?od .\n"+
		"    %s ?pn ?on .\n"+
		"}\n"+
		"WHERE {\n"+
		"    { %s ?pd ?od . FILTER(!isBlank(?od)) }\n"+
		"    UNION"+
		"    { GRAPH %s { %s ?pn ?on . FILTER(!isBlank(?on)) } }\n"+
		"}", subject, graphSubject, subject, subject, graphSubject)
}

// QueryForScope returns the validation query for a scope/subject pair.
func QueryForScope(scope GraphScope, subject quad.IRI) (string, error) {
	switch scope {
	case ScopeDefault:
		return DefaultGraphQuery(subject), nil
	case ScopeNamed:
		return NamedGraphQuery(subject), nil
	case ScopeBoth:
		return BothGraphsQuery(subject), nil
	default:
		return "", fmt.Errorf("unknown graph scope: %s", scope)
	}
}

// Snapshot executes the validation query for the given scope and returns the
// query together with the store's answer. Callers invoke it immediately after
// a mutating request, so the snapshot reflects post-operation state.
func (c *Client) Snapshot(ctx context.Context, scope GraphScope, subject quad.IRI) (Validation, error) {
	query, err := QueryForScope(scope, subject)
	if err != nil {
		return Validation{}, err
	}
	expected, err := c.Query(ctx, query)
	if err != nil {
		return Validation{}, fmt.Errorf("capture %s snapshot for %s: %w", scope, subject, err)
	}
	return Validation{Query: query, Expected: expected}, nil
}
