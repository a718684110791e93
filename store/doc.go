// Package store is a thin client for an RDF store exposing SPARQL 1.1 Query,
// SPARQL 1.1 Update, and Graph Store Protocol endpoints. It normalizes the
// store's success/error semantics and captures validation snapshots of
// post-operation state.
package store
