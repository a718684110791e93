// Package workload synthesizes the mutation-operation stream: it picks
// operation kinds under state-dependent constraints, selects subjects,
// executes the requests against the store, and assembles write-once operation
// records with post-condition snapshots for a downstream replay harness.
package workload
