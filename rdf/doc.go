// Package rdf provides the triple-level plumbing for the workload generator:
// synthesizing uniquely-numbered triple batches, serializing them to
// N-Triples text, and extracting the subject universe from a seed dataset.
package rdf
