// Package graphload defines the fixed IRI constants used by the workload
// generator: the type marker that selects subjects from the seed dataset,
// the predicate and object namespace for synthesized triples, and the
// canonical subject used inside named graphs.
package graphload
