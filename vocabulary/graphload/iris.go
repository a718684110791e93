package graphload

// SubjectType marks the entities in the seed dataset that become workload
// subjects. Every triple whose object equals this IRI contributes its subject
// to the subject universe.
const SubjectType = "http://xmlns.com/foaf/0.1/Person"

// InsertPredicate is the single predicate used by all synthesized triples.
const InsertPredicate = "http://www.example.org/test"

// ObjectNamespace is the prefix for counter-derived object IRIs. Appending
// the global counter value yields a globally unique object per triple.
const ObjectNamespace = "http://www.example.org/test/"

// GraphSubject is the canonical subject asserted inside named graphs. Named
// graphs are keyed by the workload subject's IRI, but the triples they hold
// are about this constant, never about the graph's own IRI.
const GraphSubject = "http://www.example.org/graph"
