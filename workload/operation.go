package workload

import "github.com/c360studio/graphload/store"

// Kind identifies one of the five mutation operation kinds.
type Kind string

const (
	// KindInsertData issues INSERT DATA into the default graph and the
	// subject's named graph in one SPARQL Update request.
	KindInsertData Kind = "InsertData"

	// KindDeleteData deletes a bounded set of the subject's default-graph
	// triples via DELETE DATA.
	KindDeleteData Kind = "DeleteData"

	// KindGspPost appends generated triples through a Graph Store Protocol
	// POST.
	KindGspPost Kind = "GspPost"

	// KindGspPut replaces the subject's named graph through a Graph Store
	// Protocol PUT.
	KindGspPut Kind = "GspPut"

	// KindGspDelete drops the subject's named graph through a Graph Store
	// Protocol DELETE.
	KindGspDelete Kind = "GspDelete"
)

// Kinds lists every operation kind, in draw order.
var Kinds = []Kind{KindInsertData, KindDeleteData, KindGspPost, KindGspPut, KindGspDelete}

// Reuses reports whether the kind targets an already-introduced subject
// instead of consuming the next unused one.
func (k Kind) Reuses() bool {
	return k == KindGspPut || k == KindGspDelete
}

// Endpoint names the endpoint family an operation was sent to.
type Endpoint string

const (
	// EndpointUpdate is the SPARQL 1.1 Update endpoint.
	EndpointUpdate Endpoint = "update"

	// EndpointGSP is the Graph Store Protocol endpoint.
	EndpointGSP Endpoint = "gsp"
)

// Method is the HTTP method of the mutating request.
type Method string

const (
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
)

// Record is one generated operation: the exact request that was sent plus
// the validation snapshot captured immediately after it completed. Records
// are created once, serialized to disk, and never mutated; their JSON field
// names are the contract the replay harness depends on.
type Record struct {
	Subject     string            `json:"subject"`
	Operation   Kind              `json:"operation"`
	Endpoint    Endpoint          `json:"endpoint"`
	Method      Method            `json:"method"`
	QueryParams map[string]string `json:"query_params"`
	Headers     map[string]string `json:"headers"`
	Body        string            `json:"body"`
	Validate    store.Validation  `json:"validate"`
}
