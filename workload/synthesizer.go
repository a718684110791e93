package workload

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/cayleygraph/quad"

	"github.com/c360studio/graphload/rdf"
	"github.com/c360studio/graphload/store"
	vocab "github.com/c360studio/graphload/vocabulary/graphload"
)

// Range is a half-open interval [Min, Max) to draw triple counts from.
type Range struct {
	Min int
	Max int
}

// Draw picks a value uniformly from the range.
func (r Range) Draw(rng *rand.Rand) int {
	return r.Min + rng.IntN(r.Max-r.Min)
}

// Synthesizer generates one worker's operation stream. It owns the worker's
// position in the global subject list and advances it by exactly one subject
// per step, so introducing kinds consume subjects in strict slice order no
// matter how reuse kinds interleave. Steps are strictly sequential: each
// step's snapshot is taken before the next step's request is sent.
type Synthesizer struct {
	client      *store.Client
	gen         *rdf.Generator
	rng         *rand.Rand
	subjects    []quad.IRI
	offset      int
	insertRange Range
	deleteRange Range
	logger      *slog.Logger

	step int
	ops  map[Kind]func(ctx context.Context, subject quad.IRI) (*Record, error)
}

// SynthesizerOption configures a Synthesizer.
type SynthesizerOption func(*Synthesizer)

// WithInsertRange sets the triple-count range for inserting kinds.
func WithInsertRange(r Range) SynthesizerOption {
	return func(s *Synthesizer) {
		s.insertRange = r
	}
}

// WithDeleteRange sets the triple-count bound for DeleteData.
func WithDeleteRange(r Range) SynthesizerOption {
	return func(s *Synthesizer) {
		s.deleteRange = r
	}
}

// WithSynthesizerLogger sets the logger.
func WithSynthesizerLogger(logger *slog.Logger) SynthesizerOption {
	return func(s *Synthesizer) {
		s.logger = logger
	}
}

// NewSynthesizer creates a Synthesizer over the full ordered subject list.
// offset is the worker's first index into subjects; the worker owns the
// contiguous slice starting there. rng drives all random choices for this
// worker, so a fixed seed reproduces the stream exactly.
func NewSynthesizer(client *store.Client, gen *rdf.Generator, subjects []quad.IRI, offset int, rng *rand.Rand, opts ...SynthesizerOption) *Synthesizer {
	s := &Synthesizer{
		client:      client,
		gen:         gen,
		rng:         rng,
		subjects:    subjects,
		offset:      offset,
		insertRange: Range{Min: 1, Max: 10},
		deleteRange: Range{Min: 1, Max: 10},
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ops = map[Kind]func(context.Context, quad.IRI) (*Record, error){
		KindInsertData: s.insertData,
		KindDeleteData: s.deleteData,
		KindGspPost:    s.gspPost,
		KindGspPut:     s.gspPut,
		KindGspDelete:  s.gspDelete,
	}
	return s
}

// Step runs the next operation: draws a kind, selects a subject, executes
// the request, and captures the post-condition snapshot. It either returns
// a complete record or an error; there are no partial records and no
// retries, so every returned record truthfully reflects the store state
// right after its own request.
func (s *Synthesizer) Step(ctx context.Context) (*Record, error) {
	kind := s.drawKind()
	subject, err := s.selectSubject(kind)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Synthesizing operation",
		slog.Int("step", s.step),
		slog.Int("offset", s.offset),
		slog.String("kind", string(kind)),
		slog.String("subject", string(subject)))

	record, err := s.ops[kind](ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("%s on %s: %w", kind, subject, err)
	}

	s.step++
	return record, nil
}

// drawKind picks the next operation kind. While no subject has been
// introduced anywhere in the run prefix visible to this worker, the kind is
// forced to InsertData: reuse kinds would have an empty subject pool, and
// the run's very first operation must create store state for everything
// that follows. This covers the global first step and never wraps around.
func (s *Synthesizer) drawKind() Kind {
	if s.offset+s.step == 0 {
		return KindInsertData
	}
	return Kinds[s.rng.IntN(len(Kinds))]
}

// selectSubject applies the kind's subject policy. Introducing kinds take
// the next never-used subject in slice order; reuse kinds draw uniformly
// from every subject at an index before this step.
func (s *Synthesizer) selectSubject(kind Kind) (quad.IRI, error) {
	if kind.Reuses() {
		pool := s.offset + s.step
		if pool == 0 {
			return "", &PreconditionError{Reason: "reuse operation drawn before any subject was introduced"}
		}
		return s.subjects[s.rng.IntN(pool)], nil
	}

	next := s.offset + s.step
	if next >= len(s.subjects) {
		return "", &PreconditionError{Reason: fmt.Sprintf("subject list exhausted at index %d", next)}
	}
	return s.subjects[next], nil
}

// insertData inserts generated triples into the default graph and, restated
// about the canonical graph subject, into the named graph keyed by the
// subject's IRI. Both inserts travel in one SPARQL Update request.
func (s *Synthesizer) insertData(ctx context.Context, subject quad.IRI) (*Record, error) {
	triples, err := s.gen.Generate(s.insertRange.Draw(s.rng), subject)
	if err != nil {
		return nil, err
	}

	defaultNT, err := rdf.Serialize(triples)
	if err != nil {
		return nil, err
	}
	namedNT, err := rdf.Serialize(rdf.Reassert(triples, quad.IRI(vocab.GraphSubject)))
	if err != nil {
		return nil, err
	}

	body := fmt.Sprintf("INSERT DATA { %s };INSERT DATA { GRAPH %s { %s } }", defaultNT, subject, namedNT)
	if err := s.client.Update(ctx, body); err != nil {
		return nil, err
	}

	validation, err := s.client.Snapshot(ctx, store.ScopeBoth, subject)
	if err != nil {
		return nil, err
	}

	return &Record{
		Subject:     string(subject),
		Operation:   KindInsertData,
		Endpoint:    EndpointUpdate,
		Method:      MethodPost,
		QueryParams: map[string]string{},
		Headers:     map[string]string{"Content-Type": store.ContentTypeSPARQLUpdate},
		Body:        body,
		Validate:    validation,
	}, nil
}

// deleteData fetches up to n of the subject's default-graph triples with a
// bounded CONSTRUCT and deletes exactly that text. Nothing else touches the
// subject between fetch and delete; the worker is single-threaded.
func (s *Synthesizer) deleteData(ctx context.Context, subject quad.IRI) (*Record, error) {
	fetchQuery := store.DefaultGraphQueryWithLimit(subject, s.deleteRange.Draw(s.rng))
	victims, err := s.client.Query(ctx, fetchQuery)
	if err != nil {
		return nil, err
	}

	body := fmt.Sprintf("DELETE DATA { %s }", victims)
	if err := s.client.Update(ctx, body); err != nil {
		return nil, err
	}

	validation, err := s.client.Snapshot(ctx, store.ScopeDefault, subject)
	if err != nil {
		return nil, err
	}

	return &Record{
		Subject:     string(subject),
		Operation:   KindDeleteData,
		Endpoint:    EndpointUpdate,
		Method:      MethodPost,
		QueryParams: map[string]string{},
		Headers:     map[string]string{"Content-Type": store.ContentTypeSPARQLUpdate},
		Body:        body,
		Validate:    validation,
	}, nil
}

// gspPost appends generated triples via GSP POST. The store materializes
// them in both the default graph and the named graph, so the snapshot
// covers both scopes.
func (s *Synthesizer) gspPost(ctx context.Context, subject quad.IRI) (*Record, error) {
	body, err := s.generateBody(subject)
	if err != nil {
		return nil, err
	}
	if err := s.client.GSPPost(ctx, subject, body); err != nil {
		return nil, err
	}

	validation, err := s.client.Snapshot(ctx, store.ScopeBoth, subject)
	if err != nil {
		return nil, err
	}
	return s.gspRecord(KindGspPost, MethodPost, subject, body, validation), nil
}

// gspPut replaces the subject's named graph via GSP PUT.
func (s *Synthesizer) gspPut(ctx context.Context, subject quad.IRI) (*Record, error) {
	body, err := s.generateBody(subject)
	if err != nil {
		return nil, err
	}
	if err := s.client.GSPPut(ctx, subject, body); err != nil {
		return nil, err
	}

	validation, err := s.client.Snapshot(ctx, store.ScopeNamed, subject)
	if err != nil {
		return nil, err
	}
	return s.gspRecord(KindGspPut, MethodPut, subject, body, validation), nil
}

// gspDelete drops the subject's named graph via GSP DELETE. Deleting an
// absent graph succeeds, so the kind is safe against subjects whose named
// graph was never created.
func (s *Synthesizer) gspDelete(ctx context.Context, subject quad.IRI) (*Record, error) {
	if err := s.client.GSPDelete(ctx, subject); err != nil {
		return nil, err
	}

	validation, err := s.client.Snapshot(ctx, store.ScopeNamed, subject)
	if err != nil {
		return nil, err
	}
	return &Record{
		Subject:     string(subject),
		Operation:   KindGspDelete,
		Endpoint:    EndpointGSP,
		Method:      MethodDelete,
		QueryParams: map[string]string{"graph": string(subject)},
		Headers:     map[string]string{},
		Validate:    validation,
	}, nil
}

// generateBody serializes a fresh triple batch for the GSP inserting kinds.
func (s *Synthesizer) generateBody(subject quad.IRI) (string, error) {
	triples, err := s.gen.Generate(s.insertRange.Draw(s.rng), subject)
	if err != nil {
		return "", err
	}
	return rdf.Serialize(triples)
}

func (s *Synthesizer) gspRecord(kind Kind, method Method, subject quad.IRI, body string, validation store.Validation) *Record {
	return &Record{
		Subject:     string(subject),
		Operation:   kind,
		Endpoint:    EndpointGSP,
		Method:      method,
		QueryParams: map[string]string{"graph": string(subject)},
		Headers:     map[string]string{"Content-Type": store.ContentTypeNTriples},
		Body:        body,
		Validate:    validation,
	}
}
