package workload

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/cayleygraph/quad"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/c360studio/graphload/rdf"
	"github.com/c360studio/graphload/store"
)

// DriverConfig holds the run parameters of a Driver.
type DriverConfig struct {
	// OutputDir receives worker_<w>/op_<i>.json files and the run manifest.
	OutputDir string

	// Workers is the number of independent operation streams.
	Workers int

	// OpsPerWorker is the number of operations each worker generates.
	OpsPerWorker int

	// Seed drives all random choices. Worker w derives its own generator
	// from (Seed, w), so streams are reproducible under any scheduling.
	Seed uint64

	// Parallel runs workers concurrently. Reuse kinds may then touch
	// subjects of slices another worker is still mutating, so parallel
	// runs are only sound against isolated store instances.
	Parallel bool

	// InsertRange and DeleteRange bound per-operation triple counts.
	InsertRange Range
	DeleteRange Range

	// Endpoint URLs, recorded in the run manifest.
	QueryURL      string
	UpdateURL     string
	GraphStoreURL string
}

// Driver partitions the subject universe into contiguous per-worker slices
// and drives each slice through a Synthesizer, persisting one JSON record
// per operation.
type Driver struct {
	client *store.Client
	gen    *rdf.Generator
	cfg    DriverConfig
	logger *slog.Logger
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithDriverLogger sets the logger.
func WithDriverLogger(logger *slog.Logger) DriverOption {
	return func(d *Driver) {
		d.logger = logger
	}
}

// WithGenerator overrides the triple generator. The default shares one
// atomic counter across all workers, which is what run-global object
// uniqueness requires.
func WithGenerator(gen *rdf.Generator) DriverOption {
	return func(d *Driver) {
		d.gen = gen
	}
}

// NewDriver creates a Driver.
func NewDriver(client *store.Client, cfg DriverConfig, opts ...DriverOption) *Driver {
	d := &Driver{
		client: client,
		gen:    rdf.NewGenerator(),
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.cfg.InsertRange == (Range{}) {
		d.cfg.InsertRange = Range{Min: 1, Max: 10}
	}
	if d.cfg.DeleteRange == (Range{}) {
		d.cfg.DeleteRange = Range{Min: 1, Max: 10}
	}
	return d
}

// Run generates the full workload. The subject list must hold at least
// Workers x OpsPerWorker entries; a shortfall fails before any HTTP call.
// Any store failure aborts the run; completed records on disk remain valid
// because each was snapshotted before the failing step began.
func (d *Driver) Run(ctx context.Context, subjects []quad.IRI) error {
	required := d.cfg.Workers * d.cfg.OpsPerWorker
	if len(subjects) < required {
		return insufficientSubjects(d.cfg.Workers, d.cfg.OpsPerWorker, len(subjects))
	}

	if err := os.MkdirAll(d.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	manifest := &Manifest{
		RunID:         uuid.NewString(),
		Seed:          d.cfg.Seed,
		Workers:       d.cfg.Workers,
		OpsPerWorker:  d.cfg.OpsPerWorker,
		Subjects:      len(subjects),
		QueryURL:      d.cfg.QueryURL,
		UpdateURL:     d.cfg.UpdateURL,
		GraphStoreURL: d.cfg.GraphStoreURL,
		StartedAt:     time.Now().UTC(),
	}

	g, ctx := errgroup.WithContext(ctx)
	if d.cfg.Parallel {
		g.SetLimit(d.cfg.Workers)
	} else {
		g.SetLimit(1)
	}
	for w := 0; w < d.cfg.Workers; w++ {
		g.Go(func() error {
			return d.runWorker(ctx, subjects, w)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	manifest.FinishedAt = time.Now().UTC()
	if err := manifest.write(d.cfg.OutputDir); err != nil {
		return err
	}

	d.logger.Info("Workload generation complete",
		slog.String("run_id", manifest.RunID),
		slog.Int("workers", d.cfg.Workers),
		slog.Int("ops_per_worker", d.cfg.OpsPerWorker))
	return nil
}

// runWorker drives one worker's sequential operation stream.
func (d *Driver) runWorker(ctx context.Context, subjects []quad.IRI, worker int) error {
	dir := filepath.Join(d.cfg.OutputDir, fmt.Sprintf("worker_%d", worker))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create worker directory: %w", err)
	}

	rng := rand.New(rand.NewPCG(d.cfg.Seed, uint64(worker)))
	syn := NewSynthesizer(d.client, d.gen, subjects, worker*d.cfg.OpsPerWorker, rng,
		WithInsertRange(d.cfg.InsertRange),
		WithDeleteRange(d.cfg.DeleteRange),
		WithSynthesizerLogger(d.logger))

	for i := 0; i < d.cfg.OpsPerWorker; i++ {
		record, err := syn.Step(ctx)
		if err != nil {
			return fmt.Errorf("worker %d step %d: %w", worker, i, err)
		}
		if err := writeRecord(dir, i, record); err != nil {
			return fmt.Errorf("worker %d step %d: %w", worker, i, err)
		}
	}

	d.logger.Debug("Worker finished", slog.Int("worker", worker))
	return nil
}

// writeRecord persists one operation record as op_<i>.json.
func writeRecord(dir string, index int, record *Record) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("op_%d.json", index))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}
