// Package main provides the graphload binary entry point.
// Graphload generates a reproducible randomized mutation workload against an
// RDF store and records, for every operation, the request that was sent and
// a post-condition snapshot for later replay verification.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/cayleygraph/quad"
	"github.com/spf13/cobra"

	"github.com/c360studio/graphload/config"
	"github.com/c360studio/graphload/rdf"
	"github.com/c360studio/graphload/store"
	vocab "github.com/c360studio/graphload/vocabulary/graphload"
	"github.com/c360studio/graphload/workload"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "graphload"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
		workers    int
		ops        int
		seed       uint64
		parallel   bool
		skipReset  bool
	)

	cmd := &cobra.Command{
		Use:   appName + " <ntriples-file> <output-dir> <query-url> <update-url> <graph-store-url>",
		Short: "RDF store mutation-workload generator",
		Long: `Graphload generates a randomized stream of SPARQL Update and Graph Store
Protocol mutations against an RDF store. Each operation is executed against
the store and written to <output-dir>/worker_<w>/op_<i>.json together with a
CONSTRUCT query and its post-operation result, so a separate harness can
replay the log and verify the store's state.

The subject universe is read from the N-Triples seed file: every subject
typed as <` + vocab.SubjectType + `> becomes a workload subject. The store is
reset (DROP ALL + seed load) before generation unless --skip-reset is given.`,
		Version: Version,
		Args:    cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd, configPath, logLevel, workers, ops, seed, parallel, skipReset)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, logger, args)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "number of worker streams (default from config: 4)")
	cmd.Flags().IntVarP(&ops, "ops", "n", 0, "operations per worker (default from config: 20)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 = derive from clock)")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "run workers concurrently (isolated stores only)")
	cmd.Flags().BoolVar(&skipReset, "skip-reset", false, "skip DROP ALL and seed load at start")

	cmd.SetContext(signalContext())
	return cmd
}

// loadConfig layers file config under flag overrides and sets up logging.
func loadConfig(cmd *cobra.Command, configPath, logLevel string, workers, ops int, seed uint64, parallel, skipReset bool) (*config.Config, *slog.Logger, error) {
	logger, err := newLogger(logLevel)
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(logger)

	cfg, err := config.NewLoader(logger).Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	if cmd.Flags().Changed("workers") {
		cfg.Workload.Workers = workers
	}
	if cmd.Flags().Changed("ops") {
		cfg.Workload.OpsPerWorker = ops
	}
	if cmd.Flags().Changed("seed") {
		cfg.Workload.Seed = seed
	}
	if parallel {
		cfg.Workload.Parallel = true
	}
	if skipReset {
		cfg.Workload.SkipReset = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler), nil
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, args []string) error {
	seedFile, outputDir := args[0], args[1]
	cfg.Endpoints.Query = args[2]
	cfg.Endpoints.Update = args[3]
	cfg.Endpoints.GraphStore = args[4]

	if cfg.Workload.Seed == 0 {
		cfg.Workload.Seed = uint64(time.Now().UnixNano())
	}
	logger.Info("Starting workload generation",
		slog.Uint64("seed", cfg.Workload.Seed),
		slog.Int("workers", cfg.Workload.Workers),
		slog.Int("ops_per_worker", cfg.Workload.OpsPerWorker),
		slog.Bool("parallel", cfg.Workload.Parallel))

	client := store.New(cfg.Endpoints.Query, cfg.Endpoints.Update, cfg.Endpoints.GraphStore,
		store.WithLogger(logger),
		store.WithHTTPClient(&http.Client{Timeout: cfg.Endpoints.Timeout}))

	if !cfg.Workload.SkipReset {
		if err := client.Reset(ctx, seedFile); err != nil {
			return fmt.Errorf("reset store: %w", err)
		}
	}

	subjects, err := rdf.SubjectsFromFile(seedFile, quad.IRI(vocab.SubjectType))
	if err != nil {
		return err
	}
	logger.Info("Extracted subject universe", slog.Int("subjects", len(subjects)))

	driver := workload.NewDriver(client, workload.DriverConfig{
		OutputDir:     outputDir,
		Workers:       cfg.Workload.Workers,
		OpsPerWorker:  cfg.Workload.OpsPerWorker,
		Seed:          cfg.Workload.Seed,
		Parallel:      cfg.Workload.Parallel,
		InsertRange:   workload.Range{Min: cfg.Workload.Insert.Min, Max: cfg.Workload.Insert.Max},
		DeleteRange:   workload.Range{Min: cfg.Workload.Delete.Min, Max: cfg.Workload.Delete.Max},
		QueryURL:      cfg.Endpoints.Query,
		UpdateURL:     cfg.Endpoints.Update,
		GraphStoreURL: cfg.Endpoints.GraphStore,
	}, workload.WithDriverLogger(logger))

	return driver.Run(ctx, subjects)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return ctx
}
