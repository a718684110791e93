package workload

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// manifestFile is written next to the worker directories.
const manifestFile = "run.json"

// Manifest records run provenance for the replay harness: which seed and
// endpoints produced the operation log, and when.
type Manifest struct {
	RunID         string    `json:"run_id"`
	Seed          uint64    `json:"seed"`
	Workers       int       `json:"workers"`
	OpsPerWorker  int       `json:"ops_per_worker"`
	Subjects      int       `json:"subjects"`
	QueryURL      string    `json:"query_url"`
	UpdateURL     string    `json:"update_url"`
	GraphStoreURL string    `json:"graph_store_url"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
}

// write persists the manifest to outputDir/run.json.
func (m *Manifest) write(outputDir string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run manifest: %w", err)
	}
	path := filepath.Join(outputDir, manifestFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write run manifest: %w", err)
	}
	return nil
}
