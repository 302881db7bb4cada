// Package recovery persists pre-mutation stack checkpoints so an operator
// can restore a stack by hand after a mid-run crash.
package recovery

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"driftremediator/pkg/logging"
)

// Checkpoint captures everything needed to put a stack back the way it was
// before the run started mutating it.
type Checkpoint struct {
	RunID        string            `yaml:"runId"`
	StackName    string            `yaml:"stackName"`
	StackID      string            `yaml:"stackId,omitempty"`
	TemplateBody string            `yaml:"templateBody"`
	Parameters   map[string]string `yaml:"parameters,omitempty"`
	LogicalIDs   []string          `yaml:"logicalIds,omitempty"`
	SavedAt      time.Time         `yaml:"savedAt"`
}

// Store persists checkpoints
//
//go:generate mockery --name=Store --output=./mocks
type Store interface {
	// Save writes the checkpoint and returns the location it was written to.
	Save(checkpoint Checkpoint) (string, error)
}

// FileStore writes checkpoints as YAML files in a local directory.
type FileStore struct {
	dir    string
	logger logging.Logger
}

// NewFileStore creates a store rooted at dir, creating it if needed on save.
func NewFileStore(dir string, logger logging.Logger) *FileStore {
	if logger == nil {
		logger = logging.NewComponentLogger("recovery")
	}
	return &FileStore{dir: dir, logger: logger}
}

// Save writes the checkpoint to <dir>/<stack>-<run>-checkpoint.yaml. The
// file is written before any stack mutation, so a partial run always leaves
// a restorable template behind.
func (s *FileStore) Save(checkpoint Checkpoint) (string, error) {
	if checkpoint.SavedAt.IsZero() {
		checkpoint.SavedAt = time.Now().UTC()
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating checkpoint directory %s: %w", s.dir, err)
	}

	data, err := yaml.Marshal(checkpoint)
	if err != nil {
		return "", fmt.Errorf("encoding checkpoint: %w", err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%s-%s-checkpoint.yaml", checkpoint.StackName, checkpoint.RunID))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("writing checkpoint %s: %w", path, err)
	}

	s.logger.Info("Saved checkpoint for stack %s to %s", checkpoint.StackName, path)
	return path, nil
}

// Load reads a checkpoint file back. It exists for the operator-facing
// restore path and for verifying saved checkpoints in tests.
func Load(path string) (*Checkpoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading checkpoint %s: %w", path, err)
	}
	var checkpoint Checkpoint
	if err := yaml.Unmarshal(data, &checkpoint); err != nil {
		return nil, fmt.Errorf("decoding checkpoint %s: %w", path, err)
	}
	return &checkpoint, nil
}
