// Package file implements the evolution log as an append-only JSONL
// file: one JSON object per line, created if absent, never truncated.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aget-labs/bridge-cli/internal/core/domain"
	"github.com/aget-labs/bridge-cli/internal/core/ports/driven"
)

// Ensure Log implements the interface.
var _ driven.EvolutionLog = (*Log)(nil)

// Log appends extraction records to a JSONL file.
type Log struct {
	path string
}

// NewLog creates a log writer for the given path. The file and its
// parent directories are created on first append.
func NewLog(path string) *Log {
	return &Log{path: path}
}

// Path returns the log file path.
func (l *Log) Path() string {
	return l.path
}

// Append writes one entry to the end of the log.
func (l *Log) Append(_ context.Context, entry domain.EvolutionLogEntry) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("creating evolution log directory: %w", err)
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding evolution log entry: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening evolution log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("appending evolution log entry: %w", err)
	}
	return nil
}
