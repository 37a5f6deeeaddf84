// Package progress tracks which input files have been fully ingested and
// persists that ledger as a JSON checkpoint so interrupted runs can resume
// without reprocessing completed work.
package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// State is the durable run ledger. Only fully ingested files are recorded:
// a file either appears in ProcessedFiles with all its lines counted, or it
// does not appear at all. A single RWMutex guards every mutation, and every
// mutation is followed by a save.
type State struct {
	mu sync.RWMutex

	InputFile       string   `json:"input_file"`
	OutputFile      string   `json:"output_file"`
	Threads         int      `json:"threads"`
	ProcessedFiles  []string `json:"processed_files"`
	CurrentPosition int64    `json:"current_position"`

	savePath string
}

// New creates a fresh state for a run. savePath may be empty, in which case
// saves are no-ops (no checkpointing requested).
func New(inputFile, outputFile string, threads int, savePath string) *State {
	return &State{
		InputFile:      inputFile,
		OutputFile:     outputFile,
		Threads:        threads,
		ProcessedFiles: []string{},
		savePath:       savePath,
	}
}

// Load reconstructs a state from a previously saved checkpoint and re-attaches
// the save path so future saves update the same file.
func Load(path string) (*State, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read progress file %s: %w", path, err)
	}

	var s State
	if err := json.Unmarshal(content, &s); err != nil {
		return nil, fmt.Errorf("progress file %s is corrupted: %w", path, err)
	}
	if s.ProcessedFiles == nil {
		s.ProcessedFiles = []string{}
	}
	s.savePath = path
	return &s, nil
}

// Save serializes the state to its configured path. Safe to call
// concurrently with mutation. The write lock serializes saves: they share a
// single temp file, and interleaved writers would corrupt it before the
// rename. The write goes through a temp file and rename so an interrupt
// mid-save never leaves a truncated checkpoint.
func (s *State) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *State) saveLocked() error {
	if s.savePath == "" {
		return nil
	}

	content, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize progress: %w", err)
	}

	tmp := s.savePath + ".tmp"
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return fmt.Errorf("failed to write progress file: %w", err)
	}
	if err := os.Rename(tmp, s.savePath); err != nil {
		return fmt.Errorf("failed to replace progress file: %w", err)
	}
	return nil
}

// MarkProcessed atomically records a fully ingested file: appends the path,
// advances the cumulative line count, and persists the checkpoint.
func (s *State) MarkProcessed(path string, lineCount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ProcessedFiles = append(s.ProcessedFiles, path)
	s.CurrentPosition += lineCount
	return s.saveLocked()
}

// IsProcessed reports whether path was already fully ingested.
func (s *State) IsProcessed(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.ProcessedFiles {
		if p == path {
			return true
		}
	}
	return false
}

// ProcessedSet returns the completed paths as a set for resume filtering.
func (s *State) ProcessedSet() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := make(map[string]struct{}, len(s.ProcessedFiles))
	for _, p := range s.ProcessedFiles {
		set[p] = struct{}{}
	}
	return set
}

// Position returns the cumulative line count across processed files.
func (s *State) Position() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.CurrentPosition
}

// SavePath returns the checkpoint location, empty when checkpointing is off.
func (s *State) SavePath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.savePath
}
