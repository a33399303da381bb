package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Repository persists the full state snapshot to a durable location.
//
// Save always writes the entire snapshot as one unit, never a delta, so a
// successful write is always internally consistent across collections.
type Repository interface {
	// Load reads the persisted snapshot. It returns (nil, nil) when no
	// prior snapshot exists; the caller is then expected to Save a default
	// snapshot so storage and memory never diverge.
	Load() (*Snapshot, error)

	// Save serializes the snapshot and overwrites the durable location.
	Save(snap *Snapshot) error
}

// FileRepository stores the snapshot as a single pretty-printed JSON
// document on disk, matching the layout the real device's companion tools
// read and write.
type FileRepository struct {
	path string
}

// NewFileRepository creates a repository writing to the given file path.
// Parent directories are created on first write.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// Path returns the file path this repository writes to.
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads and decodes the snapshot file.
// A missing file is not an error: it returns (nil, nil).
func (r *FileRepository) Load() (*Snapshot, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading snapshot file: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot file: %w", err)
	}

	// Collections may be absent in hand-edited files; normalise so callers
	// never see a nil variable map.
	if snap.Variables == nil {
		snap.Variables = make(map[string]string)
	}

	return &snap, nil
}

// Save overwrites the snapshot file with the full state graph.
func (r *FileRepository) Save(snap *Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o750); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.WriteFile(r.path, data, 0o600); err != nil {
		return fmt.Errorf("writing snapshot file: %w", err)
	}

	return nil
}
