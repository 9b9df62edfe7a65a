package state

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bft-labs/syslogship/internal/domain"
)

// DefaultFileName is the state file used when none is configured.
const DefaultFileName = ".last_run"

// ErrCorruptState wraps read and parse failures returned by Load.
var ErrCorruptState = domain.ErrCorruptState

// FileRepository stores the watermark in a plain text file.
type FileRepository struct {
	path string
}

// NewFileRepository creates a new FileRepository for the given state file path.
func NewFileRepository(path string) *FileRepository {
	if path == "" {
		path = DefaultFileName
	}
	return &FileRepository{path: path}
}

// Load retrieves the watermark from disk.
// A missing file is created empty (with its parent directories) and yields
// an empty watermark.
func (r *FileRepository) Load(ctx context.Context) (Watermark, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if err := r.touch(); err != nil {
				return Watermark{}, fmt.Errorf("%w: create %s: %v", ErrCorruptState, r.path, err)
			}
			return Watermark{}, nil
		}
		return Watermark{}, fmt.Errorf("%w: read %s: %v", ErrCorruptState, r.path, err)
	}

	wm, err := ParseWatermark(string(data))
	if err != nil {
		return Watermark{}, fmt.Errorf("%w: %s: %v", ErrCorruptState, r.path, err)
	}
	return wm, nil
}

// Save persists the watermark atomically.
// Uses atomic write (write to temp file, then rename) to prevent corruption.
func (r *FileRepository) Save(ctx context.Context, wm Watermark) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return err
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(wm.String()), 0o644); err != nil {
		return err
	}

	// Atomic rename
	if err := os.Rename(tmp, r.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Path returns the full path to the state file.
func (r *FileRepository) Path() string {
	return r.path
}

func (r *FileRepository) touch() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}
