// If you are AI: This file manages the per-run temporary directory and final file moves.

package render

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
)

const (
	renameAttempts = 3
	renameDelay    = 200 * time.Millisecond
)

// workspace is the per-run directory for intermediate files.
type workspace struct {
	dir string
}

// newWorkspace creates root/runID; a relative root resolves against the working directory.
func newWorkspace(root, runID string) (*workspace, error) {
	if runID == "" {
		return nil, fmt.Errorf("workspace: empty run id")
	}
	dir, err := filepath.Abs(filepath.Join(root, runID))
	if err != nil {
		return nil, fmt.Errorf("workspace: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("workspace: %w", err)
	}
	return &workspace{dir: dir}, nil
}

// cleanup removes leftover files and, unless keep is set, the workspace itself.
func (w *workspace) cleanup(keep bool, leftovers ...string) error {
	var result *multierror.Error
	for _, p := range leftovers {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			result = multierror.Append(result, err)
		}
	}
	if !keep {
		if err := os.RemoveAll(w.dir); err != nil {
			result = multierror.Append(result, err)
		}
		parent := filepath.Dir(w.dir)
		if entries, err := os.ReadDir(parent); err == nil && len(entries) == 0 {
			_ = os.Remove(parent)
		}
	}
	return result.ErrorOrNil()
}

// renameWithRetry moves src to dst, retrying while the file may still be held open.
func renameWithRetry(src, dst string, attempts int, delay time.Duration) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = os.Rename(src, dst); err == nil {
			return nil
		}
		if i < attempts-1 {
			time.Sleep(delay)
		}
	}
	return fmt.Errorf("move %s to %s after %d attempts: %w", src, dst, attempts, err)
}
