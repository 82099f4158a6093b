package media

import (
	"os"
	"path/filepath"
)

// Workspace is a uniquely-named temporary directory scoped to one request.
// Acquire it at the top of a handler and defer Close; every exit path,
// including panics, then removes the directory and everything in it.
// Uniqueness comes from os.MkdirTemp, so concurrent requests never collide.
type Workspace struct {
	Dir string
}

// NewWorkspace creates a fresh temp directory under parent (os.TempDir() when
// parent is empty) using the given name pattern.
func NewWorkspace(parent, pattern string) (*Workspace, error) {
	dir, err := os.MkdirTemp(parent, pattern)
	if err != nil {
		return nil, err
	}
	return &Workspace{Dir: dir}, nil
}

// Path returns the absolute path for a file name inside the workspace.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.Dir, name)
}

// Close removes the workspace directory recursively.
func (w *Workspace) Close() error {
	return os.RemoveAll(w.Dir)
}
