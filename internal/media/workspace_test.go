package media

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceLifecycle(t *testing.T) {
	parent := t.TempDir()

	ws, err := NewWorkspace(parent, "video-trim-")
	require.NoError(t, err)

	assert.DirExists(t, ws.Dir)
	assert.Equal(t, filepath.Join(ws.Dir, "input.mp4"), ws.Path("input.mp4"))

	// Files inside the workspace go away with it.
	require.NoError(t, os.WriteFile(ws.Path("input.mp4"), []byte("data"), 0o600))

	require.NoError(t, ws.Close())
	assert.NoDirExists(t, ws.Dir)
}

func TestWorkspaceUniqueness(t *testing.T) {
	parent := t.TempDir()

	a, err := NewWorkspace(parent, "video-trim-")
	require.NoError(t, err)
	defer a.Close()

	b, err := NewWorkspace(parent, "video-trim-")
	require.NoError(t, err)
	defer b.Close()

	assert.NotEqual(t, a.Dir, b.Dir)
}

func TestWorkspaceDefaultParent(t *testing.T) {
	ws, err := NewWorkspace("", "video-trim-")
	require.NoError(t, err)
	defer ws.Close()

	assert.DirExists(t, ws.Dir)
}
