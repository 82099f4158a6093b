package service

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"memegrid/meme-app/internal/media"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngine implements media.Engine without invoking any binary. Trim copies
// the input bytes to the output path, so each request's result mirrors its
// own upload.
type fakeEngine struct {
	duration    float64
	durationErr error
	trimErr     error

	mu        sync.Mutex
	trimCalls int
}

func (f *fakeEngine) Duration(_ context.Context, _ string) (float64, error) {
	return f.duration, f.durationErr
}

func (f *fakeEngine) Trim(_ context.Context, src, dst string, _, _ float64) error {
	f.mu.Lock()
	f.trimCalls++
	f.mu.Unlock()
	if f.trimErr != nil {
		return f.trimErr
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o600)
}

func (f *fakeEngine) Convert(_ context.Context, src, dst string, _ media.Format, _ bool) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o600)
}

func requireEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp workspace should be removed")
}

func TestTrimValidRange(t *testing.T) {
	tempDir := t.TempDir()
	engine := &fakeEngine{duration: 10}
	svc := NewTrimService(engine, tempDir)

	out, err := svc.Trim(context.Background(), []byte("ten second clip"), "2", "5")
	require.NoError(t, err)
	assert.Equal(t, []byte("ten second clip"), out)
	assert.Equal(t, 1, engine.trimCalls)
	requireEmptyDir(t, tempDir)
}

func TestTrimStartNotBeforeEnd(t *testing.T) {
	tempDir := t.TempDir()
	engine := &fakeEngine{duration: 10}
	svc := NewTrimService(engine, tempDir)

	_, err := svc.Trim(context.Background(), []byte("clip"), "5", "2")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTrimRange)
	assert.Contains(t, err.Error(), "start < end")
	assert.Zero(t, engine.trimCalls, "no encode should be attempted on invalid input")
	requireEmptyDir(t, tempDir)
}

func TestTrimEndBeyondDuration(t *testing.T) {
	tempDir := t.TempDir()
	svc := NewTrimService(&fakeEngine{duration: 10}, tempDir)

	_, err := svc.Trim(context.Background(), []byte("clip"), "2", "15")
	assert.ErrorIs(t, err, ErrInvalidTrimRange)
	requireEmptyDir(t, tempDir)
}

func TestTrimNegativeStart(t *testing.T) {
	svc := NewTrimService(&fakeEngine{duration: 10}, t.TempDir())

	_, err := svc.Trim(context.Background(), []byte("clip"), "-1", "5")
	assert.ErrorIs(t, err, ErrInvalidTrimRange)
}

func TestTrimNonNumericTimes(t *testing.T) {
	tempDir := t.TempDir()
	svc := NewTrimService(&fakeEngine{duration: 10}, tempDir)

	_, err := svc.Trim(context.Background(), []byte("clip"), "abc", "5")
	assert.ErrorIs(t, err, ErrInvalidTrimRange)

	_, err = svc.Trim(context.Background(), []byte("clip"), "1", "xyz")
	assert.ErrorIs(t, err, ErrInvalidTrimRange)
	requireEmptyDir(t, tempDir)
}

func TestTrimEmptyUpload(t *testing.T) {
	svc := NewTrimService(&fakeEngine{duration: 10}, t.TempDir())

	_, err := svc.Trim(context.Background(), nil, "1", "2")
	assert.ErrorIs(t, err, ErrInvalidTrimRange)
}

func TestTrimProbeFailureCleansUp(t *testing.T) {
	tempDir := t.TempDir()
	probeErr := &media.TranscodeError{Op: "probe", Err: errors.New("exit status 1")}
	svc := NewTrimService(&fakeEngine{durationErr: probeErr}, tempDir)

	_, err := svc.Trim(context.Background(), []byte("clip"), "1", "2")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidTrimRange)
	requireEmptyDir(t, tempDir)
}

func TestTrimEncodeFailureCleansUp(t *testing.T) {
	tempDir := t.TempDir()
	trimErr := &media.TranscodeError{Op: "trim", Output: "boom", Err: errors.New("exit status 1")}
	svc := NewTrimService(&fakeEngine{duration: 10, trimErr: trimErr}, tempDir)

	_, err := svc.Trim(context.Background(), []byte("clip"), "1", "2")
	require.Error(t, err)
	var tErr *media.TranscodeError
	assert.ErrorAs(t, err, &tErr)
	requireEmptyDir(t, tempDir)
}

func TestTrimConcurrentRequestsAreIndependent(t *testing.T) {
	tempDir := t.TempDir()
	svc := NewTrimService(&fakeEngine{duration: 10}, tempDir)

	inputs := [][]byte{[]byte("first upload"), []byte("second upload")}
	results := make([][]byte, len(inputs))
	errs := make([]error, len(inputs))

	var wg sync.WaitGroup
	for i, in := range inputs {
		wg.Add(1)
		go func(i int, in []byte) {
			defer wg.Done()
			results[i], errs[i] = svc.Trim(context.Background(), in, "0", "5")
		}(i, in)
	}
	wg.Wait()

	for i := range inputs {
		require.NoError(t, errs[i])
		assert.Equal(t, inputs[i], results[i], "each request must see only its own upload")
	}
	requireEmptyDir(t, tempDir)
}
