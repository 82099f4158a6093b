package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"memegrid/meme-app/internal/media"
)

// --- Error Definitions ---
var (
	// ErrInvalidTrimRange covers unparseable times and intervals that violate
	// 0 <= start < end <= duration. It maps to a 400 at the API layer.
	ErrInvalidTrimRange = errors.New("invalid trim times: start must be >= 0, end must be <= duration, and start < end")
)

type TrimService interface {
	// Trim produces a trimmed MP4 copy of the uploaded bytes. Nothing is
	// persisted; the result lives only in the response. Every failure is
	// surfaced to the caller, never silently degraded, because a wrong trim
	// is worse than an error.
	Trim(ctx context.Context, data []byte, startTime, endTime string) ([]byte, error)
}

// trimService implements the TrimService interface.
type trimService struct {
	engine  media.Engine
	tempDir string
}

// NewTrimService creates a new instance of trimService. tempDir may be empty
// to use the OS default temp directory.
func NewTrimService(engine media.Engine, tempDir string) TrimService {
	return &trimService{engine: engine, tempDir: tempDir}
}

func (s *trimService) Trim(ctx context.Context, data []byte, startTime, endTime string) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no file provided", ErrInvalidTrimRange)
	}

	// Scoped workspace: unique per request, removed on every exit path.
	ws, err := media.NewWorkspace(s.tempDir, "video-trim-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp workspace: %w", err)
	}
	defer ws.Close()

	inputPath := ws.Path("input.mp4")
	outputPath := ws.Path("output.mp4")

	if err := os.WriteFile(inputPath, data, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write upload to workspace: %w", err)
	}

	// Probe the source duration so the interval can be validated before any
	// encoding work starts.
	duration, err := s.engine.Duration(ctx, inputPath)
	if err != nil {
		return nil, err
	}

	start, err := strconv.ParseFloat(startTime, 64)
	if err != nil {
		return nil, fmt.Errorf("%w (start time %q is not a number)", ErrInvalidTrimRange, startTime)
	}
	end, err := strconv.ParseFloat(endTime, 64)
	if err != nil {
		return nil, fmt.Errorf("%w (end time %q is not a number)", ErrInvalidTrimRange, endTime)
	}

	// Violations are a validation failure, not a silent clamp.
	if start < 0 || start >= end || end > duration {
		return nil, fmt.Errorf("%w (start=%g end=%g duration=%g)", ErrInvalidTrimRange, start, end, duration)
	}

	if err := s.engine.Trim(ctx, inputPath, outputPath, start, end); err != nil {
		return nil, err
	}

	trimmed, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read trimmed output: %w", err)
	}
	return trimmed, nil
}
