package media

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// FFmpeg implements Engine by shelling out to the ffmpeg/ffprobe binaries.
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
}

// NewFFmpeg creates an FFmpeg engine. Empty paths fall back to looking the
// binaries up on PATH.
func NewFFmpeg(ffmpegPath, ffprobePath string) *FFmpeg {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &FFmpeg{ffmpegPath: ffmpegPath, ffprobePath: ffprobePath}
}

// convertArgs builds the ffmpeg argument list for a format/audio combination.
// Kept separate from Convert so the command construction is testable without
// invoking the binary.
func convertArgs(src, dst string, format Format, withAudio bool) ([]string, error) {
	switch format {
	case FormatMP4:
		if withAudio {
			return []string{"-i", src, "-c:v", "libx264", "-c:a", "aac", "-crf", "23", "-y", dst}, nil
		}
		return []string{"-i", src, "-c:v", "libx264", "-an", "-crf", "23", "-y", dst}, nil
	case FormatWEBM:
		if withAudio {
			return []string{"-i", src, "-c:v", "libvpx-vp9", "-c:a", "libopus", "-y", dst}, nil
		}
		return []string{"-i", src, "-c:v", "libvpx-vp9", "-an", "-y", dst}, nil
	case FormatGIF:
		// GIF carries no audio, withAudio is ignored. Downsample to keep
		// output sizes sane.
		return []string{"-i", src, "-vf", "fps=10,scale=320:-1:flags=lanczos", "-y", dst}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// trimArgs builds the ffmpeg argument list for a trim. Seeking before the
// input (-ss before -i) gives fast seeks; re-encoding with libx264/aac makes
// the interval boundaries exact.
func trimArgs(src, dst string, start, end float64) []string {
	return []string{
		"-ss", formatSeconds(start),
		"-i", src,
		"-to", formatSeconds(end - start),
		"-c:v", "libx264",
		"-c:a", "aac",
		"-y", dst,
	}
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// Convert re-encodes src into dst in the requested format. A single attempt,
// no retry; the caller decides any fallback behavior.
func (f *FFmpeg) Convert(ctx context.Context, src, dst string, format Format, withAudio bool) error {
	args, err := convertArgs(src, dst, format, withAudio)
	if err != nil {
		return err
	}
	return f.run(ctx, "convert", args)
}

// Trim writes the [start, end) interval of src to dst as MP4.
func (f *FFmpeg) Trim(ctx context.Context, src, dst string, start, end float64) error {
	return f.run(ctx, "trim", trimArgs(src, dst, start, end))
}

// Duration probes the source duration in seconds via ffprobe.
func (f *FFmpeg) Duration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, f.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return 0, &TranscodeError{Op: "probe", Output: strings.TrimSpace(stderr.String()), Err: err}
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(stdout.String()), 64)
	if err != nil {
		return 0, &TranscodeError{Op: "probe", Output: strings.TrimSpace(stdout.String()), Err: err}
	}
	return duration, nil
}

func (f *FFmpeg) run(ctx context.Context, op string, args []string) error {
	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &TranscodeError{Op: op, Output: strings.TrimSpace(stderr.String()), Err: err}
	}
	return nil
}
