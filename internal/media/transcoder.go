package media

import (
	"context"
	"fmt"
)

// Transcoder converts a video file on disk into a different container/codec/audio
// configuration. Implementations may shell out to a local tool or call a remote
// transcoding service; callers depend only on this interface.
type Transcoder interface {
	// Convert reads src, writes exactly one output file at dst in the given
	// format, including or stripping the audio stream per withAudio. GIF output
	// ignores withAudio since the container carries no audio.
	Convert(ctx context.Context, src, dst string, format Format, withAudio bool) error
}

// Prober answers read-only metadata queries about a video file.
type Prober interface {
	// Duration returns the source duration in seconds.
	Duration(ctx context.Context, path string) (float64, error)
}

// Trimmer produces a sub-interval copy of a source video.
type Trimmer interface {
	// Trim re-encodes the [start, end) interval of src (seconds) into dst.
	// Re-encoding rather than stream-copying guarantees the boundaries land
	// exactly on the requested timestamps.
	Trim(ctx context.Context, src, dst string, start, end float64) error
}

// Engine bundles the capabilities the pipeline needs from the media tool.
type Engine interface {
	Transcoder
	Prober
	Trimmer
}

// TranscodeError reports a failed media tool invocation, carrying the tool's
// diagnostic output.
type TranscodeError struct {
	Op     string // "convert", "trim" or "probe"
	Output string // stderr from the tool, trimmed
	Err    error
}

func (e *TranscodeError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("media %s failed: %v: %s", e.Op, e.Err, e.Output)
	}
	return fmt.Sprintf("media %s failed: %v", e.Op, e.Err)
}

func (e *TranscodeError) Unwrap() error {
	return e.Err
}
