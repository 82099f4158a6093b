package media

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertArgs(t *testing.T) {
	tests := []struct {
		name      string
		format    Format
		withAudio bool
		want      []string
	}{
		{
			name:      "mp4 with audio",
			format:    FormatMP4,
			withAudio: true,
			want:      []string{"-i", "in.mp4", "-c:v", "libx264", "-c:a", "aac", "-crf", "23", "-y", "out.mp4"},
		},
		{
			name:      "mp4 without audio",
			format:    FormatMP4,
			withAudio: false,
			want:      []string{"-i", "in.mp4", "-c:v", "libx264", "-an", "-crf", "23", "-y", "out.mp4"},
		},
		{
			name:      "webm with audio",
			format:    FormatWEBM,
			withAudio: true,
			want:      []string{"-i", "in.mp4", "-c:v", "libvpx-vp9", "-c:a", "libopus", "-y", "out.mp4"},
		},
		{
			name:      "webm without audio",
			format:    FormatWEBM,
			withAudio: false,
			want:      []string{"-i", "in.mp4", "-c:v", "libvpx-vp9", "-an", "-y", "out.mp4"},
		},
		{
			name:      "gif ignores audio flag",
			format:    FormatGIF,
			withAudio: true,
			want:      []string{"-i", "in.mp4", "-vf", "fps=10,scale=320:-1:flags=lanczos", "-y", "out.mp4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := convertArgs("in.mp4", "out.mp4", tt.format, tt.withAudio)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertArgsGIFAudioFlagIrrelevant(t *testing.T) {
	// GIF carries no audio stream, so both flag values build the same command.
	withAudio, err := convertArgs("a", "b", FormatGIF, true)
	require.NoError(t, err)
	withoutAudio, err := convertArgs("a", "b", FormatGIF, false)
	require.NoError(t, err)
	assert.Equal(t, withAudio, withoutAudio)
}

func TestConvertArgsUnsupportedFormat(t *testing.T) {
	_, err := convertArgs("a", "b", Format("AVI"), true)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestTrimArgs(t *testing.T) {
	got := trimArgs("in.mp4", "out.mp4", 2, 5)

	// Seek before input for fast seeks, duration-relative end, exact re-encode.
	assert.Equal(t, []string{
		"-ss", "2.000",
		"-i", "in.mp4",
		"-to", "3.000",
		"-c:v", "libx264",
		"-c:a", "aac",
		"-y", "out.mp4",
	}, got)
}

func TestTranscodeErrorMessage(t *testing.T) {
	base := errors.New("exit status 1")

	withOutput := &TranscodeError{Op: "convert", Output: "Unknown encoder 'libx999'", Err: base}
	assert.Contains(t, withOutput.Error(), "convert")
	assert.Contains(t, withOutput.Error(), "Unknown encoder 'libx999'")
	assert.ErrorIs(t, withOutput, base)

	withoutOutput := &TranscodeError{Op: "probe", Err: base}
	assert.Contains(t, withoutOutput.Error(), "probe")
}

func TestNewFFmpegDefaults(t *testing.T) {
	f := NewFFmpeg("", "")
	assert.Equal(t, "ffmpeg", f.ffmpegPath)
	assert.Equal(t, "ffprobe", f.ffprobePath)

	custom := NewFFmpeg("/opt/bin/ffmpeg", "/opt/bin/ffprobe")
	assert.Equal(t, "/opt/bin/ffmpeg", custom.ffmpegPath)
	assert.Equal(t, "/opt/bin/ffprobe", custom.ffprobePath)
}
