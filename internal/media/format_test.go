package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr bool
	}{
		{name: "mp4 upper", input: "MP4", want: FormatMP4},
		{name: "mp4 lower", input: "mp4", want: FormatMP4},
		{name: "webm mixed case", input: "WebM", want: FormatWEBM},
		{name: "gif", input: "GIF", want: FormatGIF},
		{name: "empty defaults to mp4", input: "", want: FormatMP4},
		{name: "whitespace trimmed", input: " mp4 ", want: FormatMP4},
		{name: "unknown", input: "AVI", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatContentType(t *testing.T) {
	assert.Equal(t, "video/mp4", FormatMP4.ContentType())
	assert.Equal(t, "video/webm", FormatWEBM.ContentType())
	assert.Equal(t, "image/gif", FormatGIF.ContentType())
}

func TestFormatExtension(t *testing.T) {
	assert.Equal(t, "mp4", FormatMP4.Extension())
	assert.Equal(t, "webm", FormatWEBM.Extension())
	assert.Equal(t, "gif", FormatGIF.Extension())
}
